package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"mermaidlint/internal/diag"
	"mermaidlint/internal/diagfmt"
	"mermaidlint/internal/driver"
	"mermaidlint/internal/lint"
	"mermaidlint/internal/observ"
	"mermaidlint/internal/version"
)

type lintFlags struct {
	format    *enumFlag
	check     bool
	ast       bool
	jobs      int
	cache     bool
	ui        *enumFlag
	withNotes bool
	fullPath  bool
	minSev    string
	maxToken  int
}

func addLintFlags(cmd *cobra.Command) *lintFlags {
	lf := &lintFlags{
		format: newEnumFlag("text", "text", "json", "short", "sarif"),
		ui:     newEnumFlag("auto", "auto", "on", "off"),
	}
	lf.ui.typ = "mode"
	addFormatFlag(cmd.Flags(), lf.format, "output format")
	cmd.Flags().BoolVar(&lf.check, "check", false, "print nothing, only set the exit status")
	cmd.Flags().BoolVar(&lf.ast, "ast", false, "include syntax trees in JSON output")
	cmd.Flags().IntVar(&lf.jobs, "jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().BoolVar(&lf.cache, "cache", false, "reuse results from the on-disk cache")
	cmd.Flags().Var(lf.ui, "ui", lf.ui.usage("progress UI"))
	cmd.Flags().BoolVar(&lf.withNotes, "with-notes", false, "include diagnostic notes in short output")
	cmd.Flags().BoolVar(&lf.fullPath, "fullpath", false, "emit absolute file paths in output")
	cmd.Flags().IntVar(&lf.maxToken, "max-token-len", 0, "longest lexeme in bytes before Lex.TokenTooLong (0=default 16384, -1=unlimited)")
	cmd.Flags().StringVar(&lf.minSev, "min-severity", "info", "hide diagnostics below this severity (info|warning|error)")
	return lf
}

func newLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [files|dirs|globs...]",
		Short: "Lint diagram files, directories or glob patterns (stdin when none)",
		Args:  cobra.ArbitraryArgs,
	}
	lf := addLintFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runLint(cmd, args, lf)
	}
	return cmd
}

func runLint(cmd *cobra.Command, args []string, lf *lintFlags) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer s.cleanup()

	format := lf.format.String()
	jobs := lf.jobs
	useCache := lf.cache
	var include, exclude []string
	if m := s.manifest; m != nil {
		lc := m.Config.Lint
		if !cmd.Flags().Changed("format") && lc.Format != "" {
			format = lc.Format
		}
		if !cmd.Flags().Changed("jobs") && lc.Jobs > 0 {
			jobs = lc.Jobs
		}
		useCache = useCache || lc.Cache
		include, exclude = lc.Include, lc.Exclude
	}
	if lf.ast && format != "json" {
		return newExitError(ExitUsage, fmt.Errorf("--ast requires --format json"))
	}
	minSev, err := diag.ParseSeverity(lf.minSev)
	if err != nil {
		return newExitError(ExitUsage, fmt.Errorf("--min-severity: %w", err))
	}

	opts := driver.Options{
		Lint:           lint.Options{Config: s.config, MaxTokenLen: lf.maxToken},
		Jobs:           jobs,
		KeepAST:        lf.ast,
		MaxDiagnostics: s.maxDiagnostics,
		Logger:         s.logger,
		Progress:       logProgress(s.logger),
	}
	if s.timings {
		opts.Lint.Timer = observ.NewTimer()
	}
	if useCache {
		cache, err := driver.OpenDiskCache("mermaidlint")
		if err != nil {
			s.logger.Warn("disk cache disabled", "error", err)
		} else {
			opts.Cache = cache
		}
	}

	ctx := cmd.Context()
	var batch *driver.Batch
	if readsStdin(args) {
		raw, err := readStdin(cmd)
		if err != nil {
			return err
		}
		batch, err = driver.LintSource(ctx, stdinName, raw, opts)
		if err != nil {
			return newExitError(ExitUsage, err)
		}
	} else {
		paths, err := driver.Collect(args, include, exclude)
		if err != nil {
			return newExitError(ExitUsage, err)
		}
		if len(paths) == 0 {
			return newExitError(ExitUsage, fmt.Errorf("no diagram files found"))
		}
		s.logger.Debug("collected inputs", "count", len(paths))
		if format == "text" && !lf.check && shouldUseTUI(lf.ui.String(), len(paths)) {
			batch, err = runLintWithUI(ctx, "mermaidlint", paths, opts)
		} else {
			batch, err = driver.LintFiles(ctx, paths, opts)
		}
		if err != nil {
			return newExitError(ExitUsage, err)
		}
	}

	if !lf.check {
		pathMode := diagfmt.PathModeAuto
		if lf.fullPath {
			pathMode = diagfmt.PathModeAbsolute
		}
		docs := atLeast(documents(batch), minSev)
		if err := writeReport(cmd.OutOrStdout(), docs, format, pathMode, s, lf); err != nil {
			return newExitError(ExitUsage, fmt.Errorf("failed to write report: %w", err))
		}
	}
	if s.timings {
		printTimings(cmd.ErrOrStderr(), batch.Timer)
	}
	return batchExit(batch)
}

func writeReport(w io.Writer, docs []diagfmt.Document, format string, mode diagfmt.PathMode, s *settings, lf *lintFlags) error {
	baseDir, _ := os.Getwd()
	switch format {
	case "json":
		return diagfmt.JSON(w, docs, baseDir, diagfmt.JSONOpts{
			PathMode:     mode,
			IncludeNotes: true,
			IncludeAST:   lf.ast,
		})
	case "short":
		return diagfmt.Short(w, docs, baseDir, mode, lf.withNotes)
	case "sarif":
		return diagfmt.Sarif(w, docs, baseDir, diagfmt.SarifRunMeta{
			ToolName:       "mermaidlint",
			ToolVersion:    version.Current().Version,
			InvocationArgs: os.Args[1:],
		})
	default:
		if s.quiet {
			docs = failingOnly(docs)
		}
		return diagfmt.Pretty(w, docs, baseDir, diagfmt.PrettyOpts{
			Color:     s.color,
			PathMode:  mode,
			ShowNotes: true,
			Summary:   !s.quiet,
			Width:     snippetWidth(w),
		})
	}
}

// logProgress reports finished files at debug level; the TUI replaces it.
func logProgress(logger *slog.Logger) driver.ProgressSink {
	return driver.SinkFunc(func(ev driver.Event) {
		if ev.Stage != driver.StageLint || ev.Status == driver.StatusWorking || ev.Status == driver.StatusQueued {
			return
		}
		logger.Debug("linted", "file", ev.File, "status", string(ev.Status), "elapsed", ev.Elapsed)
	})
}

// failingOnly keeps documents that have something to report.
func failingOnly(docs []diagfmt.Document) []diagfmt.Document {
	out := docs[:0:0]
	for _, d := range docs {
		if d.Result == nil || !d.Result.OK || len(d.Result.Diagnostics) > 0 {
			out = append(out, d)
		}
	}
	return out
}

// atLeast hides diagnostics below min from the report. The exit status is
// still computed from the full batch.
func atLeast(docs []diagfmt.Document, min diag.Severity) []diagfmt.Document {
	if min == diag.SevInfo {
		return docs
	}
	out := make([]diagfmt.Document, len(docs))
	for i, d := range docs {
		out[i] = d
		if d.Result == nil {
			continue
		}
		res := *d.Result
		res.Diagnostics = nil
		for _, item := range d.Result.Diagnostics {
			if item.Severity >= min {
				res.Diagnostics = append(res.Diagnostics, item)
			}
		}
		out[i].Result = &res
	}
	return out
}
