package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mermaidlint/internal/driver"
	"mermaidlint/internal/lint"
)

func newCheckCmd() *cobra.Command {
	var jobs int
	cmd := &cobra.Command{
		Use:   "check [files|dirs|globs...]",
		Short: "Print one OK or FAIL line per input",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			defer s.cleanup()

			opts := driver.Options{
				Lint:   lint.Options{Config: s.config},
				Jobs:   jobs,
				Logger: s.logger,
			}
			var batch *driver.Batch
			if readsStdin(args) {
				raw, err := readStdin(cmd)
				if err != nil {
					return err
				}
				batch, err = driver.LintSource(cmd.Context(), stdinName, raw, opts)
				if err != nil {
					return newExitError(ExitUsage, err)
				}
			} else {
				var include, exclude []string
				if s.manifest != nil {
					include, exclude = s.manifest.Config.Lint.Include, s.manifest.Config.Lint.Exclude
				}
				paths, err := driver.Collect(args, include, exclude)
				if err != nil {
					return newExitError(ExitUsage, err)
				}
				batch, err = driver.LintFiles(cmd.Context(), paths, opts)
				if err != nil {
					return newExitError(ExitUsage, err)
				}
			}

			okText := color.New(color.FgGreen).Sprint("OK")
			failText := color.New(color.FgRed, color.Bold).Sprint("FAIL")
			baseDir, _ := os.Getwd()
			out := cmd.OutOrStdout()
			for _, f := range batch.Files {
				status := okText
				if !f.Result.OK {
					status = failText
				}
				if s.quiet && f.Result.OK {
					continue
				}
				fmt.Fprintf(out, "%s: %s\n", f.File.FormatPath("auto", baseDir), status)
			}
			return batchExit(batch)
		},
	}
	cmd.Flags().IntVar(&jobs, "jobs", 0, "max parallel workers (0=auto)")
	return cmd
}
