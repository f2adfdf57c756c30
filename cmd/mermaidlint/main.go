package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mermaidlint/internal/version"
)

// newRootCmd собирает дерево команд. Без подкоманды работает как lint.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mermaidlint [files|dirs|globs...]",
		Short:         "Lint Mermaid-style diagram sources",
		Long:          `mermaidlint detects the diagram type of each input, parses it and reports syntax and semantic problems with exact source positions`,
		Version:       version.Current().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
	}
	lf := addLintFlags(root)
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if f, ok := cmd.InOrStdin().(*os.File); ok && len(args) == 0 && isTerminal(f) {
			return cmd.Help()
		}
		return runLint(cmd, args, lf)
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show per file (0 = all)")
	pf.String("log-level", "warn", "log level (debug|info|warn|error)")
	pf.String("trace", "", "write a pipeline trace to this file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|file|stage|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("config", "", "diagram configuration file (YAML or JSON) applied under every document")

	root.AddCommand(newLintCmd())
	root.AddCommand(newDetectCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newLSPCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Err != nil {
				fmt.Fprintln(os.Stderr, exitErr.Err)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsage)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// snippetWidth limits source excerpts to the terminal width; 0 when w is
// not a terminal.
func snippetWidth(w io.Writer) uint8 {
	f, ok := w.(*os.File)
	if !ok || !isTerminal(f) {
		return 0
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 8 {
		return 0
	}
	// номер строки и отступ занимают около 8 колонок
	return uint8(min(cols-8, 255))
}
