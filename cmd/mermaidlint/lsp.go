package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"mermaidlint/internal/lsp"
)

func newLSPCmd() *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server on stdio",
		Long:  `lsp serves lint diagnostics, hover and folding ranges for open documents over the Language Server Protocol (stdio). Logs go to stderr.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			defer s.cleanup()

			server := lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), lsp.ServerOptions{
				Debounce:       debounce,
				MaxDiagnostics: s.maxDiagnostics,
				Config:         s.config,
				Logger:         s.logger,
				Tracer:         s.tracer,
			})
			s.logger.Info("language server started")
			err = server.Run(cmd.Context())
			switch {
			case err == nil, errors.Is(err, lsp.ErrExit):
				return nil
			case errors.Is(err, lsp.ErrExitWithoutShutdown):
				return newExitError(ExitLint, err)
			default:
				return err
			}
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "delay between an edit and re-linting the document")
	return cmd
}
