package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mermaidlint/internal/diagfmt"
	"mermaidlint/internal/driver"
	"mermaidlint/internal/lint"
)

func newTokenizeCmd() *cobra.Command {
	format := newEnumFlag("pretty", "pretty", "json")
	cmd := &cobra.Command{
		Use:   "tokenize [file]",
		Short: "Dump the tokens of a document (debugging aid)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			defer s.cleanup()

			file, err := readDocument(cmd, args)
			if err != nil {
				return err
			}
			res, err := driver.Tokenize(file, s.config, s.maxDiagnostics)
			if err != nil {
				return newExitError(ExitLint, err)
			}

			out := cmd.OutOrStdout()
			if format.String() == "json" {
				err = diagfmt.FormatTokensJSON(out, res.Tokens)
			} else {
				err = diagfmt.FormatTokensPretty(out, res.Tokens)
			}
			if err != nil {
				return fmt.Errorf("failed to write tokens: %w", err)
			}
			if res.Bag.Len() > 0 {
				doc := diagfmt.Document{Path: file.Path, File: file, Result: &lint.ParseResult{
					OK:          !res.Bag.HasErrors(),
					Diagnostics: res.Bag.Items(),
				}}
				if err := diagfmt.Short(cmd.ErrOrStderr(), []diagfmt.Document{doc}, "", diagfmt.PathModeAuto, false); err != nil {
					return err
				}
			}
			if res.Bag.HasErrors() {
				return lintFailed()
			}
			return nil
		},
	}
	addFormatFlag(cmd.Flags(), format, "token format")
	return cmd
}
