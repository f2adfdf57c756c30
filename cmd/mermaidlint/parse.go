package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mermaidlint/internal/diagfmt"
	"mermaidlint/internal/lint"
	"mermaidlint/internal/trace"
)

func newParseCmd() *cobra.Command {
	format := newEnumFlag("json", "json", "yaml", "pretty")
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Dump the syntax tree of a document",
		Long:  `parse prints the syntax tree of a valid document. Documents with errors print their diagnostics to stderr instead.`,
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
			res := lint.Parse(file.Text(), lint.Options{
				Config:      s.config,
				Tracer:      trace.FromContext(cmd.Context()),
				TraceParent: trace.ParentFromContext(cmd.Context()),
			})
			if !res.OK {
				doc := diagfmt.Document{Path: file.Path, File: file, Result: res}
				if err := diagfmt.Pretty(cmd.ErrOrStderr(), []diagfmt.Document{doc}, "", diagfmt.PrettyOpts{
					Color:     s.color,
					ShowNotes: true,
				}); err != nil {
					return err
				}
				return lintFailed()
			}

			out := cmd.OutOrStdout()
			switch format.String() {
			case "yaml":
				err = diagfmt.FormatASTYAML(out, res.AST)
			case "pretty":
				err = diagfmt.FormatASTPretty(out, res.AST)
			default:
				err = diagfmt.FormatASTJSON(out, res.AST)
			}
			if err != nil {
				return fmt.Errorf("failed to write tree: %w", err)
			}
			return nil
		},
	}
	addFormatFlag(cmd.Flags(), format, "tree format")
	return cmd
}
