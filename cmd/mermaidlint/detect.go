package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mermaidlint/internal/lint"
)

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [file]",
		Short: "Print the diagram type of a document, or unknown",
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
			tag, ok := lint.DetectType(file.Text())
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "unknown")
				return lintFailed()
			}
			fmt.Fprintln(cmd.OutOrStdout(), tag)
			return nil
		},
	}
}
