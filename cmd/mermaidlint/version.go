package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mermaidlint/internal/version"
)

type versionPayload struct {
	Tool string `json:"tool"`
	version.Info
}

func newVersionCmd() *cobra.Command {
	format := newEnumFlag("pretty", "pretty", "json")
	var full bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show mermaidlint build metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			defer s.cleanup()
			info := version.Current()
			if format.String() == "json" {
				return renderVersionJSON(cmd.OutOrStdout(), info)
			}
			renderVersionPretty(cmd.OutOrStdout(), info, full)
			return nil
		},
	}
	addFormatFlag(cmd.Flags(), format, "output format")
	cmd.Flags().BoolVar(&full, "full", false, "show commit and build date")
	return cmd
}

func renderVersionPretty(out io.Writer, info version.Info, full bool) {
	fmt.Fprintf(out, "mermaidlint %s\n", version.Styled(info.Version))
	if !full {
		return
	}
	fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(info.GitCommit))
	fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(info.BuildDate))
}

func renderVersionJSON(out io.Writer, info version.Info) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(versionPayload{Tool: "mermaidlint", Info: info})
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
