package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mermaidlint/internal/diag"
	"mermaidlint/internal/diagfmt"
	"mermaidlint/internal/driver"
	"mermaidlint/internal/source"
)

const stdinName = "<stdin>"

func readsStdin(args []string) bool {
	return len(args) == 0 || (len(args) == 1 && args[0] == "-")
}

func readStdin(cmd *cobra.Command) ([]byte, error) {
	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, newExitError(ExitUsage, fmt.Errorf("failed to read stdin: %w", err))
	}
	return raw, nil
}

// readDocument loads the single input of detect/parse/tokenize.
func readDocument(cmd *cobra.Command, args []string) (*source.File, error) {
	fileSet := source.NewFileSet()
	if readsStdin(args) {
		raw, err := readStdin(cmd)
		if err != nil {
			return nil, err
		}
		return fileSet.Get(fileSet.AddVirtual(stdinName, raw)), nil
	}
	id, err := fileSet.Load(args[0])
	if err != nil {
		return nil, newExitError(ExitUsage, err)
	}
	return fileSet.Get(id), nil
}

func documents(batch *driver.Batch) []diagfmt.Document {
	docs := make([]diagfmt.Document, len(batch.Files))
	for i, f := range batch.Files {
		docs[i] = diagfmt.Document{Path: f.Path, File: f.File, Result: f.Result}
	}
	return docs
}

// hasIOFailure reports inputs that could not be read or decoded at all.
func hasIOFailure(batch *driver.Batch) bool {
	for _, f := range batch.Files {
		if f.Result == nil {
			continue
		}
		for _, d := range f.Result.Diagnostics {
			if d.Code == diag.IOReadFailed || d.Code == diag.IODecodeFailed {
				return true
			}
		}
	}
	return false
}

// batchExit maps a finished batch to the process exit status.
func batchExit(batch *driver.Batch) error {
	switch {
	case hasIOFailure(batch):
		return &ExitError{Code: ExitUsage}
	case !batch.OK():
		return lintFailed()
	default:
		return nil
	}
}
