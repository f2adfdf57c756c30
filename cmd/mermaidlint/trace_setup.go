package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mermaidlint/internal/trace"
)

// setupTracing inspects trace-related flags and initializes the tracer.
// It returns a cleanup function that flushes and closes it.
func setupTracing(cmd *cobra.Command) (trace.Tracer, func(), error) {
	root := cmd.Root()

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, nil, err
	}
	formatStr, err := root.PersistentFlags().GetString("trace-format")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, nil, err
	}
	// --trace без уровня включает трассировку стадий
	if level == trace.LevelOff && traceOutput != "" && !root.PersistentFlags().Changed("trace-level") {
		level = trace.LevelStage
	}
	if level == trace.LevelOff {
		return trace.Nop, func() {}, nil
	}

	cfg := trace.Config{Level: level, Format: format, OutputPath: traceOutput}
	if traceOutput == "" || traceOutput == "-" {
		cfg.Output = nopWriteCloser{cmd.ErrOrStderr()}
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmdSpan := trace.Begin(tracer, trace.ScopeDriver, "cmd:"+cmd.Name(), 0)
	ctx := trace.WithParent(trace.WithTracer(cmd.Context(), tracer), cmdSpan.ID())
	cmd.SetContext(ctx)

	cleanup := func() {
		cmdSpan.End("")
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return tracer, cleanup, nil
}

// nopWriteCloser hides Close of the wrapped writer (stderr).
type nopWriteCloser struct{ io.Writer }
