package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
)

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid --log-level %q (expected debug|info|warn|error)", s)
	}
	return level, nil
}

// newLogger пишет text-логи в w, подсвечивая уровни при useColor.
func newLogger(w io.Writer, level slog.Level, useColor bool) *slog.Logger {
	if useColor {
		w = newColorizingWriter(w)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

type colorizingWriter struct {
	out     io.Writer
	replace [][2][]byte
}

func newColorizingWriter(out io.Writer) colorizingWriter {
	paint := func(level string, attrs ...color.Attribute) [2][]byte {
		c := color.New(attrs...)
		c.EnableColor()
		return [2][]byte{[]byte("level=" + level), []byte("level=" + c.Sprint(level))}
	}
	return colorizingWriter{out: out, replace: [][2][]byte{
		paint("ERROR", color.FgRed),
		paint("WARN", color.FgYellow),
		paint("INFO", color.FgGreen),
		paint("DEBUG", color.FgCyan),
	}}
}

func (w colorizingWriter) Write(p []byte) (int, error) {
	colored := p
	for _, r := range w.replace {
		colored = bytes.ReplaceAll(colored, r[0], r[1])
	}
	if _, err := w.out.Write(colored); err != nil {
		return 0, err
	}
	return len(p), nil
}
