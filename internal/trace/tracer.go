package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Tracer receives events. Implementations must be safe for concurrent use.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	// Enabled is Level() > LevelOff.
	Enabled() bool
}

// Config selects level, format and destination.
type Config struct {
	Level  Level
	Format Format // FormatAuto: NDJSON for *.ndjson/*.jsonl paths, text otherwise
	// Output wins over OutputPath. "" and "-" in OutputPath mean stderr.
	Output     io.Writer
	OutputPath string
}

// New builds a tracer from cfg; LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	format := cfg.Format
	if format == FormatAuto {
		switch filepath.Ext(cfg.OutputPath) {
		case ".ndjson", ".jsonl":
			format = FormatNDJSON
		default:
			format = FormatText
		}
	}

	w := cfg.Output
	if w == nil {
		var err error
		if w, err = openOutput(cfg.OutputPath); err != nil {
			return nil, err
		}
	}
	return NewStreamTracer(w, cfg.Level, format), nil
}

func openOutput(path string) (io.Writer, error) {
	if path == "" || path == "-" {
		return struct{ io.Writer }{os.Stderr}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return &bufferedFile{Writer: bufio.NewWriterSize(f, 64<<10), f: f}, nil
}

// bufferedFile batches writes to a trace file; Close flushes first.
type bufferedFile struct {
	*bufio.Writer
	f *os.File
}

func (b *bufferedFile) Close() error {
	if err := b.Flush(); err != nil {
		_ = b.f.Close()
		return err
	}
	return b.f.Close()
}
