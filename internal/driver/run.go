package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"mermaidlint/internal/diag"
	"mermaidlint/internal/lint"
	"mermaidlint/internal/observ"
	"mermaidlint/internal/project"
	"mermaidlint/internal/source"
	"mermaidlint/internal/trace"
)

// Options configure a batch run.
type Options struct {
	Lint lint.Options
	// Jobs limits concurrent documents; <= 0 means GOMAXPROCS.
	Jobs  int
	Cache *DiskCache
	// KeepAST retains the tree in results. The disk cache is bypassed then.
	KeepAST bool
	// MaxDiagnostics truncates the per-file diagnostic list; 0 keeps all.
	MaxDiagnostics int
	Progress       ProgressSink
	Logger         *slog.Logger
}

// FileResult is the outcome for one input.
type FileResult struct {
	Path   string
	File   *source.File
	Result *lint.ParseResult
	Cached bool
}

// Batch collects results in input order.
type Batch struct {
	FileSet *source.FileSet
	Files   []FileResult
	// Timer aggregates stage timings of all files; nil unless
	// Options.Lint.Timer was set.
	Timer *observ.Timer
}

// OK reports whether every file passed.
func (b *Batch) OK() bool {
	for _, f := range b.Files {
		if f.Result == nil || !f.Result.OK {
			return false
		}
	}
	return true
}

type loaded struct {
	id   source.FileID
	fail *diag.Diagnostic
}

// LintFiles lints paths concurrently. Files are loaded sequentially first
// since FileSet is not safe for concurrent use.
func LintFiles(ctx context.Context, paths []string, opts Options) (*Batch, error) {
	fileSet := source.NewFileSet()
	inputs := make([]loaded, len(paths))
	for i, path := range paths {
		emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusQueued})
		inputs[i] = loadFile(fileSet, path)
	}
	return run(ctx, fileSet, paths, inputs, opts)
}

// LintSource lints an in-memory document such as stdin.
func LintSource(ctx context.Context, name string, content []byte, opts Options) (*Batch, error) {
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual(name, content)
	return run(ctx, fileSet, []string{name}, []loaded{{id: id}}, opts)
}

// fileStart anchors IO failures at 1:1; the file has no text to point into.
var fileStart = source.PointSpan(source.Position{Line: 1, Col: 1})

func loadFile(fileSet *source.FileSet, path string) loaded {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		id := fileSet.Add(path, nil, 0)
		return loaded{id: id, fail: &diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOReadFailed,
			Primary:  fileStart,
			Message:  "cannot read file: " + unwrapPathError(err).Error(),
		}}
	}
	content, flags, err := source.Decode(raw)
	if err != nil {
		id := fileSet.Add(path, nil, 0)
		return loaded{id: id, fail: &diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IODecodeFailed,
			Primary:  fileStart,
			Message:  "cannot decode file: " + err.Error(),
		}}
	}
	return loaded{id: fileSet.Add(path, content, flags)}
}

func unwrapPathError(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

func run(ctx context.Context, fileSet *source.FileSet, paths []string, inputs []loaded, opts Options) (*Batch, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	batch := &Batch{
		FileSet: fileSet,
		Files:   make([]FileResult, len(paths)),
		Timer:   opts.Lint.Timer,
	}
	if len(paths) == 0 {
		return batch, nil
	}

	if opts.Lint.Tracer == nil {
		opts.Lint.Tracer = trace.FromContext(ctx)
	}
	if opts.Lint.TraceParent == 0 {
		opts.Lint.TraceParent = trace.ParentFromContext(ctx)
	}
	span := trace.Begin(opts.Lint.Tracer, trace.ScopeDriver, "lint-files", opts.Lint.TraceParent)
	defer func() { span.End(fmt.Sprintf("files=%d", len(paths))) }()

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	parent := span.ID()
	if parent == 0 {
		parent = opts.Lint.TraceParent
	}
	timers := make([]*observ.Timer, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			file := fileSet.Get(inputs[i].id)
			batch.Files[i] = FileResult{Path: path, File: file}

			if fail := inputs[i].fail; fail != nil {
				batch.Files[i].Result = &lint.ParseResult{
					Diagnostics: []diag.Diagnostic{*fail},
				}
				logger.Debug("load failed", "file", path, "error", fail.Message)
				emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusError, Err: errors.New(fail.Message)})
				return nil
			}

			fileOpts := opts.Lint
			fileOpts.TraceParent = parent
			fileOpts.SkipAST = !opts.KeepAST
			if opts.Lint.Timer != nil {
				timers[i] = observ.NewTimer()
				fileOpts.Timer = timers[i]
			}

			started := time.Now()
			emit(opts.Progress, Event{File: path, Stage: StageLint, Status: StatusWorking})
			res, cached := lintFile(file, fileOpts, opts, logger)
			if opts.MaxDiagnostics > 0 && len(res.Diagnostics) > opts.MaxDiagnostics {
				res.Diagnostics = res.Diagnostics[:opts.MaxDiagnostics]
			}
			batch.Files[i].Result = res
			batch.Files[i].Cached = cached

			status := StatusDone
			switch {
			case cached:
				status = StatusCached
			case !res.OK:
				status = StatusError
			}
			emit(opts.Progress, Event{File: path, Stage: StageLint, Status: status, Elapsed: time.Since(started)})
			return nil
		})
	}
	err := g.Wait()

	// Сливаем в порядке входа, чтобы отчёт был детерминированным
	for _, t := range timers {
		batch.Timer.Merge(t)
	}
	return batch, err
}

func lintFile(file *source.File, fileOpts lint.Options, opts Options, logger *slog.Logger) (*lint.ParseResult, bool) {
	useCache := opts.Cache != nil && !opts.KeepAST
	var key project.Digest
	if useCache {
		var err error
		key, err = Key(project.Digest(file.Hash), fileOpts)
		if err != nil {
			logger.Warn("cache key failed", "file", file.Path, "error", err)
			useCache = false
		}
	}
	if useCache {
		res, ok, err := opts.Cache.Get(key)
		switch {
		case err != nil:
			logger.Warn("cache read failed", "file", file.Path, "error", err)
		case ok:
			logger.Debug("cache hit", "file", file.Path)
			trace.Point(fileOpts.Tracer, trace.ScopeFile, "cache-hit", file.Path, fileOpts.TraceParent)
			return res, true
		default:
			logger.Debug("cache miss", "file", file.Path)
		}
	}

	res := lint.Parse(file.Text(), fileOpts)

	if useCache {
		if err := opts.Cache.Put(key, res); err != nil {
			logger.Warn("cache write failed", "file", file.Path, "error", err)
		}
	}
	return res, false
}
