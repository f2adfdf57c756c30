package driver

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"mermaidlint/internal/diag"
	"mermaidlint/internal/lint"
	"mermaidlint/internal/observ"
	"mermaidlint/internal/trace"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) last(file string) Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].File == file {
			return s.events[i]
		}
	}
	return Event{}
}

func TestLintFilesKeepsInputOrder(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"ok.mmd":    "graph TD\nA-->B",
		"bad.mmd":   "graph TD\nA-->",
		"pie.mmd":   "pie\n\"Dogs\": 3",
		"what.mmd":  "notadiagram",
		"empty.mmd": "",
	})
	paths := []string{
		filepath.Join(dir, "ok.mmd"),
		filepath.Join(dir, "bad.mmd"),
		filepath.Join(dir, "pie.mmd"),
		filepath.Join(dir, "what.mmd"),
		filepath.Join(dir, "empty.mmd"),
	}

	sink := &recordingSink{}
	batch, err := LintFiles(context.Background(), paths, Options{Jobs: 2, Progress: sink})
	require.NoError(t, err)
	require.Len(t, batch.Files, len(paths))

	wantOK := []bool{true, false, true, false, false}
	for i, f := range batch.Files {
		require.Equal(t, paths[i], f.Path)
		require.NotNil(t, f.File)
		require.Equal(t, wantOK[i], f.Result.OK, f.Path)
		require.Nil(t, f.Result.AST, "trees are dropped unless KeepAST")
	}
	require.False(t, batch.OK())

	require.Equal(t, StatusDone, sink.last(paths[0]).Status)
	require.Equal(t, StatusError, sink.last(paths[1]).Status)
	require.Equal(t, StageLint, sink.last(paths[1]).Stage)
}

func TestLintFilesReportsUnreadableFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{"bin.mmd": ""})
	bin := filepath.Join(dir, "bin.mmd")
	require.NoError(t, os.WriteFile(bin, []byte{'g', 0xff, 0xfe, 0xfd}, 0o600))
	missing := filepath.Join(dir, "missing.mmd")

	sink := &recordingSink{}
	batch, err := LintFiles(context.Background(), []string{missing, bin}, Options{Progress: sink})
	require.NoError(t, err)

	read := batch.Files[0].Result
	require.False(t, read.OK)
	require.Len(t, read.Diagnostics, 1)
	require.Equal(t, diag.IOReadFailed, read.Diagnostics[0].Code)
	require.Equal(t, "1:1", read.Diagnostics[0].Primary.Start.String())
	require.Equal(t, StageRead, sink.last(missing).Stage)
	require.Equal(t, StatusError, sink.last(missing).Status)

	dec := batch.Files[1].Result
	require.False(t, dec.OK)
	require.Equal(t, diag.IODecodeFailed, dec.Diagnostics[0].Code)
	require.Equal(t, "1:1", dec.Diagnostics[0].Primary.Start.String())
}

func TestLintFilesUsesCache(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.mmd": "graph TD\nA-->"})
	cache, err := NewDiskCache(filepath.Join(dir, ".cache"))
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts := Options{Cache: cache, Logger: logger}
	paths := []string{filepath.Join(dir, "a.mmd")}

	first, err := LintFiles(context.Background(), paths, opts)
	require.NoError(t, err)
	require.False(t, first.Files[0].Cached)

	second, err := LintFiles(context.Background(), paths, opts)
	require.NoError(t, err)
	require.True(t, second.Files[0].Cached)
	require.Equal(t, first.Files[0].Result.Diagnostics, second.Files[0].Result.Diagnostics)
	require.Contains(t, logs.String(), "cache hit")

	// AST нужен - кэш не используется
	opts.KeepAST = true
	third, err := LintFiles(context.Background(), paths, opts)
	require.NoError(t, err)
	require.False(t, third.Files[0].Cached)
	require.NotNil(t, third.Files[0].Result.AST)
}

func TestLintFilesMergesTimers(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.mmd": "graph TD\nA",
		"b.mmd": "graph TD\nB",
	})
	timer := observ.NewTimer()
	batch, err := LintFiles(context.Background(),
		[]string{filepath.Join(dir, "a.mmd"), filepath.Join(dir, "b.mmd")},
		Options{Lint: lint.Options{Timer: timer}})
	require.NoError(t, err)

	report := batch.Timer.Report()
	counts := map[string]int{}
	for _, p := range report.Phases {
		counts[p.Name] = p.Count
	}
	require.Equal(t, 2, counts["parse"])
	require.Equal(t, 2, counts["preprocess"])
}

func TestLintFilesTruncatesDiagnostics(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.mmd": "graph TD\nA-->\nB-->\nC-->"})
	batch, err := LintFiles(context.Background(),
		[]string{filepath.Join(dir, "a.mmd")}, Options{MaxDiagnostics: 1})
	require.NoError(t, err)
	require.Len(t, batch.Files[0].Result.Diagnostics, 1)
	require.False(t, batch.OK())
}

func TestLintFilesCancelled(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.mmd": "graph TD\nA"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LintFiles(ctx, []string{filepath.Join(dir, "a.mmd")}, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestLintSource(t *testing.T) {
	batch, err := LintSource(context.Background(), "<stdin>", []byte("---\ntitle: Pets\n---\npie\n\"Cats\": 2"), Options{KeepAST: true})
	require.NoError(t, err)
	require.True(t, batch.OK())
	f := batch.Files[0]
	require.Equal(t, "<stdin>", f.Path)
	require.NotNil(t, f.Result.AST)
	require.Equal(t, "Pets", *f.Result.Title)
}

func TestTokenize(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.mmd": "%% comment\ngraph TD\nA-->B"})
	batch, err := LintFiles(context.Background(), []string{filepath.Join(dir, "a.mmd")}, Options{})
	require.NoError(t, err)

	res, err := Tokenize(batch.Files[0].File, nil, 0)
	require.NoError(t, err)
	var kinds []string
	for _, tok := range res.Tokens {
		kinds = append(kinds, tok.Kind)
	}
	require.Contains(t, strings.Join(kinds, " "), "Link")
	require.Equal(t, 0, res.Bag.Len())

	for _, tok := range res.Tokens {
		if tok.Text == "-->" {
			require.Equal(t, uint32(3), tok.Span.Start.Line)
			require.Equal(t, uint32(2), tok.Span.Start.Col)
		}
	}
}

func TestLintSourcePicksTracerFromContext(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatNDJSON)
	ctx := trace.WithParent(trace.WithTracer(context.Background(), tr), 42)

	_, err := LintSource(ctx, "<stdin>", []byte("graph TD\nA-->B"), Options{})
	require.NoError(t, err)
	require.NoError(t, tr.Flush())

	first, _, _ := strings.Cut(buf.String(), "\n")
	require.Contains(t, first, `"name":"lint-files"`)
	require.Contains(t, first, `"parent_id":42`)
}
