package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"mermaidlint/internal/config"
	"mermaidlint/internal/diag"
	"mermaidlint/internal/dialect"
	"mermaidlint/internal/lint"
	"mermaidlint/internal/preprocess"
	"mermaidlint/internal/project"
	"mermaidlint/internal/source"
)

// Current schema version - increment when cacheRecord format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты линтинга по хешу содержимого и опций.
// AST не кэшируется. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type cacheRecord struct {
	Schema      uint16
	OK          bool
	DiagramType string
	Title       *string
	Config      config.Config
	Diagnostics []cachedDiagnostic
	Directives  []cachedDirective
}

type cachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Primary  source.Span
	Notes    []cachedNote
}

type cachedNote struct {
	Span source.Span
	Msg  string
}

type cachedDirective struct {
	Kind    uint8
	Name    string
	Payload string
	Span    source.Span
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Key identifies a lint result: the document content plus everything in
// the options that can change the outcome.
func Key(content project.Digest, opts lint.Options) (project.Digest, error) {
	var cfg config.Config
	if opts.Config != nil {
		cfg = *opts.Config
	}
	raw, err := msgpack.Marshal(&cfg)
	if err != nil {
		return project.Digest{}, fmt.Errorf("failed to encode cache key: %w", err)
	}
	return project.Combine(content,
		[]byte(strconv.Itoa(int(diskCacheSchemaVersion))),
		[]byte(strconv.Itoa(opts.MaxErrors)),
		[]byte(strconv.Itoa(opts.MaxTokenLen)),
		raw,
	), nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := key.String()
	// подкаталог по первому байту, чтобы не раздувать одну директорию
	return filepath.Join(c.dir, "results", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a result to the disk cache.
func (c *DiskCache) Put(key project.Digest, res *lint.ParseResult) (err error) {
	if c == nil || res == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(toRecord(res)); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a cached result. A record written by another schema version
// counts as a miss.
func (c *DiskCache) Get(key project.Digest) (*lint.ParseResult, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var rec cacheRecord
	if err := msgpack.NewDecoder(f).Decode(&rec); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if rec.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	return fromRecord(&rec), true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим целиком
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func toRecord(res *lint.ParseResult) *cacheRecord {
	rec := &cacheRecord{
		Schema: diskCacheSchemaVersion,
		OK:     res.OK,
		Title:  res.Title,
		Config: res.Config,
	}
	if res.DiagramType != nil {
		rec.DiagramType = res.DiagramType.String()
	}
	rec.Diagnostics = make([]cachedDiagnostic, len(res.Diagnostics))
	for i, d := range res.Diagnostics {
		cd := cachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Primary:  d.Primary,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Span: n.Span, Msg: n.Msg})
		}
		rec.Diagnostics[i] = cd
	}
	for _, dir := range res.Directives {
		rec.Directives = append(rec.Directives, cachedDirective{
			Kind:    uint8(dir.Kind),
			Name:    dir.Name,
			Payload: dir.Payload,
			Span:    dir.Span,
		})
	}
	return rec
}

func fromRecord(rec *cacheRecord) *lint.ParseResult {
	res := &lint.ParseResult{
		OK:     rec.OK,
		Title:  rec.Title,
		Config: rec.Config,
	}
	if tag, ok := dialect.ParseTag(rec.DiagramType); ok {
		res.DiagramType = &tag
	}
	res.Diagnostics = make([]diag.Diagnostic, len(rec.Diagnostics))
	for i, cd := range rec.Diagnostics {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  cd.Primary,
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: n.Span, Msg: n.Msg})
		}
		res.Diagnostics[i] = d
	}
	for _, cd := range rec.Directives {
		res.Directives = append(res.Directives, preprocess.Directive{
			Kind:    preprocess.DirectiveKind(cd.Kind),
			Name:    cd.Name,
			Payload: cd.Payload,
			Span:    cd.Span,
		})
	}
	return res
}
