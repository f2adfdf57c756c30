package project

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"mermaidlint/internal/config"
)

// Manifest is a loaded .mermaidlint.toml.
type Manifest struct {
	Path   string
	Root   string
	Config ProjectConfig
	// Unknown lists keys the file sets but nothing reads.
	Unknown []string
}

type ProjectConfig struct {
	Lint LintConfig `toml:"lint"`
	// Config is the caller-level diagram configuration; documents
	// still override it.
	Config config.Config `toml:"config"`
}

type LintConfig struct {
	MaxDiagnostics int      `toml:"max_diagnostics"`
	Jobs           int      `toml:"jobs"`
	Include        []string `toml:"include"`
	Exclude        []string `toml:"exclude"`
	Cache          bool     `toml:"cache"`
	Format         string   `toml:"format"`
}

var validFormats = []string{"text", "json", "short", "sarif"}

// LoadManifest finds and loads the project file above startDir.
// ok is false when there is none.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadManifestFile(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// LoadManifestFile decodes and validates one project file.
func LoadManifestFile(path string) (*Manifest, error) {
	var cfg ProjectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("lint", "max_diagnostics") && cfg.Lint.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: [lint].max_diagnostics must not be negative", path)
	}
	if meta.IsDefined("lint", "jobs") && cfg.Lint.Jobs < 0 {
		return nil, fmt.Errorf("%s: [lint].jobs must not be negative", path)
	}
	if f := strings.TrimSpace(cfg.Lint.Format); f != "" && !slices.Contains(validFormats, f) {
		return nil, fmt.Errorf("%s: [lint].format must be one of %s", path, strings.Join(validFormats, ", "))
	}
	m := &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}
	for _, key := range meta.Undecoded() {
		m.Unknown = append(m.Unknown, key.String())
	}
	return m, nil
}
