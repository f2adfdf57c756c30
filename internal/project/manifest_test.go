package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[lint]
max_diagnostics = 20
jobs = 2
include = ["docs/**/*.mmd"]
exclude = ["**/vendor/**"]
cache = true
typo = 1

[config]
theme = "dark"

[config.flowchart]
defaultRenderer = "elk"
`)
	nested := filepath.Join(root, "docs", "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := LoadManifest(nested)
	if err != nil || !ok {
		t.Fatalf("LoadManifest: ok=%t err=%v", ok, err)
	}
	if m.Root != root {
		t.Errorf("root = %q, want %q", m.Root, root)
	}
	lint := m.Config.Lint
	if lint.MaxDiagnostics != 20 || lint.Jobs != 2 || !lint.Cache || len(lint.Include) != 1 || len(lint.Exclude) != 1 {
		t.Errorf("lint = %+v", lint)
	}
	if m.Config.Config.Theme != "dark" || m.Config.Config.Flowchart.DefaultRenderer != "elk" {
		t.Errorf("config = %+v", m.Config.Config)
	}
	if len(m.Unknown) != 1 || m.Unknown[0] != "lint.typo" {
		t.Errorf("unknown = %v", m.Unknown)
	}
}

func TestLoadManifestMissing(t *testing.T) {
	m, ok, err := LoadManifest(t.TempDir())
	if err != nil || ok || m != nil {
		t.Fatalf("got %v %t %v", m, ok, err)
	}
}

func TestLoadManifestInvalid(t *testing.T) {
	cases := map[string]string{
		"syntax":   "[lint\n",
		"negative": "[lint]\njobs = -1\n",
		"format":   "[lint]\nformat = \"xml\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, body)
			if _, err := LoadManifestFile(path); err == nil {
				t.Fatalf("expected an error for %q", body)
			}
		})
	}
}

func TestCombineIsOrderSensitive(t *testing.T) {
	var d Digest
	if Combine(d, []byte("a"), []byte("b")) == Combine(d, []byte("b"), []byte("a")) {
		t.Fatal("Combine must depend on part order")
	}
	if Combine(d, []byte("ab")) == Combine(d, []byte("a"), []byte("b")) {
		t.Fatal("Combine must separate parts")
	}
}

func TestFindManifestFromNestedDir(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "docs", "flows")
	writeFile(t, filepath.Join(root, ManifestName), "[lint]\njobs = 2\n")
	writeFile(t, filepath.Join(nested, "a.mmd"), "pie\n")

	path, ok, err := FindManifest(nested)
	if err != nil || !ok || path != filepath.Join(root, ManifestName) {
		t.Fatalf("FindManifest = %q, %t, %v", path, ok, err)
	}
}

func TestCombineSeparatesParts(t *testing.T) {
	var content Digest
	if Combine(content, []byte("ab"), []byte("c")) == Combine(content, []byte("a"), []byte("bc")) {
		t.Fatal("part boundaries are not part of the key")
	}
	if Combine(content, []byte("x")) != Combine(content, []byte("x")) {
		t.Fatal("Combine is not deterministic")
	}
	if len(content.String()) != 64 {
		t.Fatal("digest hex length")
	}
}
