package lsp

import (
	"net/url"
	"path/filepath"
)

// uriToPath returns the local path of a file URI, or "" for other schemes.
func uriToPath(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	if parsed.Scheme != "" && parsed.Scheme != "file" {
		return ""
	}
	path := parsed.Path
	if parsed.Scheme == "" {
		path = uri
	}
	return filepath.FromSlash(path)
}

// canonicalURI normalizes file URIs so that the same document always maps
// to the same key. Non-file URIs (untitled:, vscode-notebook-cell:) are kept.
func canonicalURI(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "file" {
		return uri
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Clean(filepath.FromSlash(parsed.Path)))}
	return u.String()
}

// documentName is the name diagnostics refer to: a path when possible.
func documentName(uri string) string {
	if path := uriToPath(uri); path != "" {
		return path
	}
	return uri
}
