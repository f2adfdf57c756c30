// Package lsp is a minimal language server for Mermaid documents.
//
// It speaks JSON-RPC over stdio, keeps open buffers in memory (incremental
// sync) and publishes lint diagnostics after a short debounce. Hover and
// folding ranges are served from the last lint result.
package lsp
