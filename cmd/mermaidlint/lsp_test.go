package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lspFrames(msgs ...string) string {
	var b strings.Builder
	for _, m := range msgs {
		fmt.Fprintf(&b, "Content-Length: %d\r\n\r\n%s", len(m), m)
	}
	return b.String()
}

func TestLSPSession(t *testing.T) {
	stdin := lspFrames(
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"textDocument/didOpen","params":{"textDocument":{"uri":"file:///tmp/a.mmd","languageId":"mermaid","version":1,"text":"graph TD\nA-->B\n"}}}`,
		`{"jsonrpc":"2.0","method":"textDocument/didSave","params":{"textDocument":{"uri":"file:///tmp/a.mmd"},"text":"graph TD\nA-->\n"}}`,
		`{"jsonrpc":"2.0","id":2,"method":"shutdown"}`,
		`{"jsonrpc":"2.0","method":"exit"}`,
	)
	res := runCLI(t, stdin, "lsp", "--debounce", "1h")
	require.NoError(t, res.err, "stderr: %s", res.stderr)
	assert.Contains(t, res.stdout, `"hoverProvider":true`)
	assert.Contains(t, res.stdout, `"method":"textDocument/publishDiagnostics"`)
	assert.Contains(t, res.stdout, `"code":"SYN4002"`)
}

func TestLSPExitWithoutShutdown(t *testing.T) {
	res := runCLI(t, lspFrames(`{"jsonrpc":"2.0","method":"exit"}`), "lsp")
	assert.Equal(t, ExitLint, res.exitCode())
}
