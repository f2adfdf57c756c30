package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testURI = "file:///work/diagram.mmd"

func newTestServer(t *testing.T) (*Server, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	s := NewServer(bytes.NewReader(nil), &out, ServerOptions{Debounce: time.Hour})
	t.Cleanup(s.stopTimers)
	return s, &out
}

func notify(t *testing.T, s *Server, method string, params any) {
	t.Helper()
	payload, err := json.Marshal(params)
	require.NoError(t, err)
	require.NoError(t, s.handleMessage(&rpcMessage{JSONRPC: "2.0", Method: method, Params: payload}))
}

func request(t *testing.T, s *Server, id int, method string, params any) {
	t.Helper()
	payload, err := json.Marshal(params)
	require.NoError(t, err)
	require.NoError(t, s.handleMessage(&rpcMessage{
		JSONRPC: "2.0",
		ID:      json.RawMessage(mustJSON(t, id)),
		Method:  method,
		Params:  payload,
	}))
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

// flush runs the pending debounced lint for uri synchronously.
func flush(t *testing.T, s *Server, uri string) {
	t.Helper()
	s.mu.Lock()
	doc, ok := s.docs[uri]
	require.True(t, ok, "document %s is not open", uri)
	if doc.timer != nil {
		doc.timer.Stop()
	}
	seq := doc.seq
	s.mu.Unlock()
	s.runDiagnostics(uri, seq)
}

func readAll(t *testing.T, out *bytes.Buffer) []rpcMessage {
	t.Helper()
	reader := bufio.NewReader(bytes.NewReader(out.Bytes()))
	var msgs []rpcMessage
	for {
		payload, err := readMessage(reader)
		if errors.Is(err, io.EOF) {
			return msgs
		}
		require.NoError(t, err)
		var msg rpcMessage
		require.NoError(t, json.Unmarshal(payload, &msg))
		msgs = append(msgs, msg)
	}
}

func publishes(t *testing.T, out *bytes.Buffer) []publishDiagnosticsParams {
	t.Helper()
	var list []publishDiagnosticsParams
	for _, msg := range readAll(t, out) {
		if msg.Method != "textDocument/publishDiagnostics" {
			continue
		}
		var p publishDiagnosticsParams
		require.NoError(t, json.Unmarshal(msg.Params, &p))
		list = append(list, p)
	}
	return list
}

func openDoc(t *testing.T, s *Server, text string) {
	t.Helper()
	notify(t, s, "textDocument/didOpen", didOpenTextDocumentParams{
		TextDocument: textDocumentItem{URI: testURI, LanguageID: "mermaid", Version: 1, Text: text},
	})
}

func TestPublishDiagnosticsMapping(t *testing.T) {
	s, out := newTestServer(t)
	openDoc(t, s, "graph TD\nA-->\n")
	flush(t, s, testURI)

	pubs := publishes(t, out)
	require.Len(t, pubs, 1)
	pub := pubs[0]
	require.Equal(t, testURI, pub.URI)
	require.NotNil(t, pub.Version)
	require.Equal(t, 1, *pub.Version)
	require.Len(t, pub.Diagnostics, 1)

	d := pub.Diagnostics[0]
	require.Equal(t, lspSeverityError, d.Severity)
	require.Equal(t, "SYN4002", d.Code)
	require.Equal(t, diagnosticSource, d.Source)
	require.Equal(t, position{Line: 1, Character: 4}, d.Range.Start)
}

func TestIncrementalChangeFixesDocument(t *testing.T) {
	s, out := newTestServer(t)
	openDoc(t, s, "graph TD\nA-->\n")
	notify(t, s, "textDocument/didChange", didChangeTextDocumentParams{
		TextDocument: versionedTextDocumentIdentifier{URI: testURI, Version: 2},
		ContentChanges: []textDocumentContentChangeEvent{{
			Range: &lspRange{Start: position{Line: 1, Character: 4}, End: position{Line: 1, Character: 4}},
			Text:  "B",
		}},
	})
	s.mu.Lock()
	require.Equal(t, "graph TD\nA-->B\n", s.docs[testURI].text)
	s.mu.Unlock()

	flush(t, s, testURI)
	pubs := publishes(t, out)
	require.Len(t, pubs, 1)
	require.Equal(t, 2, *pubs[0].Version)
	require.Empty(t, pubs[0].Diagnostics)
}

func TestStaleDiagnosticsAreDropped(t *testing.T) {
	s, out := newTestServer(t)
	openDoc(t, s, "graph TD\nA-->\n")
	s.mu.Lock()
	stale := s.docs[testURI].seq
	s.mu.Unlock()

	notify(t, s, "textDocument/didChange", didChangeTextDocumentParams{
		TextDocument:   versionedTextDocumentIdentifier{URI: testURI, Version: 2},
		ContentChanges: []textDocumentContentChangeEvent{{Text: "pie\n\"a\": 1\n"}},
	})
	s.runDiagnostics(testURI, stale)
	require.Empty(t, publishes(t, out))

	s.runDiagnostics("file:///never/opened.mmd", stale)
	require.Empty(t, publishes(t, out))
}

func TestDidSaveLintsImmediately(t *testing.T) {
	s, out := newTestServer(t)
	openDoc(t, s, "graph TD\nA-->B\n")
	text := "nonsense\n"
	notify(t, s, "textDocument/didSave", didSaveTextDocumentParams{
		TextDocument: textDocumentIdentifier{URI: testURI},
		Text:         &text,
	})
	pubs := publishes(t, out)
	require.Len(t, pubs, 1)
	require.NotEmpty(t, pubs[0].Diagnostics)
	require.Equal(t, "DET2001", pubs[0].Diagnostics[0].Code)
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	s, out := newTestServer(t)
	openDoc(t, s, "graph TD\nA-->\n")
	flush(t, s, testURI)
	notify(t, s, "textDocument/didClose", didCloseTextDocumentParams{
		TextDocument: textDocumentIdentifier{URI: testURI},
	})

	pubs := publishes(t, out)
	require.Len(t, pubs, 2)
	require.Empty(t, pubs[1].Diagnostics)
	require.Nil(t, pubs[1].Version)

	s.mu.Lock()
	require.Empty(t, s.docs)
	require.Empty(t, s.published)
	s.mu.Unlock()
}

func TestSettingsChange(t *testing.T) {
	s, _ := newTestServer(t)
	notify(t, s, "workspace/didChangeConfiguration", didChangeConfigurationParams{
		Settings: json.RawMessage(`{"mermaidlint":{"maxDiagnostics":3,"config":{"theme":"dark"}}}`),
	})
	s.mu.Lock()
	require.Equal(t, 3, s.maxDiagnostics)
	require.NotNil(t, s.config)
	require.Equal(t, "dark", s.config.Theme)
	s.mu.Unlock()

	require.False(t, s.applySettings(json.RawMessage(`null`)))
	require.False(t, s.applySettings(json.RawMessage(`{"maxDiagnostics":3}`)))
	require.True(t, s.applySettings(json.RawMessage(`{"maxDiagnostics":7}`)))
}

func TestHover(t *testing.T) {
	s, out := newTestServer(t)
	openDoc(t, s, "graph TD\nA[Start] --> B\n")
	request(t, s, 7, "textDocument/hover", textDocumentPositionParams{
		TextDocument: textDocumentIdentifier{URI: testURI},
		Position:     position{Line: 1, Character: 0},
	})

	msgs := readAll(t, out)
	require.Len(t, msgs, 1)
	require.JSONEq(t, `7`, string(msgs[0].ID))
	var h hover
	require.NoError(t, json.Unmarshal(msgs[0].Result, &h))
	require.Equal(t, "markdown", h.Contents.Kind)
	require.Contains(t, h.Contents.Value, "**node** `A`")
	require.Contains(t, h.Contents.Value, "label: Start")
	require.NotNil(t, h.Range)
	require.Equal(t, position{Line: 1, Character: 0}, h.Range.Start)
}

func TestHoverOnHeader(t *testing.T) {
	s, out := newTestServer(t)
	openDoc(t, s, "---\ntitle: Pets\n---\npie\n\"Dogs\": 3\n")
	flush(t, s, testURI)
	out.Reset()

	request(t, s, 1, "textDocument/hover", textDocumentPositionParams{
		TextDocument: textDocumentIdentifier{URI: testURI},
		Position:     position{Line: 3, Character: 1},
	})
	msgs := readAll(t, out)
	require.Len(t, msgs, 1)
	var h hover
	require.NoError(t, json.Unmarshal(msgs[0].Result, &h))
	require.Contains(t, h.Contents.Value, "**diagram** `pie`")
	require.Contains(t, h.Contents.Value, "title: Pets")
}

func TestFoldingRanges(t *testing.T) {
	s, out := newTestServer(t)
	openDoc(t, s, "---\ntitle: x\n---\ngraph TD\nsubgraph one\nA-->B\nend\n")
	request(t, s, 2, "textDocument/foldingRange", foldingRangeParams{
		TextDocument: textDocumentIdentifier{URI: testURI},
	})
	msgs := readAll(t, out)
	require.Len(t, msgs, 1)
	var ranges []foldingRange
	require.NoError(t, json.Unmarshal(msgs[0].Result, &ranges))
	require.Equal(t, []foldingRange{
		{StartLine: 0, EndLine: 2, Kind: "comment"},
		{StartLine: 4, EndLine: 6, Kind: "region"},
	}, ranges)
}

func TestRunLifecycle(t *testing.T) {
	var in bytes.Buffer
	frame := func(raw string) { require.NoError(t, writeMessage(&in, []byte(raw))) }
	frame(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)
	frame(`{"jsonrpc":"2.0","method":"initialized","params":{}}`)
	frame(`{"jsonrpc":"2.0","id":2,"method":"textDocument/definition","params":{}}`)
	frame(`not json`)
	frame(`{"jsonrpc":"2.0","id":3,"method":"shutdown"}`)
	frame(`{"jsonrpc":"2.0","id":4,"method":"textDocument/hover","params":{}}`)
	frame(`{"jsonrpc":"2.0","method":"exit"}`)

	var out bytes.Buffer
	s := NewServer(&in, &out, ServerOptions{Debounce: time.Hour})
	err := s.Run(context.Background())
	require.ErrorIs(t, err, ErrExit)

	msgs := readAll(t, &out)
	require.Len(t, msgs, 4)

	var init initializeResult
	require.NoError(t, json.Unmarshal(msgs[0].Result, &init))
	require.True(t, init.Capabilities.HoverProvider)
	require.True(t, init.Capabilities.FoldingRangeProvider)
	require.Equal(t, 2, init.Capabilities.TextDocumentSync.Change)
	require.Equal(t, "mermaidlint", init.ServerInfo.Name)

	require.NotNil(t, msgs[1].Error)
	require.Equal(t, codeMethodNotFound, msgs[1].Error.Code)

	require.JSONEq(t, `3`, string(msgs[2].ID))
	require.Nil(t, msgs[2].Error)

	require.NotNil(t, msgs[3].Error)
	require.Equal(t, codeInvalidRequest, msgs[3].Error.Code)
}

func TestExitWithoutShutdown(t *testing.T) {
	var in bytes.Buffer
	require.NoError(t, writeMessage(&in, []byte(`{"jsonrpc":"2.0","method":"exit"}`)))
	s := NewServer(&in, io.Discard, ServerOptions{})
	require.ErrorIs(t, s.Run(context.Background()), ErrExitWithoutShutdown)

	s = NewServer(strings.NewReader(""), io.Discard, ServerOptions{})
	require.NoError(t, s.Run(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, NewServer(strings.NewReader(""), io.Discard, ServerOptions{}).Run(ctx), context.Canceled)
}
