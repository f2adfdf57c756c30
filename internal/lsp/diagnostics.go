package lsp

import (
	"strconv"
	"time"

	"mermaidlint/internal/diag"
	"mermaidlint/internal/lint"
	"mermaidlint/internal/trace"
)

// LSP DiagnosticSeverity
const (
	lspSeverityError       = 1
	lspSeverityWarning     = 2
	lspSeverityInformation = 3
)

const diagnosticSource = "mermaidlint"

func (s *Server) scheduleDiagnostics(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return
	}
	seq := s.seq.Add(1)
	doc.seq = seq
	if doc.timer != nil {
		doc.timer.Stop()
	}
	doc.timer = time.AfterFunc(s.debounce, func() {
		s.runDiagnostics(uri, seq)
	})
}

// runDiagnostics lints the document as of seq and publishes the result.
// Stale runs (the document changed or closed since) publish nothing.
func (s *Server) runDiagnostics(uri string, seq uint64) {
	if s.ctx.Err() != nil {
		return
	}
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok || doc.seq != seq {
		s.mu.Unlock()
		return
	}
	text, version := doc.text, doc.version
	cfg, maxDiagnostics := s.config, s.maxDiagnostics
	s.mu.Unlock()

	span := trace.Begin(s.tracer, trace.ScopeFile, "lsp-lint", 0).WithExtra("uri", uri)
	res := lint.Parse(text, lint.Options{
		Config:      cfg,
		MaxErrors:   maxDiagnostics,
		Tracer:      s.tracer,
		TraceParent: span.ID(),
	})
	span.End(strconv.Itoa(len(res.Diagnostics)) + " diagnostics")

	s.mu.Lock()
	doc, ok = s.docs[uri]
	if !ok || doc.seq != seq {
		s.mu.Unlock()
		s.logger.Debug("discarding stale diagnostics", "uri", uri, "seq", seq)
		return
	}
	doc.result = res
	doc.linted = seq
	s.published[uri] = struct{}{}
	s.mu.Unlock()

	list := toLSPDiagnostics(uri, text, res.Diagnostics, maxDiagnostics)
	s.logger.Debug("publishDiagnostics", "uri", uri, "version", version, "count", len(list))
	if err := s.sendPublish(uri, &version, list); err != nil {
		s.logger.Warn("failed to publish diagnostics", "uri", uri, "err", err)
	}
}

func (s *Server) clearPublishedDiagnostics() {
	s.mu.Lock()
	uris := make([]string, 0, len(s.published))
	for uri := range s.published {
		uris = append(uris, uri)
	}
	s.published = make(map[string]struct{})
	s.mu.Unlock()
	for _, uri := range uris {
		if err := s.sendPublish(uri, nil, nil); err != nil {
			s.logger.Warn("failed to clear diagnostics", "uri", uri, "err", err)
		}
	}
}

// relintAll re-lints every open document, e.g. after a settings change.
func (s *Server) relintAll() {
	s.mu.Lock()
	uris := make([]string, 0, len(s.docs))
	for uri := range s.docs {
		uris = append(uris, uri)
	}
	s.mu.Unlock()
	for _, uri := range uris {
		s.scheduleDiagnostics(uri)
	}
}

func toLSPDiagnostics(uri, text string, diags []diag.Diagnostic, limit int) []lspDiagnostic {
	if limit > 0 && len(diags) > limit {
		diags = diags[:limit]
	}
	out := make([]lspDiagnostic, 0, len(diags))
	for _, d := range diags {
		item := lspDiagnostic{
			Range:    rangeForSpan(text, d.Primary),
			Severity: lspSeverity(d.Severity),
			Code:     d.Code.ID(),
			Source:   diagnosticSource,
			Message:  d.Message,
		}
		for _, note := range d.Notes {
			item.RelatedInformation = append(item.RelatedInformation, diagnosticRelatedInformation{
				Location: location{URI: uri, Range: rangeForSpan(text, note.Span)},
				Message:  note.Msg,
			})
		}
		out = append(out, item)
	}
	return out
}

func lspSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return lspSeverityError
	case diag.SevWarning:
		return lspSeverityWarning
	default:
		return lspSeverityInformation
	}
}
