package lsp

import (
	"encoding/json"

	"mermaidlint/internal/config"
)

// lspSettings is the shape of workspace/didChangeConfiguration settings.
// initializationOptions may carry the inner object directly.
type lspSettings struct {
	Mermaidlint *mermaidlintSettings `json:"mermaidlint"`
}

type mermaidlintSettings struct {
	MaxDiagnostics *int           `json:"maxDiagnostics,omitempty"`
	Config         *config.Config `json:"config,omitempty"`
}

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	if s.applySettings(params.Settings) {
		s.relintAll()
	}
	return nil
}

// applySettings reports whether anything changed.
func (s *Server) applySettings(raw json.RawMessage) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}
	var wrapped lspSettings
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		s.logger.Warn("invalid settings", "err", err)
		return false
	}
	inner := wrapped.Mermaidlint
	if inner == nil {
		inner = &mermaidlintSettings{}
		if err := json.Unmarshal(raw, inner); err != nil {
			s.logger.Warn("invalid settings", "err", err)
			return false
		}
	}

	changed := false
	s.mu.Lock()
	if inner.MaxDiagnostics != nil && *inner.MaxDiagnostics > 0 && *inner.MaxDiagnostics != s.maxDiagnostics {
		s.maxDiagnostics = *inner.MaxDiagnostics
		changed = true
	}
	if inner.Config != nil {
		s.config = inner.Config
		changed = true
	}
	s.mu.Unlock()
	if changed {
		s.logger.Info("settings updated")
	}
	return changed
}
