package diagfmt

import (
	"encoding/json"
	"io"
	"net/url"
	"path/filepath"
	"slices"

	"github.com/google/uuid"

	"mermaidlint/internal/diag"
	"mermaidlint/internal/source"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool              sarifTool         `json:"tool"`
	AutomationDetails sarifAutomation   `json:"automationDetails"`
	Invocations       []sarifInvocation `json:"invocations"`
	ColumnKind        string            `json:"columnKind"`
	Results           []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifAutomation struct {
	GUID string `json:"guid"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID           string          `json:"ruleId"`
	Level            string          `json:"level"`
	Message          sarifMessage    `json:"message"`
	Locations        []sarifLocation `json:"locations"`
	RelatedLocations []sarifLocation `json:"relatedLocations,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
	Message          *sarifMessage `json:"message,omitempty"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
	ByteOffset  uint32 `json:"byteOffset"`
	ByteLength  uint32 `json:"byteLength"`
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0).
// Колонки считаются в кодовых точках, как и в остальных форматах.
func Sarif(w io.Writer, docs []Document, baseDir string, meta SarifRunMeta) error {
	guid := meta.GUID
	if guid == "" {
		guid = uuid.NewString()
	}
	run := sarifRun{
		Tool:              sarifTool{Driver: sarifDriver{Name: meta.ToolName, Version: meta.ToolVersion}},
		AutomationDetails: sarifAutomation{GUID: guid},
		Invocations:       []sarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: true}},
		ColumnKind:        "unicodeCodePoints",
		Results:           []sarifResult{},
	}

	seen := make(map[diag.Code]bool)
	for _, doc := range docs {
		if doc.Result == nil {
			continue
		}
		uri := sarifURI(doc.path(PathModeRelative, baseDir))
		for _, d := range doc.Result.Diagnostics {
			seen[d.Code] = true
			res := sarifResult{
				RuleID:    d.Code.ID(),
				Level:     sarifLevel(d.Severity),
				Message:   sarifMessage{Text: d.Message},
				Locations: []sarifLocation{{PhysicalLocation: sarifPhysicalAt(uri, d.Primary)}},
			}
			for _, n := range d.Notes {
				res.RelatedLocations = append(res.RelatedLocations, sarifLocation{
					PhysicalLocation: sarifPhysicalAt(uri, n.Span),
					Message:          &sarifMessage{Text: n.Msg},
				})
			}
			run.Results = append(run.Results, res)
		}
	}

	codes := make([]diag.Code, 0, len(seen))
	for c := range seen {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	run.Tool.Driver.Rules = make([]sarifRule, 0, len(codes))
	for _, c := range codes {
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{
			ID:               c.ID(),
			Name:             c.Name(),
			ShortDescription: sarifMessage{Text: c.Title()},
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sarifLog{Schema: sarifSchema, Version: sarifVersion, Runs: []sarifRun{run}})
}

func sarifPhysicalAt(uri string, sp source.Span) sarifPhysical {
	return sarifPhysical{
		ArtifactLocation: sarifArtifact{URI: uri},
		Region: sarifRegion{
			StartLine:   sp.Start.Line,
			StartColumn: sp.Start.Col,
			EndLine:     sp.End.Line,
			EndColumn:   sp.End.Col,
			ByteOffset:  sp.Start.Offset,
			ByteLength:  sp.Len(),
		},
	}
}

func sarifURI(path string) string {
	u := url.URL{Path: filepath.ToSlash(path)}
	return u.String()
}

func sarifLevel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}
