package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"mermaidlint/internal/source"
)

func TestSarif(t *testing.T) {
	fs := source.NewFileSet()
	docs := []Document{
		lintDoc(t, fs, "dir/a.mmd", "graph TD\nA[x]\nA(y)\nB-->"),
	}

	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "mermaidlint", ToolVersion: "1.0.0", InvocationArgs: []string{"lint", "dir"}}
	if err := Sarif(&buf, docs, "", meta); err != nil {
		t.Fatal(err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid sarif: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("log = %+v", log)
	}
	run := log.Runs[0]
	if _, err := uuid.Parse(run.AutomationDetails.GUID); err != nil {
		t.Errorf("guid %q: %v", run.AutomationDetails.GUID, err)
	}
	if len(run.Results) != 2 {
		t.Fatalf("results = %+v", run.Results)
	}
	if len(run.Tool.Driver.Rules) != 2 || run.Tool.Driver.Rules[0].ID != "SYN4002" || run.Tool.Driver.Rules[1].ID != "SEM5001" {
		t.Errorf("rules = %+v", run.Tool.Driver.Rules)
	}

	warn := run.Results[0]
	if warn.Level != "warning" || warn.RuleID != "SEM5001" || len(warn.RelatedLocations) != 1 {
		t.Errorf("warning result = %+v", warn)
	}
	loc := warn.Locations[0].PhysicalLocation
	if loc.ArtifactLocation.URI != "dir/a.mmd" || loc.Region.StartLine != 3 || loc.Region.StartColumn != 1 {
		t.Errorf("location = %+v", loc)
	}
	if run.Results[1].Level != "error" {
		t.Errorf("error result = %+v", run.Results[1])
	}
}

func TestSarifFixedGUID(t *testing.T) {
	var buf bytes.Buffer
	if err := Sarif(&buf, nil, "", SarifRunMeta{ToolName: "x", GUID: "fixed"}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"guid": "fixed"`)) {
		t.Errorf("guid not kept:\n%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"results": []`)) {
		t.Errorf("results must be an empty array:\n%s", buf.String())
	}
}
