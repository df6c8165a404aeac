package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cashflow-mcp/internal/catalog"
	"cashflow-mcp/internal/dataset"
	"cashflow-mcp/internal/simulation"
)

func newService() *dataset.Service {
	return dataset.NewService(catalog.Default(), dataset.NewPipeline(simulation.DefaultScenario()), 13)
}

func TestBuildAndRender(t *testing.T) {
	r, err := Build(newService(), "1", 0)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if r.Dataset.Seed != 13 {
		t.Errorf("Expected the session seed 13, got %d", r.Dataset.Seed)
	}
	if len(r.Sheets) != 3 {
		t.Errorf("Expected 3 balance sheets, got %d", len(r.Sheets))
	}

	md := r.Markdown()
	for _, want := range []string{
		"# Cash-flow report: " + r.Dataset.Entity.Name,
		"## Scores",
		"## Statistics",
		"## Balance trend",
		"## Balance sheets",
		"## Balance by year",
		"## Daily variation (last 90 days)",
		"Largest daily gain",
		"| Std dev | IQR |",
		"| 2022 |",
		"Period: 2022-01-01 to 2024-12-30 (1095 days)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected report to contain %q", want)
		}
	}
	if got := strings.Count(md, "```mermaid"); got != 5 {
		t.Errorf("Expected 5 charts, got %d", got)
	}
	if r.Variations.Points != len(r.Dataset.Series) {
		t.Errorf("Expected one variation per day, got %d", r.Variations.Points)
	}
}

func TestBuild_UnknownEntity(t *testing.T) {
	if _, err := Build(newService(), "missing", 0); err == nil {
		t.Fatal("Expected an error for an unknown entity")
	}
}

func TestWriteFile(t *testing.T) {
	r, err := Build(newService(), "2", 0)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "reports", "entity-2.md")
	if err := r.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != r.Markdown() {
		t.Errorf("Expected the written file to match the rendered report")
	}
}
