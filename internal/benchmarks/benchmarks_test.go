package benchmarks

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDefinitions(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "benchmarks.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write definitions: %v", err)
	}
	return path
}

func TestLoadAndLookup(t *testing.T) {
	path := writeDefinitions(t, `
layers:
  Startup:
    - kpi_name: Monthly Recurring Revenue
      unit: EUR
      median: 15000
      top_quartile: 60000
  scaleup:
    - kpi_name: Net Revenue Retention
      unit: percent
      median: 102
      top_quartile: 120
`)
	catalog, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Layer lookup is case-insensitive on both sides.
	got := catalog.ForLayer("STARTUP")
	if len(got) != 1 {
		t.Fatalf("ForLayer(STARTUP) returned %d entries, want 1", len(got))
	}
	if got[0].KPIName != "Monthly Recurring Revenue" || got[0].Median != 15000 {
		t.Fatalf("unexpected benchmark: %+v", got[0])
	}

	if got := catalog.ForLayer("deeptech"); got != nil {
		t.Fatalf("ForLayer(deeptech) = %+v, want nil", got)
	}
	if len(catalog.Layers()) != 2 {
		t.Fatalf("Layers() = %v, want 2 entries", catalog.Layers())
	}
}

func TestLoadRejectsMissingKPIName(t *testing.T) {
	path := writeDefinitions(t, `
layers:
  startup:
    - unit: EUR
      median: 100
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted an entry without kpi_name")
	}
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	path := writeDefinitions(t, "layers: {}\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted a definitions file with no layers")
	}
}
