package benchmarks

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Benchmark is one reference KPI range for a portfolio layer, loaded from the
// definitions file at startup.
type Benchmark struct {
	KPIName     string  `yaml:"kpi_name" json:"kpi_name"`
	Unit        string  `yaml:"unit" json:"unit"`
	Median      float64 `yaml:"median" json:"median"`
	TopQuartile float64 `yaml:"top_quartile" json:"top_quartile"`
	Notes       string  `yaml:"notes,omitempty" json:"notes,omitempty"`
}

type definitionsFile struct {
	Layers map[string][]Benchmark `yaml:"layers"`
}

// Catalog holds benchmark definitions keyed by layer.
type Catalog struct {
	layers map[string][]Benchmark
}

func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read benchmark definitions: %w", err)
	}
	var file definitionsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse benchmark definitions: %w", err)
	}
	if len(file.Layers) == 0 {
		return nil, fmt.Errorf("benchmark definitions file %q has no layers", path)
	}

	layers := make(map[string][]Benchmark, len(file.Layers))
	for layer, entries := range file.Layers {
		key := strings.ToLower(strings.TrimSpace(layer))
		if key == "" {
			continue
		}
		for i, b := range entries {
			if strings.TrimSpace(b.KPIName) == "" {
				return nil, fmt.Errorf("layer %q entry %d: kpi_name is required", layer, i)
			}
		}
		layers[key] = entries
	}
	return &Catalog{layers: layers}, nil
}

// ForLayer returns the benchmarks for a layer, or nil when none are defined.
func (c *Catalog) ForLayer(layer string) []Benchmark {
	return c.layers[strings.ToLower(strings.TrimSpace(layer))]
}

func (c *Catalog) Layers() []string {
	out := make([]string, 0, len(c.layers))
	for layer := range c.layers {
		out = append(out, layer)
	}
	return out
}
