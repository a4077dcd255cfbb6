package services

import (
	"testing"

	"gorm.io/datatypes"
)

func TestParseTalentSkills_MixedEntryShapes(t *testing.T) {
	raw := datatypes.JSON([]byte(`["Go", {"name": "Postgres", "proficiency": "expert"}, "  ", {"name": ""}, 42]`))
	entries := ParseTalentSkills(raw)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries got %d: %+v", len(entries), entries)
	}
	if entries[0].Name != "Go" || entries[0].Proficiency != "" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Name != "Postgres" || entries[1].Proficiency != "expert" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestParseTalentSkills_TrimsWhitespace(t *testing.T) {
	raw := datatypes.JSON([]byte(`[" Rust ", {"name": "  Kubernetes  "}]`))
	entries := ParseTalentSkills(raw)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries got %d", len(entries))
	}
	if entries[0].Name != "Rust" || entries[1].Name != "Kubernetes" {
		t.Fatalf("expected trimmed names, got %+v", entries)
	}
}

func TestParseTalentSkills_BadPayloads(t *testing.T) {
	if got := ParseTalentSkills(nil); got != nil {
		t.Fatalf("expected nil for empty payload, got %+v", got)
	}
	if got := ParseTalentSkills(datatypes.JSON([]byte(`{"not": "an array"}`))); got != nil {
		t.Fatalf("expected nil for non-array payload, got %+v", got)
	}
	if got := ParseTalentSkills(datatypes.JSON([]byte(`not json`))); got != nil {
		t.Fatalf("expected nil for malformed payload, got %+v", got)
	}
}
