package analytics

import "testing"

func findCoverage(t *testing.T, coverage []Coverage, skill string) Coverage {
	t.Helper()
	for _, c := range coverage {
		if c.Skill == skill {
			return c
		}
	}
	t.Fatalf("no coverage entry for %q in %+v", skill, coverage)
	return Coverage{}
}

func findGap(gaps []Gap, skill string) *Gap {
	for i := range gaps {
		if gaps[i].Skill == skill {
			return &gaps[i]
		}
	}
	return nil
}

func TestSkillCoverageGapSeverity(t *testing.T) {
	skills := []string{"Rust", "Go", "React"}
	talents := []TalentSkills{
		{FullName: "Ada", Skills: []SkillEntry{{Name: "Go", Proficiency: "expert"}, {Name: "React"}}},
		{FullName: "Linus", Skills: []SkillEntry{{Name: "Go", Proficiency: "advanced"}}},
		{FullName: "Grace", Skills: []SkillEntry{{Name: "React", Proficiency: "beginner"}}},
	}

	coverage, gaps := SkillCoverage(skills, talents)

	rust := findCoverage(t, coverage, "Rust")
	if rust.Count != 0 {
		t.Fatalf("Rust count = %d, want 0", rust.Count)
	}
	rustGap := findGap(gaps, "Rust")
	if rustGap == nil || rustGap.Severity != SeverityCritical || rustGap.Count != 0 {
		t.Fatalf("Rust gap = %+v, want critical with count 0", rustGap)
	}

	goCov := findCoverage(t, coverage, "Go")
	if goCov.Count != 2 || goCov.ExpertCount != 2 {
		t.Fatalf("Go coverage = %+v, want 2 holders, 2 experts", goCov)
	}
	if findGap(gaps, "Go") != nil {
		t.Fatalf("Go has two holders and must not be a gap")
	}

	reactCov := findCoverage(t, coverage, "React")
	if reactCov.Count != 2 || reactCov.ExpertCount != 0 {
		t.Fatalf("React coverage = %+v, want 2 holders, 0 experts", reactCov)
	}
}

func TestSkillCoverageSingleHolderIsHighGap(t *testing.T) {
	talents := []TalentSkills{
		{FullName: "Ada", Skills: []SkillEntry{{Name: "Rust", Proficiency: "expert"}}},
	}
	_, gaps := SkillCoverage([]string{"Rust"}, talents)
	gap := findGap(gaps, "Rust")
	if gap == nil || gap.Severity != SeverityHigh || gap.Count != 1 {
		t.Fatalf("gap = %+v, want high with count 1", gap)
	}
}

func TestSkillCoverageMatchIsCaseInsensitive(t *testing.T) {
	talents := []TalentSkills{
		{FullName: "Ada", Skills: []SkillEntry{{Name: "react"}}},
		{FullName: "Linus", Skills: []SkillEntry{{Name: "REACT", Proficiency: "Expert"}}},
	}
	coverage, gaps := SkillCoverage([]string{"React"}, talents)
	cov := findCoverage(t, coverage, "React")
	if cov.Count != 2 {
		t.Fatalf("case-insensitive match failed: %+v", cov)
	}
	if cov.ExpertCount != 1 {
		t.Fatalf("proficiency match must be case-insensitive too: %+v", cov)
	}
	if findGap(gaps, "React") != nil {
		t.Fatalf("React with two holders must not be flagged")
	}
}

func TestSkillCoverageCountsTalentOncePerSkill(t *testing.T) {
	// A talent listing the same skill twice still counts once.
	talents := []TalentSkills{
		{FullName: "Ada", Skills: []SkillEntry{{Name: "Go"}, {Name: "go", Proficiency: "expert"}}},
	}
	coverage, _ := SkillCoverage([]string{"Go"}, talents)
	if coverage[0].Count != 1 {
		t.Fatalf("duplicate skill entries inflated the count: %+v", coverage[0])
	}
}
