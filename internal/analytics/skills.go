package analytics

import "strings"

// Gap severities for under-covered skills.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
)

// SkillEntry is one skill attached to a talent. Proficiency may be empty:
// intake forms store either a plain name or a {name, proficiency} pair.
type SkillEntry struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
}

// TalentSkills is the slice of a talent record the matrix needs.
type TalentSkills struct {
	FullName string
	Skills   []SkillEntry
}

type Coverage struct {
	Skill       string   `json:"skill"`
	Count       int      `json:"count"`
	ExpertCount int      `json:"expert_count"`
	Holders     []string `json:"holders"`
	Experts     []string `json:"experts"`
}

type Gap struct {
	Skill    string `json:"skill"`
	Count    int    `json:"count"`
	Severity string `json:"severity"`
}

func expertProficiency(p string) bool {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "advanced", "expert":
		return true
	}
	return false
}

// SkillCoverage computes, per defined skill, which talents hold it
// (case-insensitive name match), which of those are experts, and the gap
// list: zero holders is critical, exactly one is high, two or more means
// the skill does not appear in the gap list. Inputs are never mutated.
func SkillCoverage(skillNames []string, talents []TalentSkills) ([]Coverage, []Gap) {
	coverage := make([]Coverage, 0, len(skillNames))
	gaps := make([]Gap, 0)

	for _, skillName := range skillNames {
		want := strings.ToLower(strings.TrimSpace(skillName))
		cov := Coverage{
			Skill:   skillName,
			Holders: []string{},
			Experts: []string{},
		}
		for _, talent := range talents {
			for _, entry := range talent.Skills {
				if strings.ToLower(strings.TrimSpace(entry.Name)) != want {
					continue
				}
				cov.Count++
				cov.Holders = append(cov.Holders, talent.FullName)
				if expertProficiency(entry.Proficiency) {
					cov.ExpertCount++
					cov.Experts = append(cov.Experts, talent.FullName)
				}
				break
			}
		}
		coverage = append(coverage, cov)

		switch cov.Count {
		case 0:
			gaps = append(gaps, Gap{Skill: skillName, Count: 0, Severity: SeverityCritical})
		case 1:
			gaps = append(gaps, Gap{Skill: skillName, Count: 1, Severity: SeverityHigh})
		}
	}
	return coverage, gaps
}
