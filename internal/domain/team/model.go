package team

import "strings"

// Competition is one competition a club team is engaged in.
type Competition struct {
	// ID is the string form of the federation competition number (cp_no).
	ID    string
	Name  string
	Type  string
	Level string
}

// Team is one entry of a club's normalized roster. Key is synthesized from
// category code, squad number and code/label so it stays unique within one
// catalog response even when the upstream omits a stable id.
type Team struct {
	Key           string
	Label         string
	CategoryCode  string
	CategoryLabel string
	Number        string
	Code          string
	Competitions  []Competition
}

// Senior reports whether the team label designates a senior squad.
func (t Team) Senior() bool {
	return strings.Contains(strings.ToLower(t.Label), "senior")
}

// BuildKey derives the catalog key for a team from its parts. Empty parts
// are skipped; the label backs the code when the upstream carries neither.
func BuildKey(categoryCode, number, code, label string) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{categoryCode, number, code} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) < 3 {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, "-")
}
