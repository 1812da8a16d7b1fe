package team

import "strings"

// SelectDefault picks the team used when the caller names none: "Senior A"
// when present, otherwise the first senior team, otherwise the first team in
// catalog order. Matching is case-insensitive on the label.
func SelectDefault(teams []Team) *Team {
	if len(teams) == 0 {
		return nil
	}

	var firstSenior *Team
	for i := range teams {
		if !teams[i].Senior() {
			continue
		}
		if firstSenior == nil {
			firstSenior = &teams[i]
		}
		if isSeniorA(teams[i].Label) {
			return &teams[i]
		}
	}
	if firstSenior != nil {
		return firstSenior
	}
	return &teams[0]
}

func isSeniorA(label string) bool {
	normalized := strings.Join(strings.Fields(strings.ToLower(label)), " ")
	return strings.Contains(normalized, "senior a") || strings.HasSuffix(normalized, "seniora")
}
