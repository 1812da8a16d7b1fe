package ranking

import "strings"

// Entry is one valid row of a competition standings table. Position is
// always a parseable positive integer; rows that fail that bar never become
// entries.
type Entry struct {
	Position        int
	Points          *int
	ClubName        string
	CompetitionName string
}

// Summary is the single ranking line attached to a club results payload.
type Summary struct {
	Position        int    `json:"position"`
	Points          *int   `json:"points,omitempty"`
	CompetitionName string `json:"competitionName,omitempty"`
}

// Pick selects the entry for a club out of a standings table. With a name
// hint the first entry whose club name contains the hint (or the reverse,
// both case-insensitive) wins; without one, or when nothing matches, the
// first entry wins. Returns nil on an empty table.
func Pick(entries []Entry, clubNameHint string) *Entry {
	if len(entries) == 0 {
		return nil
	}

	hint := strings.ToLower(strings.TrimSpace(clubNameHint))
	if hint != "" {
		for i := range entries {
			name := strings.ToLower(strings.TrimSpace(entries[i].ClubName))
			if name == "" {
				continue
			}
			if strings.Contains(name, hint) || strings.Contains(hint, name) {
				return &entries[i]
			}
		}
	}
	return &entries[0]
}

// Summarize converts a picked entry into the payload summary.
func (e Entry) Summarize() Summary {
	return Summary{
		Position:        e.Position,
		Points:          e.Points,
		CompetitionName: e.CompetitionName,
	}
}
