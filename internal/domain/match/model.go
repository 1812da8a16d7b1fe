package match

import "time"

// Match is the canonical view of one federation match record. Optional
// fields stay nil when the upstream record does not carry them; an absent
// team name is never replaced with an empty string.
type Match struct {
	Date            time.Time
	Time            string
	HomeName        *string
	AwayName        *string
	HomeScore       *int
	AwayScore       *int
	CompetitionName string
	// CompetitionID is nil when the record carries no competition tag at
	// all, and never the empty string.
	CompetitionID *string
	VenueCity     string
}

// Completed reports whether the match has a full score pair. Score presence
// is the only completion signal; the date alone never marks a match played.
func (m Match) Completed() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// InCompetition reports whether the match carries the given competition tag.
// Comparison is exact string equality on the federation competition number.
func (m Match) InCompetition(cpNo string) bool {
	return m.CompetitionID != nil && *m.CompetitionID == cpNo
}
