package match

import (
	"sort"
	"time"
)

// Selection holds the outcome of picking the most recent completed match and
// the nearest upcoming one from a candidate pool. Either side may be nil;
// both nil means the pool held no usable data.
type Selection struct {
	Last *Match
	Next *Match
}

// Select partitions the pool into completed and upcoming matches and picks
// one of each by date. Extra forward-looking entries (the calendar feed) are
// unioned into the upcoming side before the pick; the calendar is the more
// reliable source for strictly-future fixtures.
//
// A past-dated match without a full score pair lands in neither partition.
// The upstream sometimes emits such records for unreported matches; they are
// deliberately left invisible rather than guessed at.
func Select(results []Match, calendar []Match, cpNo string, now time.Time) Selection {
	completed := make([]Match, 0, len(results))
	upcoming := make([]Match, 0, len(results)+len(calendar))

	for _, m := range results {
		if cpNo != "" && !m.InCompetition(cpNo) {
			continue
		}
		switch {
		case m.Completed():
			completed = append(completed, m)
		case !m.Date.Before(now):
			upcoming = append(upcoming, m)
		}
	}

	for _, m := range calendar {
		if cpNo != "" && !m.InCompetition(cpNo) {
			continue
		}
		if m.Completed() || m.Date.Before(now) {
			continue
		}
		upcoming = append(upcoming, m)
	}

	// Stable sorts keep input order on identical dates, which makes the
	// tie-break deterministic without promising anything contractual.
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].Date.After(completed[j].Date)
	})
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(upcoming[j].Date)
	})

	var out Selection
	if len(completed) > 0 {
		out.Last = &completed[0]
	}
	if len(upcoming) > 0 {
		out.Next = &upcoming[0]
	}
	return out
}
