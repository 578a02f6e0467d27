package history

import (
	"errors"
	"sort"

	"github.com/coolbeans/slovlex/pkg/types"
)

// ErrNoCandidates is returned when no real effective version exists
// after filtering promulgation records and undated entries.
var ErrNoCandidates = errors.New("history: no candidate versions")

// Selection is the result of version selection: the legally applicable
// revision for the reference date, its classified status, and the law's
// first-in-force date.
type Selection struct {
	Entry  HistoryEntry
	Status types.DocumentStatus

	// FirstInForceDate is the earliest in-force-from date across
	// candidates, except for a not-yet-in-force law, where it is the
	// selected future entry's own start date.
	FirstInForceDate string
}

// SelectHistoryEntry picks the revision legally in force at referenceDate
// (ISO YYYY-MM-DD) and classifies its status. String comparison on dates
// is valid because the format is fixed-width ISO.
//
// Within equal in-force-from dates the pre-sort document order is kept by
// the stable sort, and the last active entry wins: later-declared
// same-day entries supersede earlier ones.
func SelectHistoryEntry(entries []HistoryEntry, referenceDate string) (*Selection, error) {
	candidates := make([]HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Promulgation || entry.InForceFrom == "" {
			continue
		}
		candidates = append(candidates, entry)
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].InForceFrom < candidates[j].InForceFrom
	})
	firstInForce := candidates[0].InForceFrom

	var active []HistoryEntry
	for _, candidate := range candidates {
		if candidate.InForceFrom > referenceDate {
			continue
		}
		if candidate.InForceTo == "" || candidate.InForceTo >= referenceDate {
			active = append(active, candidate)
		}
	}

	if len(active) > 0 {
		return &Selection{
			Entry:            active[len(active)-1],
			Status:           types.StatusInForce,
			FirstInForceDate: firstInForce,
		}, nil
	}

	for _, candidate := range candidates {
		if candidate.InForceFrom > referenceDate {
			return &Selection{
				Entry:            candidate,
				Status:           types.StatusNotYetInForce,
				FirstInForceDate: candidate.InForceFrom,
			}, nil
		}
	}

	// The reference date falls after every candidate's coverage.
	return &Selection{
		Entry:            candidates[len(candidates)-1],
		Status:           types.StatusRepealed,
		FirstInForceDate: firstInForce,
	}, nil
}
