package dataset

import (
	"fmt"
	"sort"

	"ypll_explorer/pkg/core/cause"
)

// Store is the immutable, deduplicated record set. It is built once at
// startup and only read afterwards; concurrent readers are safe because
// nothing mutates it.
type Store struct {
	records []MortalityRecord
	years   []int
	states  []string
}

// NewStore deduplicates and tags the rows and freezes them into a Store.
// Exactly one record survives per (year, state, sex, cause_raw); later
// duplicates are dropped, keeping the first occurrence.
func NewStore(records []MortalityRecord) *Store {
	seen := make(map[string]bool, len(records))
	kept := make([]MortalityRecord, 0, len(records))
	yearSet := make(map[int]bool)
	stateSet := make(map[string]bool)

	dropped := 0
	for _, rec := range records {
		key := fmt.Sprintf("%d|%s|%s|%s", rec.Year, rec.State, rec.Sex, rec.CauseRaw)
		if seen[key] {
			dropped++
			continue
		}
		seen[key] = true
		rec.Cause = cause.Classify(rec.CauseRaw)
		kept = append(kept, rec)
		yearSet[rec.Year] = true
		stateSet[rec.State] = true
	}
	if dropped > 0 {
		fmt.Printf("[DATA] Dropped %d duplicate rows during dedup\n", dropped)
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	states := make([]string, 0, len(stateSet))
	for s := range stateSet {
		states = append(states, s)
	}
	sort.Strings(states)

	return &Store{records: kept, years: years, states: states}
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	return len(s.records)
}

// FilterYear returns the records observed in the given year. An empty result
// is a valid outcome, not an error; the caller validates the year against
// Years() if it needs to.
func (s *Store) FilterYear(year int) []MortalityRecord {
	out := make([]MortalityRecord, 0)
	for _, rec := range s.records {
		if rec.Year == year {
			out = append(out, rec)
		}
	}
	return out
}

// Years returns the distinct observation years, ascending.
func (s *Store) Years() []int {
	out := make([]int, len(s.years))
	copy(out, s.years)
	return out
}

// States returns the distinct state names, sorted.
func (s *Store) States() []string {
	out := make([]string, len(s.states))
	copy(out, s.states)
	return out
}
