// Package query derives what the dashboard shows from the record list:
// filtered rows, per-tier counts, risk scores and bulk selections.
package query

import (
	"strings" // Case-insensitive matching

	"sentinel_engine/internal/domain" // Record model
)

// Counts holds per-tier totals over the full list.
type Counts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// MatchesSearch reports whether term occurs, ignoring case, in the record's
// user or id. An empty term matches everything.
func MatchesSearch(r domain.Transaction, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(r.User), term) ||
		strings.Contains(strings.ToLower(r.ID), term)
}

// MatchesRisk reports whether the record passes the risk filter. "All" and
// the empty string match every record; other values must match exactly.
func MatchesRisk(r domain.Transaction, filter string) bool {
	return filter == "" || filter == domain.RiskAll || r.Risk == filter
}

// Filter returns the records matching both predicates, in list order.
func Filter(list []domain.Transaction, term, risk string) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(list))
	for _, r := range list {
		if MatchesSearch(r, term) && MatchesRisk(r, risk) {
			out = append(out, r)
		}
	}
	return out
}

// Count tallies records by tier. Unknown tiers are not counted.
func Count(list []domain.Transaction) Counts {
	var c Counts
	for _, r := range list {
		switch r.Risk {
		case domain.RiskHigh:
			c.High++
		case domain.RiskMedium:
			c.Medium++
		case domain.RiskLow:
			c.Low++
		}
	}
	return c
}

// RiskScore is the fixed score shown in the detail panel.
func RiskScore(risk string) int {
	switch risk {
	case domain.RiskHigh:
		return 99
	case domain.RiskMedium:
		return 65
	case domain.RiskLow:
		return 18
	default:
		return 0
	}
}

// Select returns the records whose id is in ids, in list order.
func Select(list []domain.Transaction, ids []string) []domain.Transaction {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]domain.Transaction, 0, len(ids))
	for _, r := range list {
		if want[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

// SelectAll returns the ids of exactly the filtered set.
func SelectAll(filtered []domain.Transaction) []string {
	ids := make([]string, len(filtered))
	for i, r := range filtered {
		ids[i] = r.ID
	}
	return ids
}

// SplitIDs parses a comma separated id list, trimming each id and dropping
// blanks.
func SplitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
