// Package search filters and summarizes an in-memory battlecard set.
package search

import (
	"strings"

	"github.com/octobees/battlecards/internal/entity"
)

// Query narrows a record set. Zero-valued fields match everything.
type Query struct {
	SearchTerm  string
	ThreatLevel string
	Vertical    string
	Region      string
}

// Filter returns the records matching every set criterion, in input order.
// SearchTerm is a case-insensitive substring over the company name, one-line
// summary and portfolio overview. ThreatLevel compares exactly.
func Filter(records []entity.Battlecard, q Query) []entity.Battlecard {
	term := strings.ToLower(q.SearchTerm)
	out := make([]entity.Battlecard, 0, len(records))
	for _, record := range records {
		if term != "" && !matchesTerm(record, term) {
			continue
		}
		if q.ThreatLevel != "" && record.ThreatLevel != q.ThreatLevel {
			continue
		}
		if q.Vertical != "" && !containsFold(record.StrongestVerticals, q.Vertical) {
			continue
		}
		if q.Region != "" && !containsFold(record.StrongestRegions, q.Region) {
			continue
		}
		out = append(out, record)
	}
	return out
}

func matchesTerm(record entity.Battlecard, term string) bool {
	for _, text := range []string{record.CompanyName, record.OneLineSummary, record.ProductPortfolioOverview} {
		if strings.Contains(strings.ToLower(text), term) {
			return true
		}
	}
	return false
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
