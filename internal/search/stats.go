package search

import (
	"time"

	"github.com/octobees/battlecards/internal/entity"
)

// RecentWindow is how far back an update counts as recent on the dashboard.
const RecentWindow = 30 * 24 * time.Hour

// Stats holds the dashboard counters.
type Stats struct {
	Total           int `json:"total"`
	Critical        int `json:"critical"`
	High            int `json:"high"`
	Medium          int `json:"medium"`
	Low             int `json:"low"`
	VeryLow         int `json:"very_low"`
	Unrated         int `json:"unrated"`
	RecentlyUpdated int `json:"recently_updated"`
}

// Summarize counts records per threat level and those updated within
// RecentWindow of now. Minimal is counted with Very Low.
func Summarize(records []entity.Battlecard, now time.Time) Stats {
	stats := Stats{Total: len(records)}
	cutoff := now.Add(-RecentWindow)
	for _, record := range records {
		level, _ := entity.ParseThreatLevel(record.ThreatLevel)
		switch level {
		case entity.ThreatCritical:
			stats.Critical++
		case entity.ThreatHigh:
			stats.High++
		case entity.ThreatMedium:
			stats.Medium++
		case entity.ThreatLow:
			stats.Low++
		case entity.ThreatVeryLow, entity.ThreatMinimal:
			stats.VeryLow++
		default:
			stats.Unrated++
		}
		if record.LastUpdated != nil && record.LastUpdated.After(cutoff) {
			stats.RecentlyUpdated++
		}
	}
	return stats
}
