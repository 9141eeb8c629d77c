package entity

import "strings"

// ThreatLevel is the canonical spelling of a competitive-severity category.
type ThreatLevel string

const (
	ThreatCritical ThreatLevel = "Critical"
	ThreatHigh     ThreatLevel = "High"
	ThreatMedium   ThreatLevel = "Medium"
	ThreatLow      ThreatLevel = "Low"
	ThreatVeryLow  ThreatLevel = "Very Low"
	ThreatMinimal  ThreatLevel = "Minimal"
)

// ThreatLevels lists the accepted vocabulary from most to least severe.
var ThreatLevels = []ThreatLevel{
	ThreatCritical,
	ThreatHigh,
	ThreatMedium,
	ThreatLow,
	ThreatVeryLow,
	ThreatMinimal,
}

// ParseThreatLevel matches value against the vocabulary, ignoring case and
// surrounding whitespace.
func ParseThreatLevel(value string) (ThreatLevel, bool) {
	value = strings.TrimSpace(value)
	for _, level := range ThreatLevels {
		if strings.EqualFold(value, string(level)) {
			return level, true
		}
	}
	return "", false
}

// Tone buckets a threat level for display purposes. Very Low and Minimal share
// a bucket, as do High and Critical.
func (l ThreatLevel) Tone() string {
	switch l {
	case ThreatCritical, ThreatHigh:
		return "danger"
	case ThreatMedium:
		return "warning"
	case ThreatLow:
		return "caution"
	case ThreatVeryLow, ThreatMinimal:
		return "muted"
	default:
		return "neutral"
	}
}
