package entity

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// Structured attributes are stored and imported as embedded JSON text. Decoding
// is best-effort: malformed text yields an empty value and never an error.
// Individual values are read through gjson so numbers and strings are accepted
// interchangeably ({"followers": 5000} and {"followers": "5000"} both load).

func decodeSocialPlatforms(text string) map[string]SocialPresence {
	out := map[string]SocialPresence{}
	forEachObjectEntry(text, func(key string, value gjson.Result) {
		out[key] = SocialPresence{
			Followers: value.Get("followers").String(),
			Strategy:  value.Get("strategy").String(),
		}
	})
	return out
}

func decodeFeatureComparison(text string) map[string]FeatureComparison {
	out := map[string]FeatureComparison{}
	forEachObjectEntry(text, func(key string, value gjson.Result) {
		out[key] = FeatureComparison{
			Us:        value.Get("us").String(),
			Them:      value.Get("them").String(),
			Advantage: value.Get("advantage").String(),
		}
	})
	return out
}

func decodePricingTiers(text string) map[string]PricingTier {
	out := map[string]PricingTier{}
	forEachObjectEntry(text, func(key string, value gjson.Result) {
		tier := PricingTier{Price: value.Get("price").String(), Features: []string{}}
		for _, feature := range value.Get("features").Array() {
			if s := strings.TrimSpace(feature.String()); s != "" {
				tier.Features = append(tier.Features, s)
			}
		}
		out[key] = tier
	})
	return out
}

func decodePricingComparison(text string) map[string]PricingComparison {
	out := map[string]PricingComparison{}
	forEachObjectEntry(text, func(key string, value gjson.Result) {
		out[key] = PricingComparison{
			Ours:       value.Get("kissflow").String(),
			Competitor: value.Get("competitor").String(),
			Advantage:  value.Get("advantage").String(),
		}
	})
	return out
}

func decodeDeals(text string) []Deal {
	out := []Deal{}
	text = strings.TrimSpace(text)
	if text == "" || !gjson.Valid(text) {
		return out
	}
	parsed := gjson.Parse(text)
	if !parsed.IsArray() {
		return out
	}
	for _, item := range parsed.Array() {
		if !item.IsObject() {
			continue
		}
		out = append(out, Deal{
			Deal:   item.Get("deal").String(),
			Reason: item.Get("reason").String(),
			Value:  item.Get("value").String(),
		})
	}
	return out
}

func forEachObjectEntry(text string, fn func(key string, value gjson.Result)) {
	text = strings.TrimSpace(text)
	if text == "" || !gjson.Valid(text) {
		return
	}
	parsed := gjson.Parse(text)
	if !parsed.IsObject() {
		return
	}
	parsed.ForEach(func(key, value gjson.Result) bool {
		if value.IsObject() {
			fn(key.String(), value)
		}
		return true
	})
}

func encodeJSON(value any, empty string) string {
	raw, err := json.Marshal(value)
	if err != nil {
		return empty
	}
	return string(raw)
}

// SplitList turns pipe-joined text into a list, trimming items and dropping
// empty ones. The result is never nil.
func SplitList(text string) []string {
	out := []string{}
	for _, item := range strings.Split(text, "|") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// JoinList is the inverse of SplitList. Items containing "|" do not survive a
// round trip.
func JoinList(items []string) string {
	return strings.Join(items, "|")
}

// ParseFlag reports whether text spells an affirmative flag (true or yes).
func ParseFlag(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true", "yes":
		return true
	default:
		return false
	}
}
