// Package extract pulls structured fields out of normalized inquiry
// text. Each field has an ordered rule table; every rule match becomes
// a candidate, candidates are validated into canonical form, boosted by
// nearby context vocabulary, deduplicated by value, and the best
// survivor wins.
package extract

import (
	"strings"

	"github.com/sawadari/hankyo/internal/types"
)

const (
	contextWindow   = 60  // bytes either side of a match
	contextBoostPer = 0.1 // per context keyword found
	contextBoostCap = 0.2
)

type candidate struct {
	value string
	conf  float64
	rule  string
	pos   int
}

// Fields runs every rule table against text and returns at most one
// ExtractedField per field name, in FieldOrder.
func Fields(text string) []types.ExtractedField {
	var out []types.ExtractedField
	for _, name := range FieldOrder {
		if f, ok := extractField(name, text); ok {
			out = append(out, f)
		}
	}
	return out
}

func extractField(name, text string) (types.ExtractedField, bool) {
	var cands []candidate
	for _, r := range fieldRules[name] {
		for _, m := range r.Pattern.FindAllStringSubmatchIndex(text, -1) {
			start, end := m[0], m[1]
			if len(m) >= 4 && m[2] >= 0 {
				start, end = m[2], m[3]
			}
			raw := text[start:end]
			v, ok := validateValue(name, raw)
			if !ok {
				continue
			}
			conf := r.Confidence + contextBoost(name, text, start)
			if conf > 1.0 {
				conf = 1.0
			}
			cands = append(cands, candidate{value: v, conf: conf, rule: r.Description, pos: start})
		}
	}
	if len(cands) == 0 {
		return types.ExtractedField{}, false
	}

	// Same canonical value found by several rules keeps only its best
	// scoring occurrence.
	byValue := make(map[string]candidate, len(cands))
	for _, c := range cands {
		prev, seen := byValue[c.value]
		if !seen || c.conf > prev.conf || (c.conf == prev.conf && c.pos < prev.pos) {
			byValue[c.value] = c
		}
	}

	best := candidate{conf: -1}
	for _, c := range byValue {
		if c.conf > best.conf || (c.conf == best.conf && c.pos < best.pos) {
			best = c
		}
	}
	return types.ExtractedField{
		Name:       name,
		Value:      best.value,
		Confidence: best.conf,
		Rule:       best.rule,
		Position:   best.pos,
		Validated:  true,
	}, true
}

func contextBoost(field, text string, pos int) float64 {
	lo, hi := pos-contextWindow, pos+contextWindow
	if lo < 0 {
		lo = 0
	}
	if hi > len(text) {
		hi = len(text)
	}
	window := strings.ToLower(text[lo:hi])
	var boost float64
	for _, kw := range contextKeywords[field] {
		if strings.Contains(window, kw) {
			boost += contextBoostPer
			if boost >= contextBoostCap {
				return contextBoostCap
			}
		}
	}
	return boost
}

// MeanConfidence averages the confidences of fields; zero with no
// fields.
func MeanConfidence(fields []types.ExtractedField) float64 {
	if len(fields) == 0 {
		return 0
	}
	var sum float64
	for _, f := range fields {
		sum += f.Confidence
	}
	return sum / float64(len(fields))
}
