package nlp

import (
	"sort"
	"time"
)

// Correction is one waiter fix: the raw line they typed and the menu item
// it should have resolved to.
type Correction struct {
	ID              string    `json:"id,omitempty"`
	RawText         string    `json:"raw_text"`
	PredictedMenuID string    `json:"predicted_menu_id,omitempty"`
	CorrectedMenuID string    `json:"corrected_menu_id"`
	CorrectedBy     string    `json:"corrected_by,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// OverrideRules is an exact-match table from normalized raw text to menu id.
// A hit short-circuits fuzzy matching and category resolution entirely.
type OverrideRules struct {
	byText map[string]string
}

// BuildOverrides folds corrections into override rules, newest write wins:
// when the same text was corrected twice, only the most recent target
// survives. Corrections without a target are skipped.
func BuildOverrides(corrections []Correction) OverrideRules {
	rules := OverrideRules{byText: make(map[string]string, len(corrections))}

	ordered := make([]Correction, len(corrections))
	copy(ordered, corrections)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	for _, corr := range ordered {
		if corr.CorrectedMenuID == "" {
			continue
		}
		base, _ := ExtractNote(corr.RawText)
		key := Normalize(base)
		if key == "" {
			continue
		}
		if _, seen := rules.byText[key]; !seen {
			rules.byText[key] = corr.CorrectedMenuID
		}
	}
	return rules
}

// Lookup returns the override target for a normalized line, if any.
func (r OverrideRules) Lookup(normText string) (string, bool) {
	id, ok := r.byText[normText]
	return id, ok
}

func (r OverrideRules) Len() int {
	return len(r.byText)
}
