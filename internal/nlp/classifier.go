// Package nlp classifies free-text taverna order lines against a menu:
// normalization, quantity parsing, fuzzy matching, station routing and
// waiter-correction overrides. Everything here is pure computation; the
// engine neither performs I/O nor returns errors, it degrades instead.
package nlp

import (
	"math"
	"strings"
)

// Config carries the engine tunables. The zero value of any field means
// "use the default"; New copies everything, so a Classifier never observes
// later mutations of the caller's config.
type Config struct {
	MatchThreshold       float64    `json:"match_threshold" mapstructure:"match_threshold"`
	FamilyMatchThreshold float64    `json:"family_match_threshold" mapstructure:"family_match_threshold"`
	MeasureBonus         float64    `json:"measure_bonus" mapstructure:"measure_bonus"`
	PortionPenalty       float64    `json:"portion_penalty" mapstructure:"portion_penalty"`
	StemRules            []StemRule `json:"stem_rules" mapstructure:"stem_rules"`
}

func DefaultConfig() Config {
	return Config{
		MatchThreshold:       defaultMatchThreshold,
		FamilyMatchThreshold: defaultFamilyMatchThreshold,
		MeasureBonus:         defaultMeasureBonus,
		PortionPenalty:       defaultPortionPenalty,
		StemRules:            DefaultStemRules(),
	}
}

// Classifier is the classification engine. Construct once, share freely:
// classification is a pure function of the inputs, so a single Classifier
// is safe for concurrent use across goroutines.
type Classifier struct {
	cfg   Config
	rules []StemRule
}

func New(cfg Config) *Classifier {
	def := DefaultConfig()
	if cfg.MatchThreshold <= 0 {
		cfg.MatchThreshold = def.MatchThreshold
	}
	if cfg.FamilyMatchThreshold <= 0 {
		cfg.FamilyMatchThreshold = def.FamilyMatchThreshold
	}
	if cfg.MeasureBonus <= 0 {
		cfg.MeasureBonus = def.MeasureBonus
	}
	if cfg.PortionPenalty <= 0 {
		cfg.PortionPenalty = def.PortionPenalty
	}
	if len(cfg.StemRules) == 0 {
		cfg.StemRules = def.StemRules
	}
	return &Classifier{cfg: cfg, rules: normalizeRules(cfg.StemRules)}
}

// normalizeRules builds the classifier's private, normalized copy of the
// stem table: stems lowercased and accent-stripped, duplicates dropped,
// empty rules removed. Rule order is preserved, it encodes priority.
func normalizeRules(rules []StemRule) []StemRule {
	out := make([]StemRule, 0, len(rules))
	for _, rule := range rules {
		category := strings.ToLower(strings.TrimSpace(rule.Category))
		if category == "" {
			continue
		}
		seen := make(map[string]bool, len(rule.Stems))
		stems := make([]string, 0, len(rule.Stems))
		for _, stem := range rule.Stems {
			n := Normalize(stem)
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			stems = append(stems, n)
		}
		if len(stems) == 0 {
			continue
		}
		out = append(out, StemRule{Category: category, Stems: stems})
	}
	return out
}

// ClassifiedLine is the engine's verdict for one order line. An empty
// MenuID means the line stayed unresolved: the category still routes it,
// prices stay zero, nothing is lost.
type ClassifiedLine struct {
	Text           string  `json:"text"`
	Note           string  `json:"note,omitempty"`
	Category       string  `json:"category"`
	MenuID         string  `json:"menu_id,omitempty"`
	MenuName       string  `json:"menu_name,omitempty"`
	UnitPriceCents int64   `json:"unit_price_cents,omitempty"`
	Quantity       float64 `json:"qty"`
	Unit           string  `json:"unit,omitempty"`
	Multiplier     float64 `json:"multiplier"`
	LineTotalCents int64   `json:"line_total_cents,omitempty"`
	Score          float64 `json:"score,omitempty"`
}

// Resolved reports whether the line landed on a concrete menu entry.
func (l ClassifiedLine) Resolved() bool {
	return l.MenuID != ""
}

// ClassifyOrder classifies a whole ticket against a menu snapshot and the
// correction history. It builds a fresh index per call; callers with a
// stable menu should BuildIndex/BuildOverrides once and use Classify.
func (c *Classifier) ClassifyOrder(text string, menu MenuSnapshot, corrections []Correction) []ClassifiedLine {
	return c.Classify(text, c.BuildIndex(menu), BuildOverrides(corrections))
}

// Classify splits the ticket into lines and classifies each one. Blank
// lines vanish; input order is preserved.
func (c *Classifier) Classify(text string, ix *MenuIndex, overrides OverrideRules) []ClassifiedLine {
	var lines []ClassifiedLine
	for _, raw := range strings.Split(text, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		lines = append(lines, c.classifyLine(raw, ix, overrides))
	}
	return lines
}

func (c *Classifier) classifyLine(raw string, ix *MenuIndex, overrides OverrideRules) ClassifiedLine {
	text := strings.TrimSpace(raw)
	base, note := ExtractNote(text)
	parsed := ParseQuantity(base)

	line := ClassifiedLine{
		Text:       text,
		Note:       note,
		Quantity:   parsed.Quantity,
		Unit:       parsed.Unit.String(),
		Multiplier: parsed.Multiplier,
	}

	// An exact override wins outright, but only while its target is still
	// on the menu; stale rules fall through to the normal path.
	if id, ok := overrides.Lookup(Normalize(base)); ok {
		if entry := ix.ByID(id); entry != nil {
			line.apply(entry, 1)
			return line
		}
	}

	query := Normalize(parsed.Item)
	if entry, score, ok := c.bestMatch(query, parsed.Unit, ix); ok {
		line.apply(entry, score)
		return line
	}

	line.Category = c.resolveCategory(query)
	return line
}

func (l *ClassifiedLine) apply(entry *Entry, score float64) {
	l.MenuID = entry.ID
	l.MenuName = entry.Name
	l.Category = entry.Category
	l.UnitPriceCents = entry.PriceCents
	l.LineTotalCents = int64(math.Round(float64(entry.PriceCents) * l.Multiplier))
	l.Score = score
}
