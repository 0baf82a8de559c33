package nlp

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Score blend and acceptance constants. Tuned against real waiter
// shorthand; treat them as calibration data, not style.
const (
	tokenScoreWeight  = 0.65
	fullScoreWeight   = 0.25
	prefixBonusWeight = 0.10

	defaultMatchThreshold       = 0.50
	defaultFamilyMatchThreshold = 0.45
	defaultMeasureBonus         = 0.20
	defaultPortionPenalty       = 0.15
)

// bestMatch scans the index for the entry that best explains the normalized
// query. When the provisional winner sits in a dish family split across
// pricing modes, candidates narrow to the mode the query asks for (unit
// present -> per-measure, absent -> per-portion) and the looser family
// threshold applies.
func (c *Classifier) bestMatch(query string, unit Unit, ix *MenuIndex) (*Entry, float64, bool) {
	if query == "" || ix.Empty() {
		return nil, 0, false
	}

	// A verbatim name is not up for debate, unless a unit asks for the
	// other pricing mode of the same dish; then the family logic decides.
	if unit == UnitNone {
		if exact := ix.Lookup(query); exact != nil {
			return exact, 1, true
		}
	}

	best, score := c.scanEntries(query, unit, ix.entries)
	if best == nil {
		return nil, 0, false
	}

	threshold := c.cfg.MatchThreshold
	if fam := ix.family(best); familySplit(fam) {
		threshold = c.cfg.FamilyMatchThreshold
		if subset := modeSubset(fam, unit); len(subset) > 0 {
			if refined, refinedScore := c.scanEntries(query, unit, subset); refined != nil {
				best, score = refined, refinedScore
			}
		}
	}

	if score < threshold {
		return nil, score, false
	}
	return best, score, true
}

func (c *Classifier) scanEntries(query string, unit Unit, entries []*Entry) (*Entry, float64) {
	var best *Entry
	bestScore := math.Inf(-1)
	for _, entry := range entries {
		score := c.scoreEntry(query, entry, unit)
		switch {
		case score > bestScore:
			best, bestScore = entry, score
		case score == bestScore && best != nil && longerNorm(entry, best):
			// ties go to the longer menu name: παϊδάκια should prefer
			// Αρνίσια παϊδάκια over a shorter incidental overlap
			best = entry
		}
	}
	return best, bestScore
}

func (c *Classifier) scoreEntry(query string, entry *Entry, unit Unit) float64 {
	score := textScore(query, entry.Norm)
	if entry.ByMeasure {
		if unit != UnitNone {
			score += c.cfg.MeasureBonus
		} else {
			score -= c.cfg.PortionPenalty
		}
	}
	return score
}

// textScore is the unit-agnostic text affinity between a normalized query
// and a normalized menu name. Containment either way is a perfect hit;
// otherwise token agreement dominates, whole-string distance stabilizes,
// and a shared prefix nudges.
func textScore(query, name string) float64 {
	if strings.Contains(name, query) || strings.Contains(query, name) {
		return 1
	}
	return tokenScoreWeight*tokenSetScore(query, name) +
		fullScoreWeight*similarity(query, name) +
		prefixBonusWeight*commonPrefixRatio(query, name)
}

// tokenSetScore averages, over the query tokens, the best score each one
// reaches against any name token. Single-rune tokens carry no signal and
// are skipped.
func tokenSetScore(query, name string) float64 {
	nameTokens := strings.Fields(name)
	var sum float64
	counted := 0
	for _, qt := range strings.Fields(query) {
		if utf8.RuneCountInString(qt) <= 1 {
			continue
		}
		best := 0.0
		for _, nt := range nameTokens {
			if v := tokenScore(qt, nt); v > best {
				best = v
			}
		}
		sum += best
		counted++
	}
	if counted == 0 {
		return 0
	}
	return sum / float64(counted)
}

func tokenScore(a, b string) float64 {
	if strings.HasPrefix(a, b) || strings.HasPrefix(b, a) {
		return 1
	}
	return similarity(a, b)
}

func longerNorm(a, b *Entry) bool {
	return utf8.RuneCountInString(a.Norm) > utf8.RuneCountInString(b.Norm)
}

// familySplit reports whether a family carries both pricing modes, which is
// the only situation where mode restriction has something to disambiguate.
func familySplit(fam []*Entry) bool {
	if len(fam) < 2 {
		return false
	}
	var measure, portion bool
	for _, e := range fam {
		if e.ByMeasure {
			measure = true
		} else {
			portion = true
		}
	}
	return measure && portion
}

func modeSubset(fam []*Entry, unit Unit) []*Entry {
	wantMeasure := unit != UnitNone
	var subset []*Entry
	for _, e := range fam {
		if e.ByMeasure == wantMeasure {
			subset = append(subset, e)
		}
	}
	return subset
}
