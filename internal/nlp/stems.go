package nlp

import (
	"regexp"
	"strings"
)

// Routing categories every taverna has; menus may add custom workstation
// slugs on top of these.
const (
	CategoryKitchen = "kitchen"
	CategoryGrill   = "grill"
	CategoryDrinks  = "drinks"
)

// StemRule binds a routing category to the normalized stems that signal it.
// Rules are checked in order and the first hit wins.
type StemRule struct {
	Category string   `json:"category" mapstructure:"category"`
	Stems    []string `json:"stems" mapstructure:"stems"`
}

// DefaultStemRules is the curated grill -> drinks -> kitchen table. The
// lists are intentionally partial: stems catch the common taverna
// vocabulary and everything else defaults to the kitchen.
func DefaultStemRules() []StemRule {
	return []StemRule{
		{Category: CategoryGrill, Stems: []string{
			"μπριζολ", "παϊδ", "μπιφτεκ", "λουκαν", "χοιριν", "μπουτι",
			"σνιτσελ", "σουβλα", "κοντοσουβλι", "μπεικον", "πανσετ",
			"ψητ", "σχαρ", "καρβουν", "γριλ", "ωρας", "grill",
		}},
		{Category: CategoryDrinks, Stems: []string{
			"μπυρ", "ουζ", "κρασ", "ποτ", "τσιπουρ", "ρακ", "αναψυκ",
			"νερ", "χυμ", "καφ", "beer", "wine", "drink", "spirit", "soft",
		}},
		{Category: CategoryKitchen, Stems: []string{
			"φουρν", "τηγαν", "ραγου", "σουπα", "σαλτ", "μπεσαμ",
			"γκρατεν", "ομελετ", "παστ", "σαλατ", "μαγειρευτ", "ορεκτικ",
		}},
	}
}

var slugPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// ValidSlug reports whether s can name a routing station directly.
func ValidSlug(s string) bool {
	return s != "" && slugPattern.MatchString(s)
}

// CanonicalCategory maps a raw menu category or section label to a routing
// station. Explicit slugs (kitchen, grill, drinks, custom workstations)
// pass through; display labels like Ψητά της ώρας fall back to the stem
// table.
func (c *Classifier) CanonicalCategory(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return CategoryKitchen
	}
	if ValidSlug(s) {
		return s
	}
	return c.resolveCategory(Normalize(s))
}

// resolveCategory classifies already-normalized text against the stem table.
// Membership runs both ways: a stem inside the text, or a short typed text
// inside a stem. Tokens also get a second chance with plural endings
// reduced, so τα παϊδάκια hits the παϊδάκι stems.
func (c *Classifier) resolveCategory(norm string) string {
	if norm == "" {
		return CategoryKitchen
	}

	candidates := []string{norm}
	fields := strings.Fields(norm)
	stemmed := make([]string, len(fields))
	changed := false
	for i, field := range fields {
		stemmed[i] = greekStem(field)
		if stemmed[i] != field {
			changed = true
		}
	}
	if changed {
		candidates = append(candidates, strings.Join(stemmed, " "))
	}

	for _, rule := range c.rules {
		for _, stem := range rule.Stems {
			for _, cand := range candidates {
				if strings.Contains(cand, stem) || strings.Contains(stem, cand) {
					return rule.Category
				}
			}
		}
	}
	return CategoryKitchen
}

// greekStem strips the final sigma and collapses the neuter plural -ια to
// -ι: αρνια -> αρνι, παιδακια -> παιδακι. Deliberately conservative; the
// fuzzy matcher absorbs the rest of the inflection space.
func greekStem(token string) string {
	t := strings.TrimSuffix(token, "ς")
	t = strings.TrimSuffix(t, "σ")
	if r := []rune(t); len(r) > 3 && r[len(r)-2] == 'ι' && r[len(r)-1] == 'α' {
		t = string(r[:len(r)-2]) + "ι"
	}
	return t
}
