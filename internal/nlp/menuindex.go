package nlp

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// MenuSnapshotItem is one sellable item as it appears in a menu snapshot,
// prices in euros. Station overrides Category, Category overrides the
// containing section name.
type MenuSnapshotItem struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Price    float64 `json:"price,omitempty"`
	Category string  `json:"category,omitempty"`
	Station  string  `json:"station,omitempty"`
}

// MenuSnapshot maps a section label (Σαλάτες, Ψητά της ώρας, Ποτά, ...) to
// its items in menu order.
type MenuSnapshot map[string][]MenuSnapshotItem

// Entry is a menu item prepared for matching.
type Entry struct {
	ID         string
	Name       string
	Norm       string
	Category   string
	PriceCents int64
	ByMeasure  bool    // priced per kilo/liter rather than per portion
	SizeML     float64 // declared pour size, when the name carries one
	famStem    string
	pos        int
}

// MenuIndex holds the flattened, normalized view of one menu snapshot.
// Building it is cheap relative to the fuzzy scan; callers classifying
// many tickets against the same menu should still build once and reuse.
type MenuIndex struct {
	entries []*Entry
	byNorm  map[string]*Entry
	byID    map[string]*Entry
}

// BuildIndex flattens a snapshot deterministically: sections in sorted
// order, items in declaration order. Duplicate normalized names keep the
// first entry in the exact-match map but every entry stays visible to the
// family scan.
func (c *Classifier) BuildIndex(menu MenuSnapshot) *MenuIndex {
	ix := &MenuIndex{
		byNorm: make(map[string]*Entry),
		byID:   make(map[string]*Entry),
	}
	sections := make([]string, 0, len(menu))
	for name := range menu {
		sections = append(sections, name)
	}
	sort.Strings(sections)

	for _, section := range sections {
		for _, item := range menu[section] {
			entry := c.newEntry(item, section, len(ix.entries))
			if entry == nil {
				continue
			}
			ix.entries = append(ix.entries, entry)
			if _, ok := ix.byNorm[entry.Norm]; !ok {
				ix.byNorm[entry.Norm] = entry
			}
			if _, ok := ix.byID[entry.ID]; !ok {
				ix.byID[entry.ID] = entry
			}
		}
	}
	return ix
}

func (c *Classifier) newEntry(item MenuSnapshotItem, section string, pos int) *Entry {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		return nil
	}
	normName := Normalize(name)
	if normName == "" {
		return nil
	}

	rawCategory := item.Station
	if rawCategory == "" {
		rawCategory = item.Category
	}
	if rawCategory == "" {
		rawCategory = section
	}

	byMeasure, sizeML := measurePricing(name)
	entry := &Entry{
		ID:         strings.TrimSpace(item.ID),
		Name:       name,
		Norm:       normName,
		Category:   c.CanonicalCategory(rawCategory),
		PriceCents: EurosToCents(item.Price),
		ByMeasure:  byMeasure,
		SizeML:     sizeML,
		famStem:    familyStem(normName),
		pos:        pos,
	}
	if entry.ID == "" {
		entry.ID = strings.ReplaceAll(normName, " ", "-")
	}
	return entry
}

// EurosToCents converts a snapshot price into integer minor units.
func EurosToCents(price float64) int64 {
	if price <= 0 {
		return 0
	}
	return int64(math.Round(price * 100))
}

// Lookup returns the entry whose normalized name equals norm, or nil.
func (ix *MenuIndex) Lookup(norm string) *Entry {
	if ix == nil {
		return nil
	}
	return ix.byNorm[norm]
}

// ByID returns the entry with the given id, or nil.
func (ix *MenuIndex) ByID(id string) *Entry {
	if ix == nil {
		return nil
	}
	return ix.byID[id]
}

// Entries returns the flattened entries in index order.
func (ix *MenuIndex) Entries() []*Entry {
	if ix == nil {
		return nil
	}
	return ix.entries
}

func (ix *MenuIndex) Empty() bool {
	return ix == nil || len(ix.entries) == 0
}

func (ix *MenuIndex) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.entries)
}

// family collects every entry conceptually naming the same dish as e:
// marker-stripped stems containing one another (κ αρνίσια παϊδάκια and
// αρνίσια παϊδάκια are one family split across pricing modes).
func (ix *MenuIndex) family(e *Entry) []*Entry {
	if ix == nil || e == nil || e.famStem == "" {
		return nil
	}
	var fam []*Entry
	for _, other := range ix.entries {
		if other.famStem == "" {
			continue
		}
		if strings.Contains(other.famStem, e.famStem) || strings.Contains(e.famStem, other.famStem) {
			fam = append(fam, other)
		}
	}
	return fam
}

// measureMarkers are the tokens a taverna menu sticks in front of a name to
// flag per-kilo or per-liter pricing ("κ Αρνίσια παϊδάκια", "kg Τσιπούρα").
var measureMarkers = map[string]bool{
	"κ": true, "kg": true, "κιλο": true, "κιλα": true, "λτ": true, "lt": true,
}

// sizeSpec matches parenthetical pour/weight declarations: (1lt), (250),
// (500ml), (400γρ). A bare number reads as milliliters, the house-carafe
// convention.
var sizeSpec = regexp.MustCompile(`(?i)\((\d+(?:[.,]\d+)?)\s*(ml|λτ|lt|l|λ|kg|κιλα|κιλο|κ|gr|γρ)?\s*\)`)

func measurePricing(rawName string) (bool, float64) {
	lower := strings.ToLower(rawName)

	if fields := strings.Fields(lower); len(fields) > 1 && measureMarkers[fields[0]] {
		return true, 0
	}

	m := sizeSpec.FindStringSubmatch(lower)
	if m == nil {
		return false, 0
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return true, 0
	}
	switch m[2] {
	case "", "ml":
		return true, value
	case "λτ", "lt", "l", "λ":
		return true, value * 1000
	default: // weight spec, no volume to record
		return true, 0
	}
}

var sizeToken = regexp.MustCompile(`^\d+(?:\.\d+)?(?:ml|λτ|lt|l|λ|kg|κιλα|κιλο|κ|gr|γρ)?$`)

// familyStem drops measure markers and size tokens from a normalized name so
// pricing variants of the same dish collapse onto one stem.
func familyStem(norm string) string {
	var kept []string
	for _, field := range strings.Fields(norm) {
		if measureMarkers[field] || sizeToken.MatchString(field) {
			continue
		}
		kept = append(kept, field)
	}
	return strings.Join(kept, " ")
}
