package factories

import (
	"math"
	"math/rand"
	"sort"

	"github.com/dkaranikas/komanda/internal/nlp"
)

// houseCatalog is the baseline taverna menu the simulator falls back on
// when no menu file or stored version is available. Item ids are stable so
// repeated runs stay comparable; prices get jittered per run.
var houseCatalog = map[string][]nlp.MenuSnapshotItem{
	"Σαλάτες": {
		{ID: "salad_horiatiki", Name: "Χωριάτικη σαλάτα", Price: 6.50},
		{ID: "salad_season", Name: "Σαλάτα εποχής", Price: 5.00},
		{ID: "salad_dakos", Name: "Ντάκος", Price: 5.50},
	},
	"Ορεκτικά": {
		{ID: "app_tzatziki", Name: "Τζατζίκι", Price: 4.00},
		{ID: "app_fries", Name: "Πατάτες τηγανητές", Price: 3.50},
		{ID: "app_saganaki", Name: "Σαγανάκι", Price: 5.50},
		{ID: "app_zucchini", Name: "Κολοκυθάκια τηγανητά", Price: 4.50},
	},
	"Της ώρας": {
		{ID: "grill_brizola", Name: "Μπριζόλα χοιρινή", Price: 9.50},
		{ID: "grill_bifteki", Name: "Μπιφτέκι σχάρας", Price: 8.00},
		{ID: "grill_souvlaki", Name: "Σουβλάκι κοτόπουλο", Price: 7.50},
		{ID: "grill_loukaniko", Name: "Λουκάνικο χωριάτικο", Price: 6.00},
		{ID: "grill_kontosouvli", Name: "Κοντοσούβλι", Price: 9.00},
		{ID: "lamb_portion", Name: "Αρνίσια παϊδάκια", Price: 15.00},
		{ID: "lamb_kg", Name: "κ Αρνίσια παϊδάκια", Price: 40.00},
	},
	"Ψάρια": {
		{ID: "fish_tsipoura_kg", Name: "κ Τσιπούρα", Price: 55.00, Station: "grill"},
		{ID: "fish_gavros", Name: "Γαύρος τηγανητός", Price: 8.00},
	},
	"Μαγειρευτά": {
		{ID: "cook_mousakas", Name: "Μουσακάς", Price: 8.50},
		{ID: "cook_pastitsio", Name: "Παστίτσιο", Price: 8.00},
		{ID: "cook_gemista", Name: "Γεμιστά", Price: 7.00},
		{ID: "cook_katsiki", Name: "Κατσικάκι στο φούρνο", Price: 11.00},
	},
	"Ποτά": {
		{ID: "beer01", Name: "Μύθος", Price: 4.00},
		{ID: "beer02", Name: "Φιξ", Price: 4.00},
		{ID: "wine_retsina", Name: "Ρετσίνα (500ml)", Price: 5.00},
		{ID: "wine_hyma", Name: "Κρασί χύμα (250ml)", Price: 3.00},
		{ID: "ouzo_karafaki", Name: "Ούζο καραφάκι (200ml)", Price: 6.00},
		{ID: "soft_cola", Name: "Coca-Cola (330ml)", Price: 2.50},
		{ID: "water_lt", Name: "Εμφιαλωμένο νερό (1lt)", Price: 1.50},
	},
}

type MenuFactory struct {
	rng *rand.Rand
}

func NewMenuFactory(rng *rand.Rand) *MenuFactory {
	return &MenuFactory{rng: rng}
}

// CreateMenu copies the house catalog with prices nudged up to ±10% and
// rounded to the half euro, the way a season's chalkboard drifts.
func (mf *MenuFactory) CreateMenu() nlp.MenuSnapshot {
	menu := make(nlp.MenuSnapshot, len(houseCatalog))
	sections := make([]string, 0, len(houseCatalog))
	for section := range houseCatalog {
		sections = append(sections, section)
	}
	sort.Strings(sections)
	for _, section := range sections {
		items := houseCatalog[section]
		out := make([]nlp.MenuSnapshotItem, len(items))
		for i, item := range items {
			item.Price = jitterPrice(mf.rng, item.Price)
			out[i] = item
		}
		menu[section] = out
	}
	return menu
}

func jitterPrice(rng *rand.Rand, price float64) float64 {
	jittered := price * (0.9 + rng.Float64()*0.2)
	return math.Max(0.5, math.Round(jittered*2)/2)
}
