package factories

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/dkaranikas/komanda/internal/models"
	"github.com/dkaranikas/komanda/internal/nlp"
)

// notes waiters actually append to a line
var orderNotes = []string{
	"χωρίς κρεμμύδι", "χωρίς πάγο", "καλοψημένο", "λίγο λάδι",
	"χωρίς σάλτσα", "με λεμόνι", "μισή μερίδα", "χωρίς αλάτι",
}

// asks that never made it onto the printed menu
var offMenuLines = []string{
	"ψωμί", "νερό βρύσης", "παγάκια", "κάτι γλυκό του σεφ", "σπεσιαλιτέ",
}

var weightPrefixes = []string{"1kg", "1.5kg", "2kg", "2κιλα", "1κιλο", "2 κιλα"}

var volumePrefixes = []string{"250ml", "500ml", "1λτ", "1lt"}

// TicketFactory turns a menu snapshot into the free text waiters key in:
// real dish names with the accents, casing and spelling drifting the way
// hurried thumbs drift.
type TicketFactory struct {
	rng   *rand.Rand
	cfg   *models.Config
	items []nlp.MenuSnapshotItem
}

func NewTicketFactory(cfg *models.Config, menu nlp.MenuSnapshot, rng *rand.Rand) *TicketFactory {
	tf := &TicketFactory{rng: rng, cfg: cfg}
	sections := make([]string, 0, len(menu))
	for name := range menu {
		sections = append(sections, name)
	}
	sort.Strings(sections)
	for _, section := range sections {
		tf.items = append(tf.items, menu[section]...)
	}
	return tf
}

// OrderText composes one table's order: a handful of lines, occasionally an
// off-menu ask.
func (tf *TicketFactory) OrderText(waiter *models.Waiter) string {
	n := 1 + tf.rng.Intn(4)
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if len(tf.items) == 0 || tf.rng.Float64() < tf.cfg.OffMenuRate {
			lines = append(lines, offMenuLines[tf.rng.Intn(len(offMenuLines))])
			continue
		}
		lines = append(lines, tf.orderLine(waiter))
	}
	return strings.Join(lines, "\n")
}

// AmendText resubmits an order with the edits a second visit to the table
// brings: a quantity bumped, a line scratched, something new added.
func (tf *TicketFactory) AmendText(text string, waiter *models.Waiter) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines)+1)
	for _, line := range lines {
		switch {
		case len(lines) > 1 && tf.rng.Float64() < 0.25:
			// scratched
		case tf.rng.Float64() < 0.3:
			out = append(out, bumpQuantity(line))
		default:
			out = append(out, line)
		}
	}
	if len(out) == 0 || tf.rng.Float64() < 0.5 {
		out = append(out, tf.orderLine(waiter))
	}
	return strings.Join(out, "\n")
}

// RandomItem picks any catalog item; the simulator uses it to fabricate
// plausible correction targets.
func (tf *TicketFactory) RandomItem() nlp.MenuSnapshotItem {
	if len(tf.items) == 0 {
		return nlp.MenuSnapshotItem{}
	}
	return tf.items[tf.rng.Intn(len(tf.items))]
}

func (tf *TicketFactory) orderLine(waiter *models.Waiter) string {
	item := tf.items[tf.rng.Intn(len(tf.items))]
	name, byMeasure := splitMeasureMarker(item.Name)
	name, sized := splitSizeSpec(name)
	name = tf.scribble(name, waiter)

	var line string
	switch {
	case byMeasure:
		line = weightPrefixes[tf.rng.Intn(len(weightPrefixes))] + " " + name
	case sized && tf.rng.Float64() < 0.5:
		line = volumePrefixes[tf.rng.Intn(len(volumePrefixes))] + " " + name
	default:
		if qty := 1 + tf.rng.Intn(3); qty > 1 || tf.rng.Float64() < 0.4 {
			line = fmt.Sprintf("%d %s", qty, name)
		} else {
			line = name
		}
	}

	if tf.rng.Float64() < 0.15 {
		line += " (" + orderNotes[tf.rng.Intn(len(orderNotes))] + ")"
	}
	return line
}

// scribble renders a menu name the way it reaches the pad: usually
// unaccented, usually lowercased, often clipped to its head word, sometimes
// with a slip of the finger.
func (tf *TicketFactory) scribble(name string, waiter *models.Waiter) string {
	s := name
	if tf.rng.Float64() < 0.7 {
		s = nlp.StripAccents(s)
	}
	if tf.rng.Float64() < 0.8 {
		s = strings.ToLower(s)
	}
	if fields := strings.Fields(s); len(fields) > 1 && tf.rng.Float64() < 0.35 {
		s = fields[0]
	}
	if tf.rng.Float64() < tf.cfg.TypoRate*waiter.TypoBias {
		s = tf.typo(s)
	}
	return s
}

func (tf *TicketFactory) typo(s string) string {
	r := []rune(s)
	if len(r) < 5 {
		return s
	}
	i := 1 + tf.rng.Intn(len(r)-2)
	switch tf.rng.Intn(3) {
	case 0: // dropped rune
		return string(append(r[:i:i], r[i+1:]...))
	case 1: // swapped neighbours
		r[i-1], r[i] = r[i], r[i-1]
		return string(r)
	default: // doubled rune
		out := append(r[:i:i], r[i])
		return string(append(out, r[i:]...))
	}
}

// splitMeasureMarker peels a leading per-kilo/per-liter marker off a menu
// name: waiters order "2kg παϊδάκια", never "2 κ αρνίσια παϊδάκια".
func splitMeasureMarker(name string) (string, bool) {
	fields := strings.Fields(name)
	if len(fields) > 1 {
		switch strings.ToLower(fields[0]) {
		case "κ", "kg", "κιλο", "κιλα", "λτ", "lt":
			return strings.Join(fields[1:], " "), true
		}
	}
	return name, false
}

// splitSizeSpec drops a parenthetical pour size from a menu name, reporting
// that one was there.
func splitSizeSpec(name string) (string, bool) {
	if !strings.Contains(name, "(") {
		return name, false
	}
	base, _ := nlp.ExtractNote(name)
	return base, base != name
}

func bumpQuantity(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || trimmed[0] < '0' || trimmed[0] > '9' {
		return "2 " + trimmed
	}
	p := nlp.ParseQuantity(trimmed)
	return fmt.Sprintf("%g%s %s", p.Quantity+1, p.UnitToken, p.Item)
}
