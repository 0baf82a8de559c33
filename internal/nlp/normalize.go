package nlp

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and drops combining marks, so accented Greek
// and Latin letters compare equal to their bare forms (Μύθος -> Μυθος).
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var parenthetical = regexp.MustCompile(`\(([^)]*)\)`)

// ExtractNote splits a raw order line into the text used for matching and the
// parenthetical note: "Μύθος (χωρίς πάγο)" -> "Μύθος", "χωρίς πάγο". Notes keep
// their original accents and casing; multiple spans are joined with ", ".
func ExtractNote(line string) (string, string) {
	if !strings.Contains(line, "(") {
		return strings.TrimSpace(line), ""
	}
	var notes []string
	for _, m := range parenthetical.FindAllStringSubmatch(line, -1) {
		if note := strings.TrimSpace(m[1]); note != "" {
			notes = append(notes, note)
		}
	}
	base := strings.TrimSpace(parenthetical.ReplaceAllString(line, " "))
	return base, strings.Join(notes, ", ")
}

// StripAccents drops combining marks without touching case or spacing.
func StripAccents(s string) string {
	stripped, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return stripped
}

// Normalize lowercases, strips accents, folds final sigma, replaces anything
// that is not a letter or digit with a space and collapses whitespace. It is
// total and idempotent: Normalize(Normalize(s)) == Normalize(s) for every
// input.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	lowered := strings.ToLower(s)
	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		stripped = lowered
	}
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case r == 'ς':
			// ToLower maps Σ to σ with no final-form context, so ΜΥΘΟΣ
			// and Μύθος would otherwise normalize apart.
			b.WriteRune('σ')
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
