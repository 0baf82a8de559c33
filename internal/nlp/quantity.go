package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

// Unit is the measure a waiter attached to a quantity, if any.
type Unit int

const (
	UnitNone Unit = iota
	UnitWeight
	UnitLiter
	UnitMilliliter
)

func (u Unit) String() string {
	switch u {
	case UnitWeight:
		return "kg"
	case UnitLiter:
		return "lt"
	case UnitMilliliter:
		return "ml"
	}
	return ""
}

// ReferencePortionML is the pour size a milliliter quantity is priced
// against: "500ml ρακί" on a 250ml-priced entry is two portions. Callers
// holding a menu entry that declares its own size rescale from this.
const ReferencePortionML = 250.0

// quantityPattern accepts a leading count with an optional unit token glued
// to the number. A detached token ("2 λ κρασί") is part of the item text,
// not a unit. Longer alternatives come first so λτ wins over λ and κιλα/κιλο
// over κ; (?i) folds Greek and Latin capitals alike.
var quantityPattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)(κιλα|κιλο|λτ|lt|ml|kg|κ|λ|l)?\s+(.+)$`)

// ParsedLine is the quantity breakdown of a single order line before any
// menu matching happens.
type ParsedLine struct {
	Quantity   float64
	Unit       Unit
	UnitToken  string
	Multiplier float64
	Item       string
}

// ParseQuantity pulls quantity and unit off the front of an order line.
// It never fails: anything that does not fit the grammar is an implicit
// single portion with the whole text as the item description.
func ParseQuantity(text string) ParsedLine {
	trimmed := strings.TrimSpace(text)
	parsed := ParsedLine{Quantity: 1, Multiplier: 1, Item: trimmed}

	m := quantityPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return parsed
	}
	qty, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return parsed
	}

	parsed.Quantity = qty
	parsed.UnitToken = m[2]
	parsed.Unit = unitFromToken(m[2])
	parsed.Item = strings.TrimSpace(m[3])

	if parsed.Unit == UnitMilliliter {
		parsed.Multiplier = qty / ReferencePortionML
	} else {
		parsed.Multiplier = qty
	}
	return parsed
}

func unitFromToken(token string) Unit {
	switch strings.ToLower(token) {
	case "":
		return UnitNone
	case "ml":
		return UnitMilliliter
	case "λ", "λτ", "lt", "l":
		return UnitLiter
	case "κ", "kg", "κιλα", "κιλο":
		return UnitWeight
	}
	return UnitNone
}
