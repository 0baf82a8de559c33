package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dkaranikas/komanda/internal/nlp"
	"github.com/lucsky/cuid"
)

// DefaultWorkstationColor is applied when a station is registered without
// an explicit display color.
const DefaultWorkstationColor = "#667eea"

// Workstation is a prep screen tickets route to. Lines reach a station by
// slug, which doubles as the classifier's category label.
type Workstation struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Color     string    `json:"color"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewWorkstation validates the slug and fills defaults. Slugs are
// lowercase [a-z0-9_-] so they survive as routing keys.
func NewWorkstation(name, slug, color string) (*Workstation, error) {
	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(slug)
	if name == "" {
		return nil, fmt.Errorf("workstation name is required")
	}
	if !nlp.ValidSlug(slug) {
		return nil, fmt.Errorf("invalid workstation slug %q: use lowercase letters, digits, '-' or '_'", slug)
	}
	if color == "" {
		color = DefaultWorkstationColor
	}
	return &Workstation{
		ID:        cuid.New(),
		Name:      name,
		Slug:      slug,
		Color:     color,
		Active:    true,
		CreatedAt: time.Now(),
	}, nil
}

// DefaultWorkstations returns the three stations every taverna floor
// starts with.
func DefaultWorkstations() []*Workstation {
	stations := make([]*Workstation, 0, 3)
	for _, def := range []struct{ name, slug string }{
		{"Κουζίνα", nlp.CategoryKitchen},
		{"Ψησταριά", nlp.CategoryGrill},
		{"Μπαρ", nlp.CategoryDrinks},
	} {
		ws, err := NewWorkstation(def.name, def.slug, "")
		if err != nil {
			continue
		}
		stations = append(stations, ws)
	}
	return stations
}
