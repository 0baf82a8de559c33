package models

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dkaranikas/komanda/internal/nlp"
	"github.com/lucsky/cuid"
)

// MenuVersion is one immutable snapshot of the menu. New versions are only
// written when the snapshot hash changes.
type MenuVersion struct {
	ID        string           `json:"id"`
	Hash      string           `json:"hash"`
	CreatedAt time.Time        `json:"created_at"`
	CreatedBy string           `json:"created_by,omitempty"`
	Snapshot  nlp.MenuSnapshot `json:"snapshot"`
}

// NewMenuVersion stamps a snapshot with an id, hash and creation time.
func NewMenuVersion(menu nlp.MenuSnapshot, createdBy string) (*MenuVersion, error) {
	hash, err := HashSnapshot(menu)
	if err != nil {
		return nil, err
	}
	return &MenuVersion{
		ID:        cuid.New(),
		Hash:      hash,
		CreatedAt: time.Now(),
		CreatedBy: createdBy,
		Snapshot:  menu,
	}, nil
}

// HashSnapshot returns the hex SHA-256 of the snapshot's canonical JSON.
// Map keys marshal in sorted order, so equal snapshots hash equal
// regardless of construction order.
func HashSnapshot(menu nlp.MenuSnapshot) (string, error) {
	payload, err := json.Marshal(menu)
	if err != nil {
		return "", fmt.Errorf("marshaling menu snapshot: %w", err)
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// LoadMenuFile reads and parses a menu document from disk.
func LoadMenuFile(path string) (nlp.MenuSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading menu file: %w", err)
	}
	menu, err := ParseMenu(data)
	if err != nil {
		return nil, fmt.Errorf("menu file %s: %w", path, err)
	}
	return menu, nil
}

// ParseMenu accepts either menu document shape: an object mapping section
// names to item lists, or a flat item list where each item carries its own
// category.
func ParseMenu(data []byte) (nlp.MenuSnapshot, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty menu document")
	}

	if trimmed[0] == '[' {
		var items []nlp.MenuSnapshotItem
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("parsing menu item list: %w", err)
		}
		menu := make(nlp.MenuSnapshot)
		for _, item := range items {
			section := item.Category
			if section == "" {
				section = item.Station
			}
			menu[section] = append(menu[section], item)
		}
		return menu, nil
	}

	var menu nlp.MenuSnapshot
	if err := json.Unmarshal(data, &menu); err != nil {
		return nil, fmt.Errorf("parsing menu sections: %w", err)
	}
	return menu, nil
}

// CountMenuItems returns the number of items across all sections.
func CountMenuItems(menu nlp.MenuSnapshot) int {
	n := 0
	for _, items := range menu {
		n += len(items)
	}
	return n
}
