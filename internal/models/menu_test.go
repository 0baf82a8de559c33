package models_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkaranikas/komanda/internal/models"
	"github.com/dkaranikas/komanda/internal/nlp"
)

func TestParseMenuSectionObject(t *testing.T) {
	doc := `{
		"Ποτά": [{"id": "beer01", "name": "Μύθος", "price": 4}],
		"Σαλάτες": [{"name": "Χωριάτικη", "price": 6.5}]
	}`

	menu, err := models.ParseMenu([]byte(doc))

	require.NoError(t, err)
	require.Len(t, menu, 2)
	require.Len(t, menu["Ποτά"], 1)
	assert.Equal(t, "beer01", menu["Ποτά"][0].ID)
	assert.Equal(t, 6.5, menu["Σαλάτες"][0].Price)
}

func TestParseMenuFlatList(t *testing.T) {
	doc := `[
		{"id": "beer01", "name": "Μύθος", "price": 4, "category": "drinks"},
		{"id": "beer02", "name": "Fix", "price": 4, "category": "drinks"},
		{"id": "fish1", "name": "Τσιπούρα", "price": 45, "station": "grill"}
	]`

	menu, err := models.ParseMenu([]byte(doc))

	require.NoError(t, err)
	require.Len(t, menu, 2)
	assert.Len(t, menu["drinks"], 2)
	// Without a category the station names the section.
	require.Len(t, menu["grill"], 1)
	assert.Equal(t, "fish1", menu["grill"][0].ID)
}

func TestParseMenuRejectsBadDocuments(t *testing.T) {
	for _, doc := range []string{"", "   \n\t", "{bad", `[{"name": }]`, `"just a string"`} {
		_, err := models.ParseMenu([]byte(doc))
		assert.Error(t, err, "document %q", doc)
	}
}

func TestLoadMenuFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Ποτά": [{"id": "beer01", "name": "Μύθος", "price": 4}]}`), 0o644))

	menu, err := models.LoadMenuFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, models.CountMenuItems(menu))

	_, err = models.LoadMenuFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestHashSnapshotIgnoresConstructionOrder(t *testing.T) {
	a := nlp.MenuSnapshot{}
	a["Ποτά"] = []nlp.MenuSnapshotItem{{ID: "beer01", Name: "Μύθος", Price: 4}}
	a["Σαλάτες"] = []nlp.MenuSnapshotItem{{ID: "sal01", Name: "Χωριάτικη", Price: 6.5}}

	b := nlp.MenuSnapshot{}
	b["Σαλάτες"] = []nlp.MenuSnapshotItem{{ID: "sal01", Name: "Χωριάτικη", Price: 6.5}}
	b["Ποτά"] = []nlp.MenuSnapshotItem{{ID: "beer01", Name: "Μύθος", Price: 4}}

	ha, err := models.HashSnapshot(a)
	require.NoError(t, err)
	hb, err := models.HashSnapshot(b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb)
}

func TestHashSnapshotSeesContentChanges(t *testing.T) {
	menu := nlp.MenuSnapshot{"Ποτά": {{ID: "beer01", Name: "Μύθος", Price: 4}}}
	before, err := models.HashSnapshot(menu)
	require.NoError(t, err)

	menu["Ποτά"][0].Price = 4.5
	after, err := models.HashSnapshot(menu)
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestNewMenuVersionStampsSnapshot(t *testing.T) {
	menu := nlp.MenuSnapshot{"Ποτά": {{ID: "beer01", Name: "Μύθος", Price: 4}}}

	v1, err := models.NewMenuVersion(menu, "seed")
	require.NoError(t, err)
	v2, err := models.NewMenuVersion(menu, "seed")
	require.NoError(t, err)

	assert.NotEmpty(t, v1.ID)
	assert.NotEqual(t, v1.ID, v2.ID)
	assert.Equal(t, v1.Hash, v2.Hash, "same snapshot must hash equal")
	assert.Equal(t, "seed", v1.CreatedBy)
	assert.False(t, v1.CreatedAt.IsZero())

	want, err := models.HashSnapshot(menu)
	require.NoError(t, err)
	assert.Equal(t, want, v1.Hash)
}

func TestCountMenuItems(t *testing.T) {
	assert.Zero(t, models.CountMenuItems(nil))
	assert.Zero(t, models.CountMenuItems(nlp.MenuSnapshot{}))

	menu := nlp.MenuSnapshot{
		"Ποτά":    {{Name: "Μύθος"}, {Name: "Fix"}},
		"Σαλάτες": {{Name: "Χωριάτικη"}},
	}
	assert.Equal(t, 3, models.CountMenuItems(menu))
}
