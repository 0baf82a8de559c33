package nlp_test

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkaranikas/komanda/internal/nlp"
)

func TestWriteCorrectionsCSVRoundTrip(t *testing.T) {
	athens := time.FixedZone("EEST", 3*3600)
	corrections := []nlp.Correction{
		{
			ID:              "corr-1",
			RawText:         "2 μιθος",
			PredictedMenuID: "lamb_portion",
			CorrectedMenuID: "beer01",
			CorrectedBy:     "w1",
			CreatedAt:       time.Date(2026, 8, 25, 10, 30, 0, 0, athens),
		},
		{
			ID:              "corr-2",
			RawText:         "ρακι (διπλο)",
			CorrectedMenuID: "raki",
			CreatedAt:       time.Date(2026, 8, 25, 23, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, nlp.WriteCorrectionsCSV(&buf, corrections))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"id", "raw_text", "predicted_item_id", "corrected_item_id", "user_id", "created_at"}, records[0])
	assert.Equal(t, []string{"corr-1", "2 μιθος", "lamb_portion", "beer01", "w1", "2026-08-25T07:30:00Z"}, records[1])
	assert.Equal(t, []string{"corr-2", "ρακι (διπλο)", "", "raki", "", "2026-08-25T23:00:00Z"}, records[2])
}

func TestWriteCorrectionsCSVEmptyWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, nlp.WriteCorrectionsCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "id", records[0][0])
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("sink closed")
}

func TestWriteCorrectionsCSVPropagatesWriterErrors(t *testing.T) {
	err := nlp.WriteCorrectionsCSV(failWriter{}, []nlp.Correction{
		{RawText: "2 μυθος", CorrectedMenuID: "beer01", CreatedAt: time.Now()},
	})
	assert.Error(t, err)
}
