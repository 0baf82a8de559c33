package nlp

import (
	"encoding/csv"
	"io"
	"time"
)

// WriteCorrectionsCSV writes corrections as labelled training rows in the
// order given. The header matches what the classifier training pipeline
// ingests.
func WriteCorrectionsCSV(w io.Writer, corrections []Correction) error {
	cw := csv.NewWriter(w)
	header := []string{"id", "raw_text", "predicted_item_id", "corrected_item_id", "user_id", "created_at"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, c := range corrections {
		record := []string{
			c.ID,
			c.RawText,
			c.PredictedMenuID,
			c.CorrectedMenuID,
			c.CorrectedBy,
			c.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
