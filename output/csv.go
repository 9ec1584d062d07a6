// Package output writes contact records as tabular CSV in the two supported
// layouts: the batch layout (lowercase headers, one row per target) and the
// single-URL layout.
package output

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/use-agent/scrapo/models"
)

var (
	batchHeader     = []string{"url", "emails", "phones", "facebook", "instagram", "linkedin"}
	singleURLHeader = []string{"Website", "Email", "Phone", "Facebook", "Instagram", "LinkedIn"}
)

// WriteBatch writes the batch layout: a header row, then one row per record
// in record order. Multi-valued fields are comma-space-joined.
func WriteBatch(w io.Writer, records []models.ContactRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(batchHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.Target,
			strings.Join(rec.Emails, ", "),
			strings.Join(rec.Phones, ", "),
			rec.Facebook,
			rec.Instagram,
			rec.LinkedIn,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSingle writes the single-URL layout: a header row and exactly one
// data row.
func WriteSingle(w io.Writer, rec models.ContactRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(singleURLHeader); err != nil {
		return err
	}
	row := []string{
		rec.Target,
		strings.Join(rec.Emails, ", "),
		strings.Join(rec.Phones, ", "),
		rec.Facebook,
		rec.Instagram,
		rec.LinkedIn,
	}
	if err := cw.Write(row); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteBatchFile writes the batch layout to a file path.
func WriteBatchFile(path string, records []models.ContactRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return models.NewScrapeError(models.ErrCodeInvalidInput, "cannot create output file: "+path, err)
	}
	defer f.Close()
	return WriteBatch(f, records)
}

// WriteSingleFile writes the single-URL layout to a file path.
func WriteSingleFile(path string, rec models.ContactRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return models.NewScrapeError(models.ErrCodeInvalidInput, "cannot create output file: "+path, err)
	}
	defer f.Close()
	return WriteSingle(f, rec)
}
