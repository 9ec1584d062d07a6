package output

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/use-agent/scrapo/models"
)

func TestWriteBatch_LayoutAndOrder(t *testing.T) {
	records := []models.ContactRecord{
		{
			Target:   "x.com",
			Emails:   []string{"a@x.com", "b@x.com"},
			Phones:   []string{"+1 555 123 4567"},
			Facebook: "https://facebook.com/x",
		},
		models.EmptyRecord("y.com"),
	}

	var buf bytes.Buffer
	if err := WriteBatch(&buf, records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "url,emails,phones,facebook,instagram,linkedin" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "x.com" || rows[2][0] != "y.com" {
		t.Errorf("row order broken: %v / %v", rows[1], rows[2])
	}
	if rows[1][1] != "a@x.com, b@x.com" {
		t.Errorf("emails field = %q, want comma-space join", rows[1][1])
	}
	// A failed target still produces a well-formed row with empty fields.
	for i, field := range rows[2][1:] {
		if field != "" {
			t.Errorf("empty record field %d = %q, want empty", i+1, field)
		}
	}
}

func TestWriteSingle_Layout(t *testing.T) {
	rec := models.ContactRecord{
		Target: "https://example.com",
		Emails: []string{"info@example.com"},
		Phones: []string{"+44 20 7946 0958"},
	}

	var buf bytes.Buffer
	if err := WriteSingle(&buf, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "Website,Email,Phone,Facebook,Instagram,LinkedIn" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][1] != "info@example.com" {
		t.Errorf("email field = %q", rows[1][1])
	}
}
