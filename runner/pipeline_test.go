package runner

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/use-agent/scrapo/config"
	"github.com/use-agent/scrapo/output"
	"github.com/use-agent/scrapo/source"
)

// Spreadsheet in, CSV out: the whole batch path minus the real browser.
func TestPipeline_SpreadsheetToCSV(t *testing.T) {
	csvInput := "Name,Contact\nAcme,a@x.com\nGlobex,y.com\n"

	table, err := source.Read(strings.NewReader(csvInput))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	targets, err := source.Resolve(table)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(targets) != 2 || targets[0] != "x.com" || targets[1] != "y.com" {
		t.Fatalf("targets = %v, want [x.com y.com]", targets)
	}

	s := &stubSession{pages: []*stubPage{
		{content: `<p>hello@x.com +1 555 123 4567</p>`},
		{fail: true}, // y.com is unreachable
	}}
	records := New(s, runnerCfg(), config.RunnerConfig{}).Run(context.Background(), targets)

	var buf bytes.Buffer
	if err := output.WriteBatch(&buf, records); err != nil {
		t.Fatalf("write: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "x.com" || rows[2][0] != "y.com" {
		t.Errorf("row order does not match target order: %v / %v", rows[1], rows[2])
	}
	if rows[1][1] != "hello@x.com" {
		t.Errorf("x.com emails = %q", rows[1][1])
	}
	// The unreachable target still gets a well-formed, all-empty row.
	for i, field := range rows[2][1:] {
		if field != "" {
			t.Errorf("field %d of failed row = %q, want empty", i+1, field)
		}
	}
}
