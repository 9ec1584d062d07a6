package source

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestRead_CSV(t *testing.T) {
	csvData := "Name,Contact\nAcme,a@x.com\nGlobex,y.com\n"

	table, err := Read(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(table.Columns))
	}
	if table.Columns[1].Name != "Contact" {
		t.Errorf("column 1 name = %q, want Contact", table.Columns[1].Name)
	}
	if len(table.Columns[1].Values) != 2 || table.Columns[1].Values[0] != "a@x.com" {
		t.Errorf("Contact values = %v", table.Columns[1].Values)
	}
}

func TestRead_CSVShortRowsPadded(t *testing.T) {
	csvData := "Name,Contact\nAcme\nGlobex,y.com\n"

	table, err := Read(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := table.Columns[1].Values; len(got) != 2 || got[0] != "" || got[1] != "y.com" {
		t.Errorf("Contact values = %v, want [\"\" y.com]", got)
	}
}

func TestRead_EmptyInput(t *testing.T) {
	if _, err := Read(strings.NewReader("")); err == nil {
		t.Error("empty input must fail")
	}
}

func TestRead_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetCellValue(sheet, "A1", "Name")
	_ = f.SetCellValue(sheet, "B1", "Contact")
	_ = f.SetCellValue(sheet, "A2", "Acme")
	_ = f.SetCellValue(sheet, "B2", "a@x.com")
	_ = f.SetCellValue(sheet, "A3", "Globex")
	_ = f.SetCellValue(sheet, "B3", "y.com")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("failed to build xlsx fixture: %v", err)
	}

	table, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(table.Columns))
	}
	if got := table.Columns[1].Values; len(got) != 2 || got[0] != "a@x.com" || got[1] != "y.com" {
		t.Errorf("Contact values = %v", got)
	}
}

func TestRead_XLSXFeedsResolver(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetCellValue(sheet, "A1", "Contact")
	_ = f.SetCellValue(sheet, "A2", "user@example.com")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("failed to build xlsx fixture: %v", err)
	}

	table, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	targets, err := Resolve(table)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(targets) != 1 || targets[0] != "example.com" {
		t.Errorf("targets = %v, want [example.com]", targets)
	}
}
