package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/use-agent/scrapo/models"
)

// xlsxMagic is the ZIP local-file-header signature; .xlsx files are ZIP
// containers, so it reliably separates them from plain-text CSV.
var xlsxMagic = []byte("PK\x03\x04")

// ReadFile loads a tabular file from disk into a Table. The format is
// sniffed from the content, not the extension: ZIP container means XLSX,
// anything else is parsed as CSV.
func ReadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, models.NewScrapeError(
			models.ErrCodeInvalidInput,
			"file not found or unreadable: "+path,
			err,
		)
	}
	return Read(bytes.NewReader(data))
}

// Read loads tabular data from a reader, sniffing CSV vs XLSX.
func Read(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, models.NewScrapeError(models.ErrCodeInvalidInput, "failed to read input", err)
	}
	if len(data) == 0 {
		return Table{}, models.NewScrapeError(models.ErrCodeInvalidInput, "input is empty", nil)
	}

	if bytes.HasPrefix(data, xlsxMagic) {
		return readXLSX(data)
	}
	return readCSV(data)
}

// readCSV parses header + rows. Rows with a deviant field count are skipped
// rather than failing the whole file.
func readCSV(data []byte) (Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return Table{}, models.NewScrapeError(
			models.ErrCodeInvalidInput,
			"input is not parseable as CSV",
			err,
		)
	}

	cols := make([]Column, len(header))
	for i, name := range header {
		cols[i] = Column{Name: name}
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Bad line: skip it, keep going.
			continue
		}
		for i := range cols {
			if i < len(row) {
				cols[i].Values = append(cols[i].Values, row[i])
			} else {
				cols[i].Values = append(cols[i].Values, "")
			}
		}
	}

	return Table{Columns: cols}, nil
}

// readXLSX parses the first sheet of an Excel workbook, treating row 1 as
// the header.
func readXLSX(data []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Table{}, models.NewScrapeError(
			models.ErrCodeInvalidInput,
			"input is not parseable as XLSX",
			err,
		)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, models.NewScrapeError(models.ErrCodeInvalidInput, "workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, models.NewScrapeError(models.ErrCodeInvalidInput, "failed to read sheet rows", err)
	}
	if len(rows) == 0 {
		return Table{}, models.NewScrapeError(models.ErrCodeInvalidInput, "sheet is empty", nil)
	}

	header := rows[0]
	cols := make([]Column, len(header))
	for i, name := range header {
		cols[i] = Column{Name: name}
	}

	for _, row := range rows[1:] {
		for i := range cols {
			if i < len(row) {
				cols[i].Values = append(cols[i].Values, row[i])
			} else {
				cols[i].Values = append(cols[i].Values, "")
			}
		}
	}

	return Table{Columns: cols}, nil
}
