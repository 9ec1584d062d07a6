// Package source resolves tabular input (CSV or XLSX) into the deduplicated
// list of scrape targets. The column heuristics operate on a columnar Table
// abstraction so they stay independent of the concrete file reader.
package source

// Column is a named column with its cell values in row order. Empty cells
// are empty strings.
type Column struct {
	Name   string
	Values []string
}

// Table is an ordered sequence of named columns. Order matters: the column
// selector breaks score ties by first-seen position.
type Table struct {
	Columns []Column
}
