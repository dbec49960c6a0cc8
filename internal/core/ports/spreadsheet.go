package ports

// Table is a single-sheet tabular document.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]any
}

// SpreadsheetEncoder serializes a Table into a spreadsheet file.
type SpreadsheetEncoder interface {
	Encode(t Table) ([]byte, error)
	ContentType() string
	Extension() string
}
