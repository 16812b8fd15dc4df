package sheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Table is the in-memory row/column structure decoded from a workbook.
type Table struct {
	Sheet string
	Rows  [][]string
}

// ParseError reports content that is not a well-formed workbook.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse workbook: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes XLSX content into a Table. The first sheet is used; no
// schema validation happens beyond the content being parseable.
func Parse(content []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	defer f.Close()

	name := f.GetSheetName(0)
	if name == "" {
		return nil, &ParseError{Err: fmt.Errorf("workbook has no sheets")}
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	return &Table{Sheet: name, Rows: rows}, nil
}

// RowCount returns the number of rows in the table.
func (t *Table) RowCount() int { return len(t.Rows) }
