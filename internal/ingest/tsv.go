package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadTSV parses tab-separated text, the shape produced by pasting a
// spreadsheet range, into raw rows. Ragged rows are tolerated because
// trailing empty cells are trimmed by most spreadsheet tools on copy.
func ReadTSV(r io.Reader) ([]RawRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	table, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read tabular text: %w", err)
	}
	return tableToRows(table), nil
}
