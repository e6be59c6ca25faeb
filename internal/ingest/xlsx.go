package ingest

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX parses the first sheet of a workbook into raw rows. The first
// non-empty row is taken as the header; short rows are padded so every
// record carries the full column set. Cells carrying a native date format
// come through as time values instead of their display text.
func ReadXLSX(r io.Reader) ([]RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]
	table, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	var header []string
	headerAt := -1
	for i, cells := range table {
		if !rowEmpty(cells) {
			header = cells
			headerAt = i
			break
		}
	}
	if header == nil {
		return nil, nil
	}

	var out []RawRow
	for i := headerAt + 1; i < len(table); i++ {
		cells := table[i]
		if rowEmpty(cells) {
			continue
		}
		row := make(RawRow, len(header))
		for j, name := range header {
			if name == "" {
				continue
			}
			if j >= len(cells) {
				row[name] = ""
				continue
			}
			if t, ok := dateCell(f, sheet, j, i); ok {
				row[name] = t
				continue
			}
			row[name] = cells[j]
		}
		out = append(out, row)
	}
	return out, nil
}

// dateCell resolves a date-formatted cell to its time value. The serial
// number is read raw so the cell's display format never matters.
func dateCell(f *excelize.File, sheet string, col, rowIdx int) (time.Time, bool) {
	axis, err := excelize.CoordinatesToCellName(col+1, rowIdx+1)
	if err != nil {
		return time.Time{}, false
	}
	styleID, err := f.GetCellStyle(sheet, axis)
	if err != nil {
		return time.Time{}, false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil || !dateFormat(style) {
		return time.Time{}, false
	}
	raw, err := f.GetCellValue(sheet, axis, excelize.Options{RawCellValue: true})
	if err != nil {
		return time.Time{}, false
	}
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// dateFormat reports whether a style renders the cell as a calendar
// date. Builtin IDs 14-22 and 27-36 are the ECMA-376 date formats;
// custom formats are matched on their day/year tokens.
func dateFormat(style *excelize.Style) bool {
	if style.NumFmt >= 14 && style.NumFmt <= 22 {
		return true
	}
	if style.NumFmt >= 27 && style.NumFmt <= 36 {
		return true
	}
	if style.CustomNumFmt != nil {
		fmtStr := strings.ToLower(*style.CustomNumFmt)
		return strings.Contains(fmtStr, "dd") || strings.Contains(fmtStr, "yy")
	}
	return false
}

// tableToRows zips a header row with the data rows below it.
func tableToRows(table [][]string) []RawRow {
	var header []string
	var out []RawRow
	for _, cells := range table {
		if header == nil {
			if rowEmpty(cells) {
				continue
			}
			header = cells
			continue
		}
		if rowEmpty(cells) {
			continue
		}
		row := make(RawRow, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(cells) {
				row[name] = cells[i]
			} else {
				row[name] = ""
			}
		}
		out = append(out, row)
	}
	return out
}

func rowEmpty(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
