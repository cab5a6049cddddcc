package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/gsheet-api/gsheet-go/a1"
)

// sheetToTSV writes the retrieved cell values as tab-separated records,
// padding short rows so that every record has the same number of fields.
func sheetToTSV(f io.Writer, data *sheets.ValueRange) error {
	if len(data.Values) == 0 {
		return fmt.Errorf("empty sheet")
	}

	width := 0
	for _, row := range data.Values {
		if len(row) > width {
			width = len(row)
		}
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	record := make([]string, width)
	for _, row := range data.Values {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = clean(fmt.Sprintf("%v", row[i]))
			}
		}

		w.Write(record)
	}

	w.Flush()

	return w.Error()
}

// tsvToSheet reads tab-separated records and splits them into a header
// value range (the first record) and a data value range (the rest), with
// the ranges derived from the anchor cell of area.
func tsvToSheet(f io.Reader, area string) (*sheets.ValueRange, *sheets.ValueRange, error) {
	rng, err := a1.ParseRange(area)
	if err != nil {
		return nil, nil, err
	}

	if !rng.StartColumn.Bounded || !rng.StartRow.Bounded {
		return nil, nil, fmt.Errorf("invalid spreadsheet range '%s' - expected an anchored range e.g. 'Summary!A1:E'", area)
	}

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("TSV file is empty")
	}

	top := rng.StartRow.Index

	headerArea, err := a1.FormatRange(a1.Range{
		Sheet:       rng.Sheet,
		StartColumn: rng.StartColumn,
		StartRow:    a1.At(top),
		EndColumn:   rng.EndColumn,
		EndRow:      a1.At(top),
	})
	if err != nil {
		return nil, nil, err
	}

	header := sheets.ValueRange{
		Range:  headerArea,
		Values: [][]any{row(records[0])},
	}

	if len(records) == 1 {
		return &header, nil, nil
	}

	if rng.EndRow.Bounded && rng.EndRow.Index <= top {
		return nil, nil, fmt.Errorf("range '%s' has no room for data rows", area)
	}

	dataArea, err := a1.FormatRange(a1.Range{
		Sheet:       rng.Sheet,
		StartColumn: rng.StartColumn,
		StartRow:    a1.At(top + 1),
		EndColumn:   rng.EndColumn,
		EndRow:      rng.EndRow,
	})
	if err != nil {
		return nil, nil, err
	}

	rows := make([][]any, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, row(record))
	}

	data := sheets.ValueRange{
		Range:  dataArea,
		Values: rows,
	}

	return &header, &data, nil
}

func row(record []string) []any {
	cells := make([]any, len(record))
	for i, v := range record {
		cells[i] = v
	}

	return cells
}

func clean(v string) string {
	return strings.TrimSpace(v)
}
