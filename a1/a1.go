// Package a1 converts between A1 range notation (e.g. 'Sheet1!A1:B10') and
// structured row/column coordinates.
//
// Columns are numbered in bijective base-26: A=1, B=2 ... Z=26, AA=27, AB=28.
// There is no digit for zero, so column 0 (and anything negative) is always
// invalid. Rows are plain 1-based integers. Row-only ranges ('1:3'),
// column-only ranges ('A:C') and half-open ranges ('A2:B') keep their open
// axes explicit - they are never clamped to an arbitrary bound.
package a1

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Bound is one endpoint of a range axis - either fixed at a 1-based index or
// open. The zero value is open.
type Bound struct {
	Index   int
	Bounded bool
}

// At returns a bound fixed at the 1-based index n.
func At(n int) Bound {
	return Bound{Index: n, Bounded: true}
}

// Unbounded is the open end of a row-only or column-only range.
var Unbounded = Bound{}

// Range is a parsed A1 range. The sheet name is optional and stored unquoted.
// Invariant: on any axis where both ends are bounded, start <= end.
type Range struct {
	Sheet       string
	StartColumn Bound
	StartRow    Bound
	EndColumn   Bound
	EndRow      Bound
}

// InvalidRangeError reports A1 notation text that could not be parsed, or
// coordinates that cannot be formatted as A1 notation.
type InvalidRangeError struct {
	Text   string
	Reason string
}

func (e *InvalidRangeError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("invalid A1 notation: %s", e.Reason)
	}

	return fmt.Sprintf("invalid A1 notation %q: %s", e.Text, e.Reason)
}

var (
	cellRe     = regexp.MustCompile(`^([A-Za-z]+)([0-9]+)$`)
	endpointRe = regexp.MustCompile(`^([A-Za-z]*)([0-9]*)$`)
	bareNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// maxColumnLetters bounds the column letter run. Sheets itself tops out at
// three letters (ZZZ = 18278); past six the base-26 decode no longer fits in
// an int32, so longer runs are rejected rather than silently wrapped.
const maxColumnLetters = 6

// ParseCell decodes a cell reference such as "B3" (optionally prefixed with a
// sheet name, "Sheet1!B3") into 1-based column and row numbers.
func ParseCell(text string) (int, int, error) {
	_, cell, err := splitSheet(text)
	if err != nil {
		return 0, 0, err
	}

	match := cellRe.FindStringSubmatch(cell)
	if match == nil {
		return 0, 0, &InvalidRangeError{Text: text, Reason: "expected column letters followed by a row number"}
	}

	if len(match[1]) > maxColumnLetters {
		return 0, 0, &InvalidRangeError{Text: text, Reason: "column letters out of range"}
	}

	column := columnNumber(match[1])

	row, err := strconv.Atoi(match[2])
	if err != nil || row < 1 {
		return 0, 0, &InvalidRangeError{Text: text, Reason: "row number must be 1 or greater"}
	}

	return column, row, nil
}

// FormatCell is the inverse of ParseCell: it renders 1-based column and row
// numbers as a cell reference.
func FormatCell(column, row int) (string, error) {
	if column < 1 {
		return "", &InvalidRangeError{Reason: fmt.Sprintf("column %v out of range - columns start at 1", column)}
	}

	if row < 1 {
		return "", &InvalidRangeError{Reason: fmt.Sprintf("row %v out of range - rows start at 1", row)}
	}

	return fmt.Sprintf("%s%d", columnLetters(column), row), nil
}

// ParseRange decodes an A1 range: a bare cell ("B3"), a bounded range
// ("A1:B10"), a half-open range ("A1:B"), a column-only range ("A:C") or a
// row-only range ("1:3"), optionally qualified with a sheet name. Sheet names
// containing anything other than letters, digits and underscores must be
// single-quoted, with embedded quotes doubled.
func ParseRange(text string) (Range, error) {
	sheet, rest, err := splitSheet(text)
	if err != nil {
		return Range{}, err
	}

	if rest == "" {
		return Range{}, &InvalidRangeError{Text: text, Reason: "missing cell range"}
	}

	parts := strings.Split(rest, ":")
	if len(parts) > 2 {
		return Range{}, &InvalidRangeError{Text: text, Reason: "too many ':' separators"}
	}

	if len(parts) == 1 {
		column, row, err := ParseCell(parts[0])
		if err != nil {
			return Range{}, &InvalidRangeError{Text: text, Reason: "single reference must be a complete cell"}
		}

		return Range{
			Sheet:       sheet,
			StartColumn: At(column),
			StartRow:    At(row),
			EndColumn:   At(column),
			EndRow:      At(row),
		}, nil
	}

	startColumn, startRow, err := parseEndpoint(text, parts[0])
	if err != nil {
		return Range{}, err
	}

	endColumn, endRow, err := parseEndpoint(text, parts[1])
	if err != nil {
		return Range{}, err
	}

	// The end may leave open an axis the start bounds ('A1:B'), but not the
	// other way around ('A:B2' is malformed).
	if endColumn.Bounded && !startColumn.Bounded {
		return Range{}, &InvalidRangeError{Text: text, Reason: "end bounds a column the start leaves open"}
	}

	if endRow.Bounded && !startRow.Bounded {
		return Range{}, &InvalidRangeError{Text: text, Reason: "end bounds a row the start leaves open"}
	}

	if startColumn.Bounded && endColumn.Bounded && endColumn.Index < startColumn.Index {
		return Range{}, &InvalidRangeError{Text: text, Reason: "end column precedes start column"}
	}

	if startRow.Bounded && endRow.Bounded && endRow.Index < startRow.Index {
		return Range{}, &InvalidRangeError{Text: text, Reason: "end row precedes start row"}
	}

	return Range{
		Sheet:       sheet,
		StartColumn: startColumn,
		StartRow:    startRow,
		EndColumn:   endColumn,
		EndRow:      endRow,
	}, nil
}

// FormatRange is the inverse of ParseRange. A fully bounded range of size one
// is rendered as a bare cell, matching the form Sheets itself displays.
func FormatRange(r Range) (string, error) {
	if err := validate(r); err != nil {
		return "", err
	}

	start := formatEndpoint(r.StartColumn, r.StartRow)
	end := formatEndpoint(r.EndColumn, r.EndRow)

	text := start + ":" + end
	if bounded(r) && start == end {
		text = start
	}

	if r.Sheet != "" {
		text = quoteSheet(r.Sheet) + "!" + text
	}

	return text, nil
}

func validate(r Range) error {
	for _, b := range []Bound{r.StartColumn, r.StartRow, r.EndColumn, r.EndRow} {
		if b.Bounded && b.Index < 1 {
			return &InvalidRangeError{Reason: fmt.Sprintf("index %v out of range - columns and rows start at 1", b.Index)}
		}
	}

	if !r.StartColumn.Bounded && !r.StartRow.Bounded {
		return &InvalidRangeError{Reason: "start bounds neither axis"}
	}

	if !r.EndColumn.Bounded && !r.EndRow.Bounded {
		return &InvalidRangeError{Reason: "end bounds neither axis"}
	}

	if r.EndColumn.Bounded && !r.StartColumn.Bounded {
		return &InvalidRangeError{Reason: "end bounds a column the start leaves open"}
	}

	if r.EndRow.Bounded && !r.StartRow.Bounded {
		return &InvalidRangeError{Reason: "end bounds a row the start leaves open"}
	}

	if r.StartColumn.Bounded && r.EndColumn.Bounded && r.EndColumn.Index < r.StartColumn.Index {
		return &InvalidRangeError{Reason: "end column precedes start column"}
	}

	if r.StartRow.Bounded && r.EndRow.Bounded && r.EndRow.Index < r.StartRow.Index {
		return &InvalidRangeError{Reason: "end row precedes start row"}
	}

	return nil
}

func bounded(r Range) bool {
	return r.StartColumn.Bounded && r.StartRow.Bounded && r.EndColumn.Bounded && r.EndRow.Bounded
}

func parseEndpoint(text, endpoint string) (Bound, Bound, error) {
	match := endpointRe.FindStringSubmatch(endpoint)
	if match == nil || (match[1] == "" && match[2] == "") {
		return Bound{}, Bound{}, &InvalidRangeError{Text: text, Reason: fmt.Sprintf("malformed endpoint %q", endpoint)}
	}

	column := Unbounded
	if match[1] != "" {
		if len(match[1]) > maxColumnLetters {
			return Bound{}, Bound{}, &InvalidRangeError{Text: text, Reason: "column letters out of range"}
		}

		column = At(columnNumber(match[1]))
	}

	row := Unbounded
	if match[2] != "" {
		n, err := strconv.Atoi(match[2])
		if err != nil || n < 1 {
			return Bound{}, Bound{}, &InvalidRangeError{Text: text, Reason: "row number must be 1 or greater"}
		}

		row = At(n)
	}

	return column, row, nil
}

func formatEndpoint(column, row Bound) string {
	s := ""
	if column.Bounded {
		s += columnLetters(column.Index)
	}

	if row.Bounded {
		s += strconv.Itoa(row.Index)
	}

	return s
}

// columnNumber decodes column letters as bijective base-26. Case-insensitive.
func columnNumber(letters string) int {
	n := 0
	for _, ch := range strings.ToUpper(letters) {
		n = n*26 + int(ch-'A') + 1
	}

	return n
}

// columnLetters is the inverse of columnNumber: 1 => "A", 26 => "Z", 27 => "AA".
func columnLetters(n int) string {
	letters := []byte{}
	for n > 0 {
		letters = append([]byte{byte('A' + (n-1)%26)}, letters...)
		n = (n - 1) / 26
	}

	return string(letters)
}

// splitSheet separates an optional sheet-name qualifier from the cell/range
// text, unquoting the name if necessary.
func splitSheet(text string) (string, string, error) {
	if strings.HasPrefix(text, "'") {
		for i := 1; i < len(text); i++ {
			if text[i] != '\'' {
				continue
			}

			// a doubled quote is an escaped quote within the name
			if i+1 < len(text) && text[i+1] == '\'' {
				i++
				continue
			}

			if i+1 >= len(text) || text[i+1] != '!' {
				return "", "", &InvalidRangeError{Text: text, Reason: "expected '!' after quoted sheet name"}
			}

			name := strings.ReplaceAll(text[1:i], "''", "'")
			if name == "" {
				return "", "", &InvalidRangeError{Text: text, Reason: "empty sheet name"}
			}

			return name, text[i+2:], nil
		}

		return "", "", &InvalidRangeError{Text: text, Reason: "unterminated quoted sheet name"}
	}

	if ix := strings.Index(text, "!"); ix != -1 {
		name := text[:ix]
		if name == "" {
			return "", "", &InvalidRangeError{Text: text, Reason: "empty sheet name"}
		}

		return name, text[ix+1:], nil
	}

	return "", text, nil
}

// quoteSheet single-quotes a sheet name unless it is unambiguously bare: a
// name that looks like a cell reference ('A1') must be quoted too.
func quoteSheet(name string) string {
	if bareNameRe.MatchString(name) && !cellRe.MatchString(name) {
		return name
	}

	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
