package a1

// GridRange is the zero-based half-open coordinate form used by the Sheets
// API: a cell (column,row) is inside the range when
// StartRowIndex <= row-1 < EndRowIndex and likewise for columns. An axis
// without an end index is unbounded.
type GridRange struct {
	StartRowIndex    int64
	EndRowIndex      *int64
	StartColumnIndex int64
	EndColumnIndex   *int64
}

// GridRange converts the range to its zero-based half-open form. The
// conversion is exactly invertible (via FromGridRange) for fully bounded
// ranges; an open start maps to index 0, which is how the Sheets API reads
// 'A:A'.
func (r Range) GridRange() (GridRange, error) {
	if err := validate(r); err != nil {
		return GridRange{}, err
	}

	g := GridRange{}

	if r.StartRow.Bounded {
		g.StartRowIndex = int64(r.StartRow.Index - 1)
	}

	if r.StartColumn.Bounded {
		g.StartColumnIndex = int64(r.StartColumn.Index - 1)
	}

	if r.EndRow.Bounded {
		end := int64(r.EndRow.Index)
		g.EndRowIndex = &end
	}

	if r.EndColumn.Bounded {
		end := int64(r.EndColumn.Index)
		g.EndColumnIndex = &end
	}

	return g, nil
}

// FromGridRange converts a zero-based half-open grid range back to A1
// coordinates. An axis with no end index and a zero start index is treated as
// fully unbounded - the grid form cannot distinguish 'A:A' from 'A1:A'.
func FromGridRange(g GridRange) Range {
	r := Range{}

	switch {
	case g.EndRowIndex != nil:
		r.StartRow = At(int(g.StartRowIndex) + 1)
		r.EndRow = At(int(*g.EndRowIndex))
	case g.StartRowIndex > 0:
		r.StartRow = At(int(g.StartRowIndex) + 1)
	}

	switch {
	case g.EndColumnIndex != nil:
		r.StartColumn = At(int(g.StartColumnIndex) + 1)
		r.EndColumn = At(int(*g.EndColumnIndex))
	case g.StartColumnIndex > 0:
		r.StartColumn = At(int(g.StartColumnIndex) + 1)
	}

	return r
}
