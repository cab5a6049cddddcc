package a1

import (
	"reflect"
	"testing"
)

func int64p(v int64) *int64 {
	return &v
}

func TestGridRange(t *testing.T) {
	tests := []struct {
		text     string
		expected GridRange
	}{
		{"A1:B10", GridRange{StartRowIndex: 0, EndRowIndex: int64p(10), StartColumnIndex: 0, EndColumnIndex: int64p(2)}},
		{"B3", GridRange{StartRowIndex: 2, EndRowIndex: int64p(3), StartColumnIndex: 1, EndColumnIndex: int64p(2)}},
		{"C2:E5", GridRange{StartRowIndex: 1, EndRowIndex: int64p(5), StartColumnIndex: 2, EndColumnIndex: int64p(5)}},
		{"A:A", GridRange{StartRowIndex: 0, EndRowIndex: nil, StartColumnIndex: 0, EndColumnIndex: int64p(1)}},
		{"1:1", GridRange{StartRowIndex: 0, EndRowIndex: int64p(1), StartColumnIndex: 0, EndColumnIndex: nil}},
		{"A2:E", GridRange{StartRowIndex: 1, EndRowIndex: nil, StartColumnIndex: 0, EndColumnIndex: int64p(5)}},
	}

	for _, test := range tests {
		r, err := ParseRange(test.text)
		if err != nil {
			t.Fatalf("ParseRange(%q): unexpected error (%v)", test.text, err)
		}

		g, err := r.GridRange()
		if err != nil {
			t.Fatalf("GridRange(%q): unexpected error (%v)", test.text, err)
		}

		if !reflect.DeepEqual(g, test.expected) {
			t.Errorf("GridRange(%q)\n   expected: %+v\n   got:      %+v", test.text, test.expected, g)
		}
	}
}

func TestGridRangeUnboundedRowAxis(t *testing.T) {
	r, err := ParseRange("A:A")
	if err != nil {
		t.Fatalf("ParseRange(A:A): unexpected error (%v)", err)
	}

	if r.StartRow.Bounded || r.EndRow.Bounded {
		t.Errorf("ParseRange(A:A): expected unbounded row axis, got %+v", r)
	}

	if !r.StartColumn.Bounded || !r.EndColumn.Bounded {
		t.Errorf("ParseRange(A:A): expected bounded column axis, got %+v", r)
	}

	g, err := r.GridRange()
	if err != nil {
		t.Fatalf("GridRange(A:A): unexpected error (%v)", err)
	}

	if g.EndRowIndex != nil {
		t.Errorf("GridRange(A:A): expected absent row end index, got %v", *g.EndRowIndex)
	}
}

func TestGridRangeInvalid(t *testing.T) {
	tests := []Range{
		{},
		{StartColumn: At(0), StartRow: At(1), EndColumn: At(1), EndRow: At(1)},
		{StartColumn: At(3), StartRow: At(1), EndColumn: At(1), EndRow: At(1)},
	}

	for _, test := range tests {
		if _, err := test.GridRange(); err == nil {
			t.Errorf("GridRange(%+v): expected error, got %v", test, err)
		}
	}
}

// Conversion to grid form and back must be the identity for any fully
// bounded range.
func TestGridRangeRoundTrip(t *testing.T) {
	tests := []string{
		"A1:B10",
		"B3",
		"C2:E5",
		"AA100:AB200",
		"A:A",
		"1:1",
	}

	for _, test := range tests {
		r, err := ParseRange(test)
		if err != nil {
			t.Fatalf("ParseRange(%q): unexpected error (%v)", test, err)
		}

		g, err := r.GridRange()
		if err != nil {
			t.Fatalf("GridRange(%q): unexpected error (%v)", test, err)
		}

		if back := FromGridRange(g); !reflect.DeepEqual(back, r) {
			t.Errorf("round trip %q\n   expected: %+v\n   got:      %+v", test, r, back)
		}
	}
}
