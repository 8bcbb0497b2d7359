package frequency

import (
	"errors"
	"strings"
	"testing"

	"github.com/verte-zerg/lottopick/internal/model"
)

func TestParseBuildsTable(t *testing.T) {
	rows := [][]string{{"1", "5"}, {" 2 ", "3"}, {"3", "3"}, {"4", "1"}}
	table, err := Parse(rows)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if table.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", table.Len())
	}
	if f, ok := table.Frequency(2); !ok || f != 3 {
		t.Fatalf("unexpected frequency for 2: %d %v", f, ok)
	}
	entries := table.Entries()
	for i, want := range []int{1, 2, 3, 4} {
		if entries[i].Number != want {
			t.Fatalf("expected entries ordered by number, got %+v", entries)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		rows [][]string
		want error
		row  int
	}{
		{"non-integer number", [][]string{{"x", "10"}}, ErrMalformedRow, 1},
		{"non-integer frequency", [][]string{{"1", "2"}, {"3", "ten"}}, ErrMalformedRow, 2},
		{"one field", [][]string{{"1"}}, ErrMalformedRow, 1},
		{"three fields", [][]string{{"1", "2", "3"}}, ErrMalformedRow, 1},
		{"negative frequency", [][]string{{"5", "-1"}}, ErrNegativeFrequency, 1},
		{"negative number", [][]string{{"-5", "1"}}, ErrNegativeNumber, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.rows)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var rowErr *RowError
			if !errors.As(err, &rowErr) {
				t.Fatalf("expected *RowError, got %T", err)
			}
			if rowErr.Row != tc.row {
				t.Fatalf("expected row %d, got %d", tc.row, rowErr.Row)
			}
		})
	}
}

func TestParseDuplicatePolicy(t *testing.T) {
	rows := [][]string{{"7", "1"}, {"8", "2"}, {"7", "9"}}

	table, err := Parse(rows)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", table.Len())
	}
	if f, _ := table.Frequency(7); f != 9 {
		t.Fatalf("expected last row to win, got %d", f)
	}

	_, err = ParseWithPolicy(rows, model.Reject)
	if !errors.Is(err, ErrDuplicateNumber) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestReadCSVSkipsHeaderAndComments(t *testing.T) {
	input := strings.Join([]string{
		"number,frequency",
		"# drawn since 2001",
		"1, 5",
		"",
		"2,3",
		"x,10",
	}, "\n")
	rows, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %q", len(rows), rows)
	}
	if rows[0][0] != "1" || rows[0][1] != "5" {
		t.Fatalf("unexpected first row: %q", rows[0])
	}
	if _, err := Parse(rows); !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("expected malformed row to reach the parser, got %v", err)
	}
}

func TestReadCSVKeepsRaggedRows(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader("1,2\n3\n"))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 2 || len(rows[1]) != 1 {
		t.Fatalf("unexpected rows: %q", rows)
	}
}

func TestNegativeNumberIsMalformed(t *testing.T) {
	_, err := Parse([][]string{{"-5", "1"}})
	if !errors.Is(err, ErrNegativeNumber) {
		t.Fatalf("expected ErrNegativeNumber, got %v", err)
	}
	if !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("expected negative number to match ErrMalformedRow, got %v", err)
	}
	if errors.Is(err, ErrNegativeFrequency) {
		t.Fatalf("did not expect negative number to match ErrNegativeFrequency")
	}
}
