package dataset

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Row maps a column name to its raw cell value. Typed access goes through
// Float and Time, which parse lazily so non-numeric cells in a numeric
// column degrade to "absent" rather than failing the whole dataset.
type Row map[string]string

// Dataset is an ordered sequence of rows read from a tabular source.
type Dataset struct {
	Columns []string
	Rows    []Row
}

func (d Dataset) Empty() bool {
	return len(d.Rows) == 0
}

func (d Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Float parses the cell in col as a number. Thousands separators are not
// handled; the upload preview is the place to catch those.
func (r Row) Float(col string) (float64, bool) {
	raw, ok := r[col]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	time.RFC3339,
}

// Time parses the cell in col against the supported date layouts.
func (r Row) Time(col string) (time.Time, bool) {
	raw, ok := r[col]
	if !ok {
		return time.Time{}, false
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortedByDate returns the rows ordered by dateCol ascending. When every row
// parses as a date the sort is chronological; otherwise it falls back to a
// lexicographic sort on the raw values, which keeps ISO-formatted dates in
// order even when parsing fails. The receiver is not modified.
func (d Dataset) SortedByDate(dateCol string) []Row {
	rows := make([]Row, len(d.Rows))
	copy(rows, d.Rows)

	allDates := true
	times := make([]time.Time, len(rows))
	for i, row := range rows {
		t, ok := row.Time(dateCol)
		if !ok {
			allDates = false
			break
		}
		times[i] = t
	}

	if allDates {
		idx := make([]int, len(rows))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool { return times[idx[a]].Before(times[idx[b]]) })
		sorted := make([]Row, len(rows))
		for i, j := range idx {
			sorted[i] = rows[j]
		}
		return sorted
	}

	sort.SliceStable(rows, func(a, b int) bool { return rows[a][dateCol] < rows[b][dateCol] })
	return rows
}
