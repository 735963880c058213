// internal/dataset/dataset.go
// Package dataset loads (key, value) tables and keeps their display order.
package dataset

import (
	"math"
	"sort"
)

// Record is one row of the source table. ID is the row's position among the
// records kept at load time and identifies the record across reorderings.
type Record struct {
	ID    int     `json:"id"`
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// Direction is the order most recently applied by Sort.
type Direction int

const (
	// Unsorted means records are in load order.
	Unsorted Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return "original"
	}
}

// Dataset is an ordered sequence of records plus the load order needed to
// undo sorting. Dropped counts rows rejected by numeric coercion.
type Dataset struct {
	records   []Record
	original  []Record
	direction Direction
	ascNext   bool
	Dropped   int
}

// New builds a dataset from records in load order, assigning IDs.
func New(records []Record) *Dataset {
	original := make([]Record, len(records))
	for i, r := range records {
		r.ID = i
		original[i] = r
	}
	current := make([]Record, len(original))
	copy(current, original)
	return &Dataset{records: current, original: original, ascNext: true}
}

// Records returns a copy of the records in display order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Original returns a copy of the records in load order.
func (d *Dataset) Original() []Record {
	out := make([]Record, len(d.original))
	copy(out, d.original)
	return out
}

func (d *Dataset) Len() int { return len(d.records) }

// Keys returns record keys in display order, duplicates included.
func (d *Dataset) Keys() []string {
	keys := make([]string, len(d.records))
	for i, r := range d.records {
		keys[i] = r.Key
	}
	return keys
}

// Max returns the largest value, or 0 for an empty dataset.
func (d *Dataset) Max() float64 {
	if len(d.records) == 0 {
		return 0
	}
	max := math.Inf(-1)
	for _, r := range d.records {
		if r.Value > max {
			max = r.Value
		}
	}
	return max
}

// Lookup maps key to value. A key that appears more than once maps to its
// last occurrence in load order.
func (d *Dataset) Lookup() map[string]float64 {
	out := make(map[string]float64, len(d.original))
	for _, r := range d.original {
		out[r.Key] = r.Value
	}
	return out
}

// Direction reports the order currently applied.
func (d *Dataset) Direction() Direction { return d.direction }

// Sort reorders records by value, alternating ascending and descending on
// each call starting with ascending. Ties keep their current relative order.
func (d *Dataset) Sort() Direction {
	asc := d.ascNext
	sort.SliceStable(d.records, func(i, j int) bool {
		if asc {
			return d.records[i].Value < d.records[j].Value
		}
		return d.records[i].Value > d.records[j].Value
	})
	d.ascNext = !asc
	if asc {
		d.direction = Ascending
	} else {
		d.direction = Descending
	}
	return d.direction
}

// Reset restores load order. The next Sort is ascending again.
func (d *Dataset) Reset() {
	copy(d.records, d.original)
	d.direction = Unsorted
	d.ascNext = true
}

// Sorted returns the records ordered in dir without changing the dataset.
func (d *Dataset) Sorted(dir Direction) []Record {
	out := d.Original()
	switch dir {
	case Ascending:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	case Descending:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	}
	return out
}
