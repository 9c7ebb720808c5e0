// Package flight implements the Astro Airlines flight desk: a fixed flight
// catalog and the console dialogue that answers questions about it.
package flight

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Record is one row of the flight catalog. Times are display strings.
type Record struct {
	Key     string `json:"flight"`
	City    string `json:"city"`
	Number  string `json:"number"`
	Departs string `json:"departs"`
	Arrives string `json:"arrives"`
}

// Table is an ordered, read-only flight catalog keyed by canonical flight key.
type Table struct {
	records []Record
	byKey   map[string]int
}

// NewTable builds a Table from records, keeping their order.
// Records are re-keyed with CanonicalKey; a later duplicate replaces an earlier one in place.
func NewTable(records ...Record) *Table {
	t := &Table{byKey: make(map[string]int, len(records))}
	for _, r := range records {
		r.Key = CanonicalKey(r.City + " " + r.Number)
		if i, ok := t.byKey[r.Key]; ok {
			t.records[i] = r
			continue
		}
		t.byKey[r.Key] = len(t.records)
		t.records = append(t.records, r)
	}
	return t
}

// DefaultTable returns the three flights the desk knows about.
func DefaultTable() *Table {
	return NewTable(
		Record{City: "Dallas", Number: "305", Departs: "4:00PM", Arrives: "10:00PM"},
		Record{City: "Chicago", Number: "306", Departs: "3:00AM", Arrives: "12:00PM"},
		Record{City: "Columbus", Number: "307", Departs: "2:00PM", Arrives: "8:00PM"},
	)
}

// CanonicalKey collapses whitespace and title-cases each word,
// so "  dallas   305 " becomes "Dallas 305".
func CanonicalKey(request string) string {
	collapsed := strings.Join(strings.Fields(request), " ")
	return cases.Title(language.Und).String(collapsed)
}

// Lookup finds a flight by request string. There is no partial matching.
func (t *Table) Lookup(request string) (Record, bool) {
	i, ok := t.byKey[CanonicalKey(request)]
	if !ok {
		return Record{}, false
	}
	return t.records[i], true
}

// Records returns a copy of the catalog in order.
func (t *Table) Records() []Record {
	return append([]Record(nil), t.records...)
}

// Keys returns the canonical keys in catalog order.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.records))
	for i, r := range t.records {
		keys[i] = r.Key
	}
	return keys
}

// Len returns the number of flights.
func (t *Table) Len() int {
	return len(t.records)
}
