// Package cutlist holds the lengths a job needs cut from stock. Entries are
// (length, quantity) pairs and can be parsed from a compact flag syntax or
// imported from CSV and Excel files.
package cutlist

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidEntry indicates a cut entry with a non-positive length or quantity.
	ErrInvalidEntry = errors.New("cut length and quantity must be positive integers")
	// ErrEmpty indicates that no cut entries were provided.
	ErrEmpty = errors.New("cut list is empty")
)

// Entry is one line of a cut list: Quantity cuts of Length each.
type Entry struct {
	Label    string `json:"label,omitempty"`
	Length   int    `json:"length"`
	Quantity int    `json:"quantity"`
}

// Validate reports whether the entry can be added to a List.
func (e Entry) Validate() error {
	if e.Length <= 0 || e.Quantity <= 0 {
		return fmt.Errorf("%w: length=%d quantity=%d", ErrInvalidEntry, e.Length, e.Quantity)
	}
	if e.Quantity > math.MaxInt/e.Length {
		return fmt.Errorf("%w: total of %dx%d overflows", ErrInvalidEntry, e.Length, e.Quantity)
	}
	return nil
}

// Total returns Length * Quantity.
func (e Entry) Total() int {
	return e.Length * e.Quantity
}

func (e Entry) String() string {
	if e.Label != "" {
		return fmt.Sprintf("%s %dx%d", e.Label, e.Length, e.Quantity)
	}
	return fmt.Sprintf("%dx%d", e.Length, e.Quantity)
}

// List is an ordered collection of cut entries.
type List struct {
	entries []Entry
}

// New builds a List from entries, rejecting the first invalid one.
func New(entries ...Entry) (*List, error) {
	l := &List{}
	for _, e := range entries {
		if err := l.Add(e); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Add appends a validated entry. The running total and cut count of the
// list must stay within an int.
func (l *List) Add(e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.Total() > math.MaxInt-l.Total() || e.Quantity > math.MaxInt-l.Count() {
		return fmt.Errorf("%w: adding %s overflows the list total", ErrInvalidEntry, e)
	}
	l.entries = append(l.entries, e)
	return nil
}

// Entries returns a copy of the entries in insertion order.
func (l *List) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Lengths flattens the list into one value per cut, in entry order.
func (l *List) Lengths() []int {
	out := make([]int, 0, l.Count())
	for _, e := range l.entries {
		for i := 0; i < e.Quantity; i++ {
			out = append(out, e.Length)
		}
	}
	return out
}

// Count returns the number of individual cuts.
func (l *List) Count() int {
	n := 0
	for _, e := range l.entries {
		n += e.Quantity
	}
	return n
}

// Total returns the combined length of all cuts.
func (l *List) Total() int {
	total := 0
	for _, e := range l.entries {
		total += e.Total()
	}
	return total
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.entries)
}

// ParseEntries parses a comma-separated list such as "1200x4, 800x2, 350".
// An item without a quantity counts once.
func ParseEntries(raw string) ([]Entry, error) {
	parts := strings.Split(raw, ",")
	entries := make([]Entry, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		entry, err := parseEntry(part)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, ErrEmpty
	}
	return entries, nil
}

func parseEntry(item string) (Entry, error) {
	lengthStr, qtyStr, hasQty := strings.Cut(strings.ToLower(item), "x")

	length, err := strconv.Atoi(strings.TrimSpace(lengthStr))
	if err != nil {
		return Entry{}, fmt.Errorf("invalid cut length %q", item)
	}

	qty := 1
	if hasQty {
		qty, err = strconv.Atoi(strings.TrimSpace(qtyStr))
		if err != nil {
			return Entry{}, fmt.Errorf("invalid cut quantity %q", item)
		}
	}

	entry := Entry{Length: length, Quantity: qty}
	if err := entry.Validate(); err != nil {
		return Entry{}, err
	}
	return entry, nil
}
