package packer

import (
	"encoding/json"
	"fmt"
)

// Bin is a single stock piece and the cuts assigned to it.
type Bin struct {
	capacity int
	items    []int
	used     int
}

// NewBin returns an empty bin holding up to capacity.
func NewBin(capacity int) (*Bin, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Bin{
		capacity: capacity,
		items:    []int{},
	}, nil
}

// Add appends item and recomputes the used total. Callers are responsible
// for checking that item fits.
func (b *Bin) Add(item int) {
	b.items = append(b.items, item)

	used := 0
	for _, v := range b.items {
		used += v
	}
	b.used = used
}

// Capacity returns the bin size.
func (b *Bin) Capacity() int {
	return b.capacity
}

// Used returns the sum of all items in the bin.
func (b *Bin) Used() int {
	return b.used
}

// Remaining returns the unused length of the bin.
func (b *Bin) Remaining() int {
	return b.capacity - b.used
}

// Len returns the number of items in the bin.
func (b *Bin) Len() int {
	return len(b.items)
}

// Items returns a copy of the items in insertion order.
func (b *Bin) Items() []int {
	out := make([]int, len(b.items))
	copy(out, b.items)
	return out
}

func (b *Bin) String() string {
	return fmt.Sprintf("Bin(capacity=%d, used=%d, cuts=%v)", b.capacity, b.used, b.items)
}

// MarshalJSON exposes the bin's capacity, used total and cuts.
func (b *Bin) MarshalJSON() ([]byte, error) {
	return json.Marshal(binJSON{
		Capacity: b.capacity,
		Used:     b.used,
		Cuts:     b.Items(),
	})
}

type binJSON struct {
	Capacity int   `json:"capacity"`
	Used     int   `json:"used"`
	Cuts     []int `json:"cuts"`
}
