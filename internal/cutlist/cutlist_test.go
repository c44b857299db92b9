package cutlist

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryValidate(t *testing.T) {
	assert.NoError(t, Entry{Length: 1, Quantity: 1}.Validate())
	assert.ErrorIs(t, Entry{Length: 0, Quantity: 1}.Validate(), ErrInvalidEntry)
	assert.ErrorIs(t, Entry{Length: 100, Quantity: 0}.Validate(), ErrInvalidEntry)
	assert.ErrorIs(t, Entry{Length: -5, Quantity: 2}.Validate(), ErrInvalidEntry)
	assert.ErrorIs(t, Entry{Length: math.MaxInt/2 + 1, Quantity: 2}.Validate(), ErrInvalidEntry)
	assert.NoError(t, Entry{Length: math.MaxInt / 2, Quantity: 2}.Validate())
}

func TestListRejectsOverflowingTotal(t *testing.T) {
	list, err := New(Entry{Length: math.MaxInt / 2, Quantity: 2})
	require.NoError(t, err)

	err = list.Add(Entry{Length: 2, Quantity: 1})
	assert.ErrorIs(t, err, ErrInvalidEntry)
	assert.Equal(t, 1, list.Len())
	assert.Equal(t, math.MaxInt/2*2, list.Total())
}

func TestListFlattensInEntryOrder(t *testing.T) {
	list, err := New(
		Entry{Length: 1200, Quantity: 2},
		Entry{Length: 350, Quantity: 1},
		Entry{Label: "brace", Length: 800, Quantity: 3},
	)
	require.NoError(t, err)

	assert.Equal(t, []int{1200, 1200, 350, 800, 800, 800}, list.Lengths())
	assert.Equal(t, 6, list.Count())
	assert.Equal(t, 3, list.Len())
	assert.Equal(t, 1200*2+350+800*3, list.Total())
}

func TestListRejectsInvalidEntry(t *testing.T) {
	_, err := New(Entry{Length: 100, Quantity: 1}, Entry{Length: 0, Quantity: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidEntry))

	list := &List{}
	require.ErrorIs(t, list.Add(Entry{Length: 10, Quantity: -1}), ErrInvalidEntry)
	assert.Zero(t, list.Len())
}

func TestListEntriesReturnsCopy(t *testing.T) {
	list, err := New(Entry{Length: 10, Quantity: 1})
	require.NoError(t, err)

	entries := list.Entries()
	entries[0].Length = 999

	assert.Equal(t, 10, list.Entries()[0].Length)
}

func TestParseEntries(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := ParseEntries("1200x4, 800X2 ,350,, 90 x 3")
		require.NoError(t, err)
		assert.Equal(t, []Entry{
			{Length: 1200, Quantity: 4},
			{Length: 800, Quantity: 2},
			{Length: 350, Quantity: 1},
			{Length: 90, Quantity: 3},
		}, got)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseEntries(" , ")
		assert.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("invalid", func(t *testing.T) {
		for _, raw := range []string{"abc", "100xa", "0x2", "100x0", "-5"} {
			_, err := ParseEntries(raw)
			assert.Error(t, err, raw)
		}
	})
}

func TestEntryString(t *testing.T) {
	assert.Equal(t, "1200x4", Entry{Length: 1200, Quantity: 4}.String())
	assert.Equal(t, "rail 1200x4", Entry{Label: "rail", Length: 1200, Quantity: 4}.String())
}
