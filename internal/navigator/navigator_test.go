package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance(t *testing.T) {
	tests := []struct {
		name                  string
		current, delta, count int
		want                  int
	}{
		{"wrap backwards", 0, -1, 5, 4},
		{"wrap forwards", 4, +1, 5, 0},
		{"step forwards", 2, +1, 5, 3},
		{"large negative delta", 1, -12, 5, 4},
		{"large positive delta", 3, 11, 5, 4},
		{"single item", 0, +1, 1, 0},
		{"no items", 3, +1, 0, 3},
		{"negative count", 2, -1, -4, 2},
		{"out of range current", 7, 0, 5, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Advance(tt.current, tt.delta, tt.count))
		})
	}
}

func TestAdvanceStaysInRange(t *testing.T) {
	for count := 1; count <= 7; count++ {
		for cur := 0; cur < count; cur++ {
			for delta := -20; delta <= 20; delta++ {
				got := Advance(cur, delta, count)
				require.GreaterOrEqual(t, got, 0)
				require.Less(t, got, count)
			}
		}
	}
}

func TestShowControls(t *testing.T) {
	assert.False(t, ShowControls(0))
	assert.False(t, ShowControls(1))
	assert.True(t, ShowControls(2))
}

func TestNavigator_Cycles(t *testing.T) {
	p := NewSlice("f(int)", "f(string)", "f(int, int)")
	n := New(p)

	n.Previous()
	got, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, "f(int, int)", got)

	n.Next()
	assert.Equal(t, 0, p.SelectedIndex())

	n.Next()
	n.Next()
	assert.Equal(t, 2, p.SelectedIndex())
}

func TestNavigator_NoOps(t *testing.T) {
	var n Navigator
	n.Next() // nil provider

	empty := NewSlice[string]()
	New(empty).Previous()
	assert.Equal(t, 0, empty.SelectedIndex())
	_, ok := empty.Selected()
	assert.False(t, ok)
}

func TestSlice_IgnoresOutOfRange(t *testing.T) {
	p := NewSlice(1, 2, 3)
	p.SetSelectedIndex(5)
	assert.Equal(t, 0, p.SelectedIndex())
	p.SetSelectedIndex(-1)
	assert.Equal(t, 0, p.SelectedIndex())
	p.SetSelectedIndex(2)
	assert.Equal(t, 2, p.SelectedIndex())
}
