package responsive

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestTraversal_Order(t *testing.T) {
	tests := []struct {
		name    string
		start   Start
		dir     Direction
		max     int
		order   []int
		inverse []int
	}{
		{"last rtl", Start{Kind: StartLast}, RTL, 5, []int{4, 3, 2, 1, 0}, []int{0, 1, 2, 3, 4}},
		{"first ltr", Start{Kind: StartFirst}, LTR, 5, []int{0, 1, 2, 3, 4}, []int{4, 3, 2, 1, 0}},
		{"first rtl", Start{Kind: StartFirst}, RTL, 5, []int{0}, []int{4}},
		{"last ltr", Start{Kind: StartLast}, LTR, 5, []int{4}, []int{0}},
		{"index ltr", Start{Kind: StartIndex, Index: 2}, LTR, 5, []int{2, 3, 4}, []int{3, 2, 1, 0}},
		{"index rtl", Start{Kind: StartIndex, Index: 1}, RTL, 5, []int{1, 0}, []int{4}},
		{"index zero falls back to last", Start{Kind: StartIndex, Index: 0}, RTL, 5, []int{4, 3, 2, 1, 0}, []int{0, 1, 2, 3, 4}},
		{"index past end falls back to last", Start{Kind: StartIndex, Index: 7}, RTL, 5, []int{4, 3, 2, 1, 0}, []int{0, 1, 2, 3, 4}},
		{"single column", Start{Kind: StartLast}, RTL, 1, []int{0}, []int{0}},
		{"no columns", Start{Kind: StartLast}, RTL, 0, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTraversal(tt.start, tt.dir, tt.max)
			if diff := cmp.Diff(tt.order, tr.Order(false)); diff != "" {
				t.Errorf("collapse order (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.inverse, tr.Order(true)); diff != "" {
				t.Errorf("expand order (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTraversal_Next(t *testing.T) {
	tr := NewTraversal(Start{Kind: StartLast}, RTL, 3)
	assert.Equal(t, 2, tr.Initial(false))
	assert.Equal(t, 1, tr.Next(2, false))
	assert.Equal(t, NoColumn, tr.Next(0, false))
	assert.Equal(t, NoColumn, tr.Next(2, true))
	assert.Equal(t, 1, tr.Next(0, true))
	assert.Equal(t, NoColumn, NewTraversal(Start{}, RTL, 0).Initial(true))
}
