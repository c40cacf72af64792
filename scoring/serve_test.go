package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextServe(t *testing.T) {
	tests := []struct {
		name          string
		prevNextServe string
		scorer        string
		prevToServe   string
		doubles       bool
		want          string
	}{
		{"no server selected yet", "", "a1", "", true, ""},
		{"serving side scores again, queue carries", "b2", "a1", "a1", true, "b2"},
		{"doubles handover queues the server's partner", "a2", "b2", "a1", true, "a2"},
		{"doubles handover from b to a", "b1", "a1", "b2", true, "b1"},
		{"singles handover returns to the server", "b1", "b1", "a1", false, "a1"},
		{"singles server scores again", "b1", "a1", "a1", false, "b1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextServe(tt.prevNextServe, tt.scorer, tt.prevToServe, tt.doubles)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextServeDoublesHandoverSwapsPartner(t *testing.T) {
	// a1 was serving; b wins the rally, so service will come back to the a
	// pair through a1's partner.
	assert.Equal(t, "a2", NextServe("whatever", "b1", "a1", true))
	assert.Equal(t, "b1", NextServe("whatever", "a2", "b2", true))
}
