package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeamOf(t *testing.T) {
	assert.Equal(t, "a", TeamOf("a1"))
	assert.Equal(t, "a", TeamOf("a2"))
	assert.Equal(t, "b", TeamOf("b1"))
	assert.Equal(t, "", TeamOf(""))
}

func TestPartner(t *testing.T) {
	assert.Equal(t, "a2", Partner("a1"))
	assert.Equal(t, "a1", Partner("a2"))
	assert.Equal(t, "b2", Partner("b1"))
	assert.Equal(t, "b1", Partner("b2"))
	assert.Equal(t, "", Partner("c1"))
}

func TestValidPlayer(t *testing.T) {
	assert.True(t, ValidPlayer("a1", false))
	assert.True(t, ValidPlayer("b1", false))
	assert.False(t, ValidPlayer("a2", false))
	assert.False(t, ValidPlayer("b2", false))

	assert.True(t, ValidPlayer("a2", true))
	assert.True(t, ValidPlayer("b2", true))
	assert.False(t, ValidPlayer("c1", true))
	assert.False(t, ValidPlayer("", true))
}

func TestValidTeam(t *testing.T) {
	assert.True(t, ValidTeam("a"))
	assert.True(t, ValidTeam("b"))
	assert.False(t, ValidTeam("a1"))
	assert.False(t, ValidTeam(""))
}
