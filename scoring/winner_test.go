package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/courtside/badminton-scoring/models"
)

func TestDetectWinner(t *testing.T) {
	tests := []struct {
		name         string
		aScore       int
		bScore       int
		winningScore int
		plusTwoRule  bool
		plusTwoScore int
		want         string
	}{
		{"no winner early", 10, 8, 21, true, 30, ""},
		{"straight winner without deuce rule", 20, 21, 21, false, 0, "b"},
		{"deuce holds at one point lead", 20, 21, 21, true, 30, ""},
		{"level at winning score stays open", 21, 21, 21, true, 30, ""},
		{"two point lead closes the set", 21, 19, 21, true, 30, "a"},
		{"two point lead past winning score", 23, 21, 21, true, 30, "a"},
		{"hard cap decides b", 29, 30, 21, true, 30, "b"},
		{"hard cap decides a", 30, 29, 21, true, 30, "a"},
		{"without deuce rule first to score wins", 21, 20, 21, false, 0, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectWinner(tt.aScore, tt.bScore, tt.winningScore, tt.plusTwoRule, tt.plusTwoScore)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetsWon(t *testing.T) {
	sets := map[string]*models.Set{
		"set_1": {Winner: "a"},
		"set_2": {Winner: "b"},
		"set_3": {Winner: "a"},
	}
	assert.Equal(t, 2, SetsWon(sets, TeamA))
	assert.Equal(t, 1, SetsWon(sets, TeamB))
	assert.Equal(t, 0, SetsWon(map[string]*models.Set{"set_1": {}}, TeamA))
}

func TestMatchWinner(t *testing.T) {
	t.Run("best of three needs two sets", func(t *testing.T) {
		sets := map[string]*models.Set{
			"set_1": {Winner: "a"},
			"set_2": {},
		}
		assert.Equal(t, "", MatchWinner(3, sets))

		sets["set_2"].Winner = "a"
		assert.Equal(t, "a", MatchWinner(3, sets))
	})

	t.Run("single set decides immediately", func(t *testing.T) {
		sets := map[string]*models.Set{"set_1": {Winner: "b"}}
		assert.Equal(t, "b", MatchWinner(1, sets))
	})

	t.Run("split sets stay undecided", func(t *testing.T) {
		sets := map[string]*models.Set{
			"set_1": {Winner: "a"},
			"set_2": {Winner: "b"},
			"set_3": {},
		}
		assert.Equal(t, "", MatchWinner(3, sets))
	})
}
