package scoring

import "github.com/courtside/badminton-scoring/models"

// DetectWinner evaluates a set's score against the configured winning score.
// Without the plus-two rule the first side at winningScore wins outright.
// With it, a side wins by reaching the hard cap exactly, or by reaching at
// least winningScore with a lead of two. Returns "a", "b" or "".
func DetectWinner(aScore, bScore, winningScore int, plusTwoRule bool, plusTwoScore int) string {
	if plusTwoRule {
		if aScore == plusTwoScore || (aScore >= winningScore && aScore-bScore >= 2) {
			return TeamA
		}
		if bScore == plusTwoScore || (bScore >= winningScore && bScore-aScore >= 2) {
			return TeamB
		}
		return ""
	}
	if aScore >= winningScore {
		return TeamA
	}
	if bScore >= winningScore {
		return TeamB
	}
	return ""
}

// SetsWon counts completed sets won by the given side.
func SetsWon(sets map[string]*models.Set, side string) int {
	won := 0
	for _, set := range sets {
		if set != nil && set.Winner == side {
			won++
		}
	}
	return won
}

// MatchWinner decides the match from completed sets only: first side holding
// the best-of-N majority. Empty while undecided.
func MatchWinner(noOfSets int, sets map[string]*models.Set) string {
	majority := noOfSets/2 + 1
	if SetsWon(sets, TeamA) >= majority {
		return TeamA
	}
	if SetsWon(sets, TeamB) >= majority {
		return TeamB
	}
	return ""
}
