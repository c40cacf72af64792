package scoring

import "github.com/courtside/badminton-scoring/models"

// TeamPosition computes a team's switch flag (are its two players standing in
// swapped left/right courts) after the scorer's team reaches teamScore. The
// sheet must not yet contain the round being recorded; its last entry is the
// previous state.
//
// teamScore 0 is the initial server/receiver selection: player 1 keeps the
// canonical positions, player 2 starting means the pair is swapped. teamScore
// 1 (the team's first point) inverts that mapping. From 2 on, the flag carries
// forward when the other team scored last and flips when the same team is
// continuing to serve, because a serving pair alternates service courts.
func TeamPosition(teamScore int, scorer string, sheet []models.Round) bool {
	switch teamScore {
	case 0:
		return scorer[1] == '2'
	case 1:
		return scorer[1] == '1'
	default:
		last := sheet[len(sheet)-1]
		team := TeamOf(scorer)
		prev := last.ASwitch
		if team == TeamB {
			prev = last.BSwitch
		}
		if last.TeamScored != team {
			return prev
		}
		return !prev
	}
}
