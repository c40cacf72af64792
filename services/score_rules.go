package services

import (
	"fmt"
	"time"

	"github.com/courtside/badminton-scoring/models"
	"github.com/courtside/badminton-scoring/scoring"
)

// The apply* functions hold the scoring rules proper. They mutate the match
// in memory and never touch storage, which keeps them directly testable; the
// service wraps each one in a locked read-modify-write.

func applyStart(m *models.Match, now time.Time) error {
	if m.Started() {
		return ErrMatchAlreadyStarted
	}
	start := now
	m.Time.Start = &start
	m.Statuses.Current = models.MatchStatusCurrent
	m.Statuses.Active = true
	m.Statuses.Focus = now.UnixMilli()
	return nil
}

func applyScore(m *models.Match, player string, now time.Time) error {
	set, err := playableSet(m)
	if err != nil {
		return err
	}
	doubles := m.Details.Category.IsDoubles()
	if !scoring.ValidPlayer(player, doubles) {
		return ErrInvalidPlayer
	}

	prev := set.LastRound()
	if prev.NextServe == "" {
		return ErrServiceNotSelected
	}
	// Only the current server or the designated next server can win a rally
	// point under rally scoring.
	if player != prev.ToServe && player != prev.NextServe {
		return ErrPlayerNotEligible
	}

	team := scoring.TeamOf(player)
	newA, newB := set.AScore, set.BScore
	teamScore := 0
	if team == scoring.TeamA {
		newA++
		teamScore = newA
	} else {
		newB++
		teamScore = newB
	}

	round := models.Round{
		TeamScored:    team,
		ScoredAt:      now,
		CurrentAScore: newA,
		CurrentBScore: newB,
		Scorer:        player,
		ToServe:       player,
		NextServe:     scoring.NextServe(prev.NextServe, player, prev.ToServe, doubles),
		ASwitch:       prev.ASwitch,
		BSwitch:       prev.BSwitch,
	}
	// Only the scoring team's court position can change; the court position
	// is derived from the sheet as it stood before this rally.
	if team == scoring.TeamA {
		round.ASwitch = scoring.TeamPosition(teamScore, player, set.Scoresheet)
	} else {
		round.BSwitch = scoring.TeamPosition(teamScore, player, set.Scoresheet)
	}

	set.Scoresheet = append(set.Scoresheet, round)
	set.CurrentRound++
	set.AScore = newA
	set.BScore = newB
	set.LastTeamScored = team
	set.Winner = scoring.DetectWinner(newA, newB, m.Details.MaxScore, m.Details.PlusTwoRule, m.Details.PlusTwoScore)
	m.Statuses.Focus = now.UnixMilli()
	return nil
}

func applyUndo(m *models.Match, now time.Time) error {
	if !m.Started() {
		return ErrMatchNotStarted
	}
	set, err := m.PlayingSet()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if set.AScore == 0 && set.BScore == 0 {
		return ErrNothingToUndo
	}

	last := set.Scoresheet[len(set.Scoresheet)-1]
	set.Scoresheet = set.Scoresheet[:len(set.Scoresheet)-1]
	set.CurrentRound--
	if last.TeamScored == scoring.TeamA {
		set.AScore--
	} else {
		set.BScore--
	}
	// Index 0 is the placeholder, so a single remaining entry means 0-0.
	if len(set.Scoresheet) > 1 {
		set.LastTeamScored = set.LastRound().TeamScored
	} else {
		set.LastTeamScored = ""
	}
	// Undo past a set point reopens the set.
	set.Winner = ""
	m.Statuses.Focus = now.UnixMilli()
	return nil
}

func applySelectInitialServer(m *models.Match, player string, now time.Time) error {
	set, err := playableSet(m)
	if err != nil {
		return err
	}
	if set.AScore != 0 || set.BScore != 0 || len(set.Scoresheet) > 1 {
		return ErrSetAlreadyInPlay
	}
	if !scoring.ValidPlayer(player, m.Details.Category.IsDoubles()) {
		return ErrInvalidPlayer
	}

	ph := set.Placeholder()
	if ph.ToServe != "" {
		return ErrServerAlreadySelected
	}
	ph.ToServe = player
	if scoring.TeamOf(player) == scoring.TeamA {
		ph.ASwitch = scoring.TeamPosition(0, player, set.Scoresheet)
	} else {
		ph.BSwitch = scoring.TeamPosition(0, player, set.Scoresheet)
	}
	m.Statuses.Focus = now.UnixMilli()
	return nil
}

func applySelectInitialReceiver(m *models.Match, player string, now time.Time) error {
	set, err := playableSet(m)
	if err != nil {
		return err
	}
	if set.AScore != 0 || set.BScore != 0 || len(set.Scoresheet) > 1 {
		return ErrSetAlreadyInPlay
	}
	doubles := m.Details.Category.IsDoubles()
	if !scoring.ValidPlayer(player, doubles) {
		return ErrInvalidPlayer
	}

	ph := set.Placeholder()
	if ph.ToServe == "" {
		return ErrServerNotSelected
	}
	if ph.NextServe != "" {
		return ErrReceiverAlreadyChosen
	}
	if scoring.TeamOf(player) == scoring.TeamOf(ph.ToServe) {
		return ErrReceiverOnServingTeam
	}

	// The receiver stands in the right service court; in doubles their
	// partner is the one who would serve if the receiving side wins the
	// opening rally.
	next := player
	if doubles {
		next = scoring.Partner(player)
	}
	ph.NextServe = next
	if scoring.TeamOf(player) == scoring.TeamA {
		ph.ASwitch = scoring.TeamPosition(0, player, set.Scoresheet)
	} else {
		ph.BSwitch = scoring.TeamPosition(0, player, set.Scoresheet)
	}
	m.Statuses.Focus = now.UnixMilli()
	return nil
}

func applyChangeSet(m *models.Match, n int) error {
	if !m.Started() {
		return ErrMatchNotStarted
	}
	if n < 1 || n > m.Details.NoOfSets {
		return ErrSetUnreachable
	}

	wonA := scoring.SetsWon(m.Sets, scoring.TeamA)
	wonB := scoring.SetsWon(m.Sets, scoring.TeamB)
	reachable := wonA + wonB
	if scoring.MatchWinner(m.Details.NoOfSets, m.Sets) == "" {
		reachable++
	}
	if n > reachable {
		return ErrSetUnreachable
	}

	if _, ok := m.Sets[models.SetKey(n)]; !ok {
		m.Sets[models.SetKey(n)] = models.NewSet()
	}
	m.Details.PlayingSet = n
	return nil
}

func applyForceWin(m *models.Match, team string, now time.Time) error {
	if !m.Started() {
		return ErrMatchNotStarted
	}
	if !scoring.ValidTeam(team) {
		return ErrInvalidTeam
	}
	set, err := m.PlayingSet()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	// Awards the set as-is; the scores stay whatever they were.
	set.Winner = team
	m.Statuses.Focus = now.UnixMilli()
	return nil
}

func applyReset(m *models.Match, now time.Time) error {
	if !m.Started() {
		return ErrMatchNotStarted
	}
	if _, err := m.PlayingSet(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	m.Sets[models.SetKey(m.Details.PlayingSet)] = models.NewSet()
	m.Statuses.Focus = now.UnixMilli()
	return nil
}

func applySwitchSide(m *models.Match, now time.Time) error {
	if !m.Started() {
		return ErrMatchNotStarted
	}
	set, err := m.PlayingSet()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	set.Switch = !set.Switch
	m.Statuses.Focus = now.UnixMilli()
	return nil
}

func applyAdjustShuttles(m *models.Match, delta int) error {
	if !m.Started() {
		return ErrMatchNotStarted
	}
	if m.Details.ShuttlesUsed+delta < 0 {
		return ErrShuttleCountNegative
	}
	m.Details.ShuttlesUsed += delta
	return nil
}

func applyFinish(m *models.Match, now time.Time) error {
	if !m.Started() {
		return ErrMatchNotStarted
	}
	if m.Finished() {
		return ErrMatchAlreadyFinished
	}
	winner := scoring.MatchWinner(m.Details.NoOfSets, m.Sets)
	if winner == "" {
		return ErrMatchNotDecided
	}

	end := now
	m.Details.GameWinner = winner
	m.Statuses.Current = models.MatchStatusFinished
	m.Statuses.Focus = now.UnixMilli()
	m.Time.End = &end
	return nil
}

// playableSet gates every rally-level action: the match must be live and the
// selected set must not be decided yet.
func playableSet(m *models.Match) (*models.Set, error) {
	if !m.Started() {
		return nil, ErrMatchNotStarted
	}
	if m.Finished() {
		return nil, ErrMatchAlreadyFinished
	}
	set, err := m.PlayingSet()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if set.Winner != "" {
		return nil, ErrSetAlreadyWon
	}
	return set, nil
}
