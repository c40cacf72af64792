package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/badminton-scoring/models"
)

func newTestMatch(t *testing.T, category models.Category) *models.Match {
	t.Helper()
	details := models.Details{
		GameNo:       "M-17",
		Court:        "Court 2",
		Category:     category,
		NoOfSets:     3,
		MaxScore:     21,
		PlusTwoRule:  true,
		PlusTwoScore: 30,
	}
	match, err := models.NewMatch(details, models.Players{}, models.Officials{}, nil)
	require.NoError(t, err)
	match.ID = 17
	return match
}

func startedMatch(t *testing.T, category models.Category) *models.Match {
	t.Helper()
	match := newTestMatch(t, category)
	require.NoError(t, applyStart(match, time.Now()))
	return match
}

// setUpService walks the normal pre-play flow: server then receiver.
func setUpService(t *testing.T, match *models.Match, server, receiver string) {
	t.Helper()
	require.NoError(t, applySelectInitialServer(match, server, time.Now()))
	require.NoError(t, applySelectInitialReceiver(match, receiver, time.Now()))
}

func TestApplyStart(t *testing.T) {
	match := newTestMatch(t, "mens.doubles")
	now := time.Now()

	require.NoError(t, applyStart(match, now))
	assert.True(t, match.Started())
	assert.True(t, match.Statuses.Active)
	assert.Equal(t, models.MatchStatusCurrent, match.Statuses.Current)
	assert.Equal(t, now.UnixMilli(), match.Statuses.Focus)

	assert.ErrorIs(t, applyStart(match, now), ErrMatchAlreadyStarted)
}

func TestServiceSelectionDoubles(t *testing.T) {
	match := startedMatch(t, "mens.doubles")

	require.NoError(t, applySelectInitialServer(match, "a1", time.Now()))
	set := match.Sets["set_1"]
	ph := set.Placeholder()
	assert.Equal(t, "a1", ph.ToServe)
	assert.False(t, ph.ASwitch)
	assert.True(t, ph.BSwitch)

	assert.ErrorIs(t, applySelectInitialServer(match, "b1", time.Now()), ErrServerAlreadySelected)

	// The receiver's partner is queued to serve if the receiving side wins
	// the opening rally.
	require.NoError(t, applySelectInitialReceiver(match, "b1", time.Now()))
	assert.Equal(t, "b2", ph.NextServe)
	assert.False(t, ph.BSwitch)

	assert.ErrorIs(t, applySelectInitialReceiver(match, "b2", time.Now()), ErrReceiverAlreadyChosen)
}

func TestServiceSelectionSingles(t *testing.T) {
	match := startedMatch(t, "womens.singles")

	assert.ErrorIs(t, applySelectInitialServer(match, "a2", time.Now()), ErrInvalidPlayer)
	assert.ErrorIs(t, applySelectInitialReceiver(match, "b1", time.Now()), ErrServerNotSelected)

	require.NoError(t, applySelectInitialServer(match, "a1", time.Now()))
	assert.ErrorIs(t, applySelectInitialReceiver(match, "a1", time.Now()), ErrReceiverOnServingTeam)

	require.NoError(t, applySelectInitialReceiver(match, "b1", time.Now()))
	assert.Equal(t, "b1", match.Sets["set_1"].Placeholder().NextServe)
}

func TestServiceSelectionRejectedMidSet(t *testing.T) {
	match := startedMatch(t, "mens.doubles")
	setUpService(t, match, "a1", "b1")
	require.NoError(t, applyScore(match, "a1", time.Now()))

	assert.ErrorIs(t, applySelectInitialServer(match, "b1", time.Now()), ErrSetAlreadyInPlay)
	assert.ErrorIs(t, applySelectInitialReceiver(match, "b1", time.Now()), ErrSetAlreadyInPlay)
}

func TestApplyScoreDoublesOpening(t *testing.T) {
	match := startedMatch(t, "mens.doubles")

	assert.ErrorIs(t, applyScore(match, "a1", time.Now()), ErrServiceNotSelected)

	setUpService(t, match, "a1", "b1")
	set := match.Sets["set_1"]

	// Serving side wins the opening rally: a1 keeps serving, b2 stays queued.
	require.NoError(t, applyScore(match, "a1", time.Now()))
	assert.Equal(t, 1, set.AScore)
	assert.Equal(t, 0, set.BScore)
	assert.Equal(t, 2, set.CurrentRound)
	assert.Equal(t, "a", set.LastTeamScored)

	round := set.LastRound()
	assert.Equal(t, "a1", round.ToServe)
	assert.Equal(t, "b2", round.NextServe)
	assert.True(t, round.ASwitch)
	assert.False(t, round.BSwitch)

	// Receiving side takes the next rally through the queued slot; service
	// will come back to the a pair via a1's partner.
	require.NoError(t, applyScore(match, "b2", time.Now()))
	round = set.LastRound()
	assert.Equal(t, 1, set.BScore)
	assert.Equal(t, "b2", round.ToServe)
	assert.Equal(t, "a2", round.NextServe)
	assert.False(t, round.BSwitch)

	// Neither serving nor queued.
	assert.ErrorIs(t, applyScore(match, "b1", time.Now()), ErrPlayerNotEligible)
}

func TestApplyScoreSinglesRejectsDoublesSlots(t *testing.T) {
	match := startedMatch(t, "mens.singles")
	setUpService(t, match, "a1", "b1")

	assert.ErrorIs(t, applyScore(match, "a2", time.Now()), ErrInvalidPlayer)
	require.NoError(t, applyScore(match, "b1", time.Now()))
	assert.Equal(t, "a1", match.Sets["set_1"].LastRound().NextServe)
}

func TestApplyScoreDeuceAndSetPoint(t *testing.T) {
	match := startedMatch(t, "mens.doubles")
	setUpService(t, match, "a1", "b1")
	set := match.Sets["set_1"]

	// Fast-forward to 20-20 with b serving.
	set.AScore, set.BScore = 20, 20
	set.Scoresheet = append(set.Scoresheet, models.Round{
		TeamScored: "b", CurrentAScore: 20, CurrentBScore: 20,
		Scorer: "b1", ToServe: "b1", NextServe: "a1",
	})
	set.CurrentRound = len(set.Scoresheet)

	require.NoError(t, applyScore(match, "b1", time.Now()))
	assert.Equal(t, "", set.Winner, "one point lead at deuce does not close the set")

	require.NoError(t, applyScore(match, "b1", time.Now()))
	assert.Equal(t, "b", set.Winner)
	assert.Equal(t, 22, set.BScore)

	assert.ErrorIs(t, applyScore(match, "b1", time.Now()), ErrSetAlreadyWon)
}

func TestApplyUndo(t *testing.T) {
	match := startedMatch(t, "mens.doubles")
	setUpService(t, match, "a1", "b1")
	set := match.Sets["set_1"]

	assert.ErrorIs(t, applyUndo(match, time.Now()), ErrNothingToUndo)

	require.NoError(t, applyScore(match, "a1", time.Now()))
	require.NoError(t, applyScore(match, "b2", time.Now()))

	before := len(set.Scoresheet)
	require.NoError(t, applyUndo(match, time.Now()))
	assert.Equal(t, before-1, len(set.Scoresheet))
	assert.Equal(t, 1, set.AScore)
	assert.Equal(t, 0, set.BScore)
	assert.Equal(t, "a", set.LastTeamScored)

	require.NoError(t, applyUndo(match, time.Now()))
	assert.Equal(t, 0, set.AScore)
	assert.Equal(t, "", set.LastTeamScored)
	assert.Equal(t, 1, set.CurrentRound)
}

func TestApplyUndoReopensWonSet(t *testing.T) {
	match := startedMatch(t, "mens.doubles")
	setUpService(t, match, "a1", "b1")
	set := match.Sets["set_1"]

	set.AScore, set.BScore = 20, 19
	set.Scoresheet = append(set.Scoresheet, models.Round{
		TeamScored: "a", CurrentAScore: 20, CurrentBScore: 19,
		Scorer: "a1", ToServe: "a1", NextServe: "b1",
	})
	set.CurrentRound = len(set.Scoresheet)

	require.NoError(t, applyScore(match, "a1", time.Now()))
	require.Equal(t, "a", set.Winner)

	require.NoError(t, applyUndo(match, time.Now()))
	assert.Equal(t, "", set.Winner)
	assert.Equal(t, 20, set.AScore)
}

func TestApplyChangeSet(t *testing.T) {
	match := startedMatch(t, "mens.doubles")

	// Set 2 is not reachable while set 1 is still open.
	assert.ErrorIs(t, applyChangeSet(match, 2), ErrSetUnreachable)
	assert.ErrorIs(t, applyChangeSet(match, 0), ErrSetUnreachable)
	assert.ErrorIs(t, applyChangeSet(match, 4), ErrSetUnreachable)

	require.NoError(t, applyForceWin(match, "a", time.Now()))
	require.NoError(t, applyChangeSet(match, 2))
	assert.Equal(t, 2, match.Details.PlayingSet)
	require.NotNil(t, match.Sets["set_2"])

	// One set each keeps the decider reachable.
	require.NoError(t, applyForceWin(match, "b", time.Now()))
	require.NoError(t, applyChangeSet(match, 3))
	assert.Equal(t, 3, match.Details.PlayingSet)

	// Moving back to a finished set is always allowed.
	require.NoError(t, applyChangeSet(match, 1))
	assert.Equal(t, 1, match.Details.PlayingSet)
}

func TestApplyChangeSetBlockedOnceDecided(t *testing.T) {
	match := startedMatch(t, "mens.doubles")

	require.NoError(t, applyForceWin(match, "a", time.Now()))
	require.NoError(t, applyChangeSet(match, 2))
	require.NoError(t, applyForceWin(match, "a", time.Now()))

	// Two sets to a: the decider never happens.
	assert.ErrorIs(t, applyChangeSet(match, 3), ErrSetUnreachable)
}

func TestApplyForceWin(t *testing.T) {
	match := startedMatch(t, "mens.doubles")

	assert.ErrorIs(t, applyForceWin(match, "x", time.Now()), ErrInvalidTeam)

	require.NoError(t, applyForceWin(match, "b", time.Now()))
	set := match.Sets["set_1"]
	assert.Equal(t, "b", set.Winner)
	assert.Equal(t, 0, set.AScore)
	assert.Equal(t, 0, set.BScore)
}

func TestApplyReset(t *testing.T) {
	match := startedMatch(t, "mens.doubles")
	setUpService(t, match, "a1", "b1")
	require.NoError(t, applyScore(match, "a1", time.Now()))
	require.NoError(t, applyScore(match, "a1", time.Now()))

	require.NoError(t, applyReset(match, time.Now()))
	set := match.Sets["set_1"]
	assert.Equal(t, 0, set.AScore)
	assert.Equal(t, 1, set.CurrentRound)
	assert.Len(t, set.Scoresheet, 1)
	assert.Equal(t, "", set.Placeholder().ToServe)
}

func TestApplySwitchSide(t *testing.T) {
	match := startedMatch(t, "mens.doubles")
	set := match.Sets["set_1"]

	require.NoError(t, applySwitchSide(match, time.Now()))
	assert.True(t, set.Switch)
	require.NoError(t, applySwitchSide(match, time.Now()))
	assert.False(t, set.Switch)
}

func TestApplyAdjustShuttles(t *testing.T) {
	match := newTestMatch(t, "mens.doubles")
	assert.ErrorIs(t, applyAdjustShuttles(match, 1), ErrMatchNotStarted)

	require.NoError(t, applyStart(match, time.Now()))
	require.NoError(t, applyAdjustShuttles(match, 2))
	assert.Equal(t, 2, match.Details.ShuttlesUsed)

	require.NoError(t, applyAdjustShuttles(match, -1))
	assert.Equal(t, 1, match.Details.ShuttlesUsed)

	assert.ErrorIs(t, applyAdjustShuttles(match, -2), ErrShuttleCountNegative)
	assert.Equal(t, 1, match.Details.ShuttlesUsed)
}

func TestApplyFinish(t *testing.T) {
	match := newTestMatch(t, "mens.doubles")
	assert.ErrorIs(t, applyFinish(match, time.Now()), ErrMatchNotStarted)

	require.NoError(t, applyStart(match, time.Now()))
	assert.ErrorIs(t, applyFinish(match, time.Now()), ErrMatchNotDecided)

	require.NoError(t, applyForceWin(match, "a", time.Now()))
	require.NoError(t, applyChangeSet(match, 2))
	require.NoError(t, applyForceWin(match, "a", time.Now()))

	now := time.Now()
	require.NoError(t, applyFinish(match, now))
	assert.Equal(t, "a", match.Details.GameWinner)
	assert.Equal(t, models.MatchStatusFinished, match.Statuses.Current)
	assert.True(t, match.Finished())
	assert.Equal(t, now.UnixMilli(), match.Statuses.Focus)

	assert.ErrorIs(t, applyFinish(match, time.Now()), ErrMatchAlreadyFinished)
}

func TestScoringBlockedBeforeStartAndAfterFinish(t *testing.T) {
	match := newTestMatch(t, "mens.doubles")
	assert.ErrorIs(t, applyScore(match, "a1", time.Now()), ErrMatchNotStarted)
	assert.ErrorIs(t, applySelectInitialServer(match, "a1", time.Now()), ErrMatchNotStarted)

	require.NoError(t, applyStart(match, time.Now()))
	require.NoError(t, applyForceWin(match, "a", time.Now()))
	require.NoError(t, applyChangeSet(match, 2))
	require.NoError(t, applyForceWin(match, "a", time.Now()))
	require.NoError(t, applyFinish(match, time.Now()))

	assert.ErrorIs(t, applyScore(match, "a1", time.Now()), ErrMatchAlreadyFinished)
}
