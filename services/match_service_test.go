package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/badminton-scoring/models"
)

func TestApplyDetailsUpdate(t *testing.T) {
	match := newTestMatch(t, "mens.singles")

	updated := match.Details
	updated.Court = "Court 5"
	updated.GroupNo = "B"
	require.NoError(t, applyDetailsUpdate(match, updated))
	assert.Equal(t, "Court 5", match.Details.Court)
	assert.Equal(t, "B", match.Details.GroupNo)
}

func TestApplyDetailsUpdateProtectsDerivedFields(t *testing.T) {
	match := newTestMatch(t, "mens.singles")
	require.NoError(t, applyStart(match, time.Now()))
	require.NoError(t, applyAdjustShuttles(match, 3))

	updated := match.Details
	updated.ShuttlesUsed = 0
	updated.GameWinner = "b"
	updated.PlayingSet = 3
	require.NoError(t, applyDetailsUpdate(match, updated))

	assert.Equal(t, 3, match.Details.ShuttlesUsed)
	assert.Equal(t, "", match.Details.GameWinner)
	assert.Equal(t, 1, match.Details.PlayingSet)
}

func TestApplyDetailsUpdateLocksConfigAfterStart(t *testing.T) {
	match := newTestMatch(t, "mens.singles")
	require.NoError(t, applyStart(match, time.Now()))

	updated := match.Details
	updated.MaxScore = 15
	assert.ErrorIs(t, applyDetailsUpdate(match, updated), ErrMatchAlreadyStarted)

	updated = match.Details
	updated.Category = "mens.doubles"
	assert.ErrorIs(t, applyDetailsUpdate(match, updated), ErrMatchAlreadyStarted)
}

func TestApplyDetailsUpdateMaterializesNewSets(t *testing.T) {
	details := models.Details{
		GameNo:       "M-2",
		Category:     "womens.singles",
		NoOfSets:     1,
		MaxScore:     21,
		PlusTwoRule:  true,
		PlusTwoScore: 30,
	}
	match, err := models.NewMatch(details, models.Players{}, models.Officials{}, nil)
	require.NoError(t, err)
	require.Len(t, match.Sets, 1)

	updated := match.Details
	updated.NoOfSets = 3
	require.NoError(t, applyDetailsUpdate(match, updated))
	assert.Len(t, match.Sets, 3)
}

func TestApplyDetailsUpdateValidates(t *testing.T) {
	match := newTestMatch(t, "mens.singles")

	updated := match.Details
	updated.NoOfSets = 2
	assert.ErrorIs(t, applyDetailsUpdate(match, updated), ErrValidationFailed)
}
