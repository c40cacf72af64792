package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() Details {
	return Details{
		GameNo:       "M-1",
		Court:        "Court 1",
		Category:     "mens.doubles",
		NoOfSets:     3,
		MaxScore:     21,
		PlusTwoRule:  true,
		PlusTwoScore: 30,
	}
}

func TestDetailsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Details)
		wantErr error
	}{
		{"valid", func(d *Details) {}, nil},
		{"two sets not allowed", func(d *Details) { d.NoOfSets = 2 }, ErrInvalidNumberOfSets},
		{"zero winning score", func(d *Details) { d.MaxScore = 0 }, ErrInvalidWinningScore},
		{"deuce cap below winning score", func(d *Details) { d.PlusTwoScore = 20 }, ErrInvalidDeuceCap},
		{"cap ignored without deuce rule", func(d *Details) { d.PlusTwoRule = false; d.PlusTwoScore = 0 }, nil},
		{"playing set out of range", func(d *Details) { d.PlayingSet = 4 }, ErrInvalidPlayingSet},
		{"bad category", func(d *Details) { d.Category = "doubles" }, ErrInvalidCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails()
			d.PlayingSet = 1
			tt.mutate(&d)
			err := d.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCategory(t *testing.T) {
	assert.True(t, Category("mens.doubles").IsDoubles())
	assert.True(t, Category("mixed.doubles").IsDoubles())
	assert.False(t, Category("womens.singles").IsDoubles())
	assert.False(t, Category("doubles").IsDoubles())

	assert.True(t, Category("womens.singles").Valid())
	assert.False(t, Category(".singles").Valid())
	assert.False(t, Category("mens.triples").Valid())
}

func TestPlayerDisplayName(t *testing.T) {
	p := Player{FirstName: "Lin", LastName: "Dan", Nickname: "Super Dan"}
	assert.Equal(t, "Lin Dan", p.DisplayName())

	p.UseNickname = true
	assert.Equal(t, "Super Dan", p.DisplayName())
}

func TestNewMatch(t *testing.T) {
	slot := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	match, err := NewMatch(validDetails(), Players{}, Officials{}, &slot)
	require.NoError(t, err)

	assert.Equal(t, 1, match.Details.PlayingSet)
	assert.Equal(t, MatchStatusUpcoming, match.Statuses.Current)
	assert.False(t, match.Statuses.Active)
	assert.NotZero(t, match.Statuses.Focus)
	assert.Equal(t, &slot, match.Time.Slot)
	assert.False(t, match.Started())
	assert.False(t, match.Finished())

	require.Len(t, match.Sets, 3)
	for i := 1; i <= 3; i++ {
		set, err := match.SetByNumber(i)
		require.NoError(t, err)
		assert.Equal(t, 1, set.CurrentRound)
		require.Len(t, set.Scoresheet, 1)
		assert.True(t, set.Placeholder().ASwitch)
		assert.True(t, set.Placeholder().BSwitch)
	}

	_, err = match.SetByNumber(4)
	assert.ErrorIs(t, err, ErrUnknownSet)
}

func TestNewMatchRejectsInvalidConfig(t *testing.T) {
	details := validDetails()
	details.NoOfSets = 5
	_, err := NewMatch(details, Players{}, Officials{}, nil)
	assert.ErrorIs(t, err, ErrInvalidNumberOfSets)
}

func TestNewMatchClearsDerivedFields(t *testing.T) {
	details := validDetails()
	details.GameWinner = "a"
	details.ShuttlesUsed = 4

	match, err := NewMatch(details, Players{}, Officials{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "", match.Details.GameWinner)
	assert.Equal(t, 0, match.Details.ShuttlesUsed)
}

func TestSetKey(t *testing.T) {
	assert.Equal(t, "set_1", SetKey(1))
	assert.Equal(t, "set_3", SetKey(3))
}
