package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type MatchStatus string

const (
	MatchStatusUpcoming MatchStatus = "upcoming"
	MatchStatusCurrent  MatchStatus = "current"
	MatchStatusForfeit  MatchStatus = "forfeit"
	MatchStatusNoMatch  MatchStatus = "no match"
	MatchStatusFinished MatchStatus = "finished"
)

var validMatchStatuses = map[MatchStatus]bool{
	MatchStatusUpcoming: true,
	MatchStatusCurrent:  true,
	MatchStatusForfeit:  true,
	MatchStatusNoMatch:  true,
	MatchStatusFinished: true,
}

func (s MatchStatus) Valid() bool { return validMatchStatuses[s] }

var (
	ErrInvalidNumberOfSets = errors.New("number of sets must be 1 or 3")
	ErrInvalidWinningScore = errors.New("winning score must be positive")
	ErrInvalidDeuceCap     = errors.New("deuce cap must not be below the winning score")
	ErrInvalidPlayingSet   = errors.New("playing set is out of range")
	ErrInvalidCategory     = errors.New("category must be <discipline>.singles or <discipline>.doubles")
	ErrUnknownSet          = errors.New("set does not exist")
)

// Category is stored as "<discipline>.<singles|doubles>", e.g. "mens.doubles".
type Category string

func (c Category) IsDoubles() bool {
	parts := strings.Split(string(c), ".")
	return len(parts) == 2 && parts[1] == "doubles"
}

func (c Category) Valid() bool {
	parts := strings.Split(string(c), ".")
	return len(parts) == 2 && parts[0] != "" && (parts[1] == "singles" || parts[1] == "doubles")
}

// Details holds the match-level configuration and derived outcome.
type Details struct {
	CreatedDate  time.Time `json:"created_date"`
	GameNo       string    `json:"game_no"`
	Court        string    `json:"court"`
	Category     Category  `json:"category"`
	GroupNo      string    `json:"group_no"`
	NoOfSets     int       `json:"no_of_sets"`
	MaxScore     int       `json:"max_score"`
	GameWinner   string    `json:"game_winner"`
	ShuttlesUsed int       `json:"shuttles_used"`
	PlayingSet   int       `json:"playing_set"`
	PlusTwoRule  bool      `json:"plus_two_rule"`
	PlusTwoScore int       `json:"plus_two_score"`
}

func (d Details) Validate() error {
	if d.NoOfSets != 1 && d.NoOfSets != 3 {
		return ErrInvalidNumberOfSets
	}
	if d.MaxScore <= 0 {
		return ErrInvalidWinningScore
	}
	if d.PlusTwoRule && d.PlusTwoScore < d.MaxScore {
		return ErrInvalidDeuceCap
	}
	if d.PlayingSet < 1 || d.PlayingSet > d.NoOfSets {
		return ErrInvalidPlayingSet
	}
	if !d.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

type Player struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Nickname    string `json:"nickname,omitempty"`
	UseNickname bool   `json:"use_nickname"`
}

func (p Player) DisplayName() string {
	if p.UseNickname {
		return p.Nickname
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type Team struct {
	TeamName string `json:"team_name,omitempty"`
	Player1  Player `json:"player_1"`
	Player2  Player `json:"player_2"`
}

type Players struct {
	TeamA Team `json:"team_a"`
	TeamB Team `json:"team_b"`
}

type Officials struct {
	Umpire       string `json:"umpire"`
	Referee      string `json:"referee"`
	ServiceJudge string `json:"service_judge,omitempty"`
}

// Statuses carries the lifecycle stage plus the scoreboard signalling flags:
// Active means the match is currently mirrored on the external display, and
// Focus is a unix-millisecond timestamp bumped on every mutation so the
// display knows to re-render.
type Statuses struct {
	Current MatchStatus `json:"current"`
	Active  bool        `json:"active"`
	Focus   int64       `json:"focus"`
}

// TimeInfo uses nil pointers for "not started" / "not finished".
type TimeInfo struct {
	Slot  *time.Time `json:"slot,omitempty"`
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Round is one rally outcome. Index 0 of a scoresheet is the pre-play
// placeholder: TeamScored, Scorer and ScoredAt stay empty there while
// ToServe/NextServe hold the initial server and receiver selection.
type Round struct {
	TeamScored    string    `json:"team_scored"`
	ScoredAt      time.Time `json:"scored_at"`
	CurrentAScore int       `json:"current_a_score"`
	CurrentBScore int       `json:"current_b_score"`
	Scorer        string    `json:"scorer"`
	ToServe       string    `json:"to_serve"`
	NextServe     string    `json:"next_serve"`
	ASwitch       bool      `json:"a_switch"`
	BSwitch       bool      `json:"b_switch"`
}

// Set is one game within the match. CurrentRound always equals
// len(Scoresheet) after a committed action.
type Set struct {
	AScore         int     `json:"a_score"`
	BScore         int     `json:"b_score"`
	CurrentRound   int     `json:"current_round"`
	LastTeamScored string  `json:"last_team_scored"`
	Winner         string  `json:"winner"`
	Scoresheet     []Round `json:"scoresheet"`
	Switch         bool    `json:"switch"`
}

// NewSet returns a set in its initial, unplayed shape. Both switch flags on
// the placeholder round start true, matching the canonical starting court
// assignment before a server is chosen.
func NewSet() *Set {
	return &Set{
		AScore:         0,
		BScore:         0,
		CurrentRound:   1,
		LastTeamScored: "",
		Winner:         "",
		Scoresheet: []Round{{
			ASwitch: true,
			BSwitch: true,
		}},
		Switch: false,
	}
}

// LastRound returns the most recent committed round (the placeholder when no
// point has been scored yet).
func (s *Set) LastRound() *Round {
	return &s.Scoresheet[len(s.Scoresheet)-1]
}

func (s *Set) Placeholder() *Round {
	return &s.Scoresheet[0]
}

// Match is the root aggregate. The whole struct is persisted as one document;
// ID is the storage key.
type Match struct {
	ID        int             `json:"id"`
	Details   Details         `json:"details"`
	Players   Players         `json:"players"`
	Officials Officials       `json:"officials"`
	Statuses  Statuses        `json:"statuses"`
	Time      TimeInfo        `json:"time"`
	Sets      map[string]*Set `json:"sets"`
}

// SetKey builds the document key for a set number, e.g. SetKey(2) == "set_2".
func SetKey(n int) string {
	return fmt.Sprintf("set_%d", n)
}

// SetByNumber returns the given set, or ErrUnknownSet when it has not been
// materialized yet.
func (m *Match) SetByNumber(n int) (*Set, error) {
	set, ok := m.Sets[SetKey(n)]
	if !ok || set == nil {
		return nil, fmt.Errorf("%w: set %d", ErrUnknownSet, n)
	}
	return set, nil
}

// PlayingSet returns the currently selected set.
func (m *Match) PlayingSet() (*Set, error) {
	return m.SetByNumber(m.Details.PlayingSet)
}

func (m *Match) Started() bool  { return m.Time.Start != nil }
func (m *Match) Finished() bool { return m.Time.End != nil }

// NewMatch validates the configuration and materializes all sets in their
// initial shape, with set 1 selected as playing.
func NewMatch(details Details, players Players, officials Officials, slot *time.Time) (*Match, error) {
	if details.PlayingSet == 0 {
		details.PlayingSet = 1
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}
	if details.CreatedDate.IsZero() {
		details.CreatedDate = time.Now()
	}
	details.GameWinner = ""
	details.ShuttlesUsed = 0

	sets := make(map[string]*Set, details.NoOfSets)
	for i := 1; i <= details.NoOfSets; i++ {
		sets[SetKey(i)] = NewSet()
	}

	return &Match{
		Details:   details,
		Players:   players,
		Officials: officials,
		Statuses: Statuses{
			Current: MatchStatusUpcoming,
			Active:  false,
			Focus:   time.Now().UnixMilli(),
		},
		Time: TimeInfo{Slot: slot},
		Sets: sets,
	}, nil
}
