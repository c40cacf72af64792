package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/courtside/badminton-scoring/models"
	"github.com/courtside/badminton-scoring/repositories"
)

type CreateMatchInput struct {
	Details   models.Details   `json:"details"`
	Players   models.Players   `json:"players"`
	Officials models.Officials `json:"officials"`
	Slot      *time.Time       `json:"slot,omitempty"`
}

// UpdateMatchInput covers the pre-play corrections an operator can make.
// Scoring configuration (sets, winning score, deuce cap) is immutable once a
// match has started; line-up and scheduling details stay editable.
type UpdateMatchInput struct {
	Details   *models.Details   `json:"details,omitempty"`
	Players   *models.Players   `json:"players,omitempty"`
	Officials *models.Officials `json:"officials,omitempty"`
}

type MatchService interface {
	Create(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, status *models.MatchStatus) ([]*models.Match, error)
	Update(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error)
}

type matchService struct {
	db        *sql.DB
	matchRepo repositories.MatchRepository
}

func NewMatchService(db *sql.DB, matchRepo repositories.MatchRepository) MatchService {
	return &matchService{db: db, matchRepo: matchRepo}
}

func (s *matchService) Create(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	match, err := models.NewMatch(input.Details, input.Players, input.Officials, input.Slot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.matchRepo.Create(ctx, tx, match); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match creation: %w", err)
	}
	return match, nil
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *matchService) List(ctx context.Context, status *models.MatchStatus) ([]*models.Match, error) {
	if status != nil && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidationFailed, *status)
	}
	return s.matchRepo.List(ctx, status)
}

func (s *matchService) Update(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	match, err := s.matchRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if input.Details != nil {
		if err := applyDetailsUpdate(match, *input.Details); err != nil {
			return nil, err
		}
	}
	if input.Players != nil {
		match.Players = *input.Players
	}
	if input.Officials != nil {
		match.Officials = *input.Officials
	}
	match.Statuses.Focus = time.Now().UnixMilli()

	if err := s.matchRepo.Save(ctx, tx, match); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match %d update: %w", id, err)
	}
	return match, nil
}

func applyDetailsUpdate(m *models.Match, details models.Details) error {
	if m.Started() {
		configChanged := details.NoOfSets != m.Details.NoOfSets ||
			details.MaxScore != m.Details.MaxScore ||
			details.PlusTwoRule != m.Details.PlusTwoRule ||
			details.PlusTwoScore != m.Details.PlusTwoScore ||
			details.Category != m.Details.Category
		if configChanged {
			return fmt.Errorf("%w: scoring configuration cannot change after start", ErrMatchAlreadyStarted)
		}
	}

	// Derived fields are owned by the orchestrator, not the edit form.
	details.CreatedDate = m.Details.CreatedDate
	details.GameWinner = m.Details.GameWinner
	details.ShuttlesUsed = m.Details.ShuttlesUsed
	details.PlayingSet = m.Details.PlayingSet

	if err := details.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	// A bigger set count needs the extra sets materialized.
	for i := 1; i <= details.NoOfSets; i++ {
		if _, ok := m.Sets[models.SetKey(i)]; !ok {
			m.Sets[models.SetKey(i)] = models.NewSet()
		}
	}

	m.Details = details
	return nil
}
