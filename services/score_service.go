package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/courtside/badminton-scoring/models"
	"github.com/courtside/badminton-scoring/repositories"
	"github.com/courtside/badminton-scoring/scoreboard"
	"github.com/courtside/badminton-scoring/storage"
)

// ScoreService is the set/match orchestrator: every operator action is one
// atomic read-modify-write against the match document, composed from the pure
// engines in the scoring package. Each committed mutation is broadcast to the
// match's scoreboard room.
type ScoreService interface {
	Start(ctx context.Context, matchID int) (*models.Match, error)
	Score(ctx context.Context, matchID int, player string) (*models.Match, error)
	Undo(ctx context.Context, matchID int) (*models.Match, error)
	Reset(ctx context.Context, matchID int) (*models.Match, error)
	SwitchSide(ctx context.Context, matchID int) (*models.Match, error)
	ChangeSet(ctx context.Context, matchID, set int) (*models.Match, error)
	SelectInitialServer(ctx context.Context, matchID int, player string) (*models.Match, error)
	SelectInitialReceiver(ctx context.Context, matchID int, player string) (*models.Match, error)
	ForceWin(ctx context.Context, matchID int, team string) (*models.Match, error)
	Finish(ctx context.Context, matchID int) (*models.Match, error)
	ToggleScoreboard(ctx context.Context, matchID int) (*models.Match, error)
	Focus(ctx context.Context, matchID int) (*models.Match, error)
	AdjustShuttles(ctx context.Context, matchID, delta int) (*models.Match, error)
}

type scoreService struct {
	db        *sql.DB
	matchRepo repositories.MatchRepository
	courtRepo repositories.CourtRepository
	hub       *scoreboard.Hub
	archiver  storage.FileUploader
	logger    *slog.Logger
	now       func() time.Time
}

func NewScoreService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	courtRepo repositories.CourtRepository,
	hub *scoreboard.Hub,
	archiver storage.FileUploader,
	logger *slog.Logger,
) ScoreService {
	if logger == nil {
		logger = slog.Default()
	}
	return &scoreService{
		db:        db,
		matchRepo: matchRepo,
		courtRepo: courtRepo,
		hub:       hub,
		archiver:  archiver,
		logger:    logger,
		now:       time.Now,
	}
}

// mutate runs apply against the locked match document inside one transaction.
// The document is written back whole, so a failed apply leaves no trace, and
// two concurrent operators serialize on the row lock.
func (s *scoreService) mutate(ctx context.Context, matchID int, apply func(tx *sql.Tx, m *models.Match) error) (*models.Match, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	match, err := s.matchRepo.GetByIDForUpdate(ctx, tx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}

	if err := apply(tx, match); err != nil {
		return nil, err
	}

	if err := s.matchRepo.Save(ctx, tx, match); err != nil {
		return nil, fmt.Errorf("failed to save match %d: %w", matchID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match %d update: %w", matchID, err)
	}

	s.broadcast(match)
	return match, nil
}

func (s *scoreService) broadcast(match *models.Match) {
	if s.hub == nil {
		return
	}
	room := scoreboard.RoomForMatch(match.ID)
	s.hub.BroadcastToRoom(room, scoreboard.Message{
		Type:    scoreboard.MessageMatchUpdated,
		Payload: match,
		RoomID:  room,
	})
}

// markCourtInUse flips the linked court's busy flag inside the same
// transaction as the match update. A match without a resolvable court is
// tolerated; the match update still applies.
func (s *scoreService) markCourtInUse(ctx context.Context, tx *sql.Tx, m *models.Match, inUse bool) error {
	name := strings.TrimSpace(m.Details.Court)
	if name == "" {
		return nil
	}
	court, err := s.courtRepo.GetByName(ctx, tx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrCourtNotFound) {
			s.logger.Warn("court not found for match, skipping busy flag",
				slog.Int("match_id", m.ID), slog.String("court", name))
			return nil
		}
		return fmt.Errorf("failed to look up court %q: %w", name, err)
	}
	return s.courtRepo.SetInUse(ctx, tx, court.ID, inUse)
}

func (s *scoreService) Start(ctx context.Context, matchID int) (*models.Match, error) {
	return s.mutate(ctx, matchID, func(tx *sql.Tx, m *models.Match) error {
		if err := applyStart(m, s.now()); err != nil {
			return err
		}
		return s.markCourtInUse(ctx, tx, m, true)
	})
}

func (s *scoreService) Score(ctx context.Context, matchID int, player string) (*models.Match, error) {
	return s.mutate(ctx, matchID, func(_ *sql.Tx, m *models.Match) error {
		return applyScore(m, player, s.now())
	})
}

func (s *scoreService) Undo(ctx context.Context, matchID int) (*models.Match, error) {
	return s.mutate(ctx, matchID, func(_ *sql.Tx, m *models.Match) error {
		return applyUndo(m, s.now())
	})
}

func (s *scoreService) Reset(ctx context.Context, matchID int) (*models.Match, error) {
	return s.mutate(ctx, matchID, func(_ *sql.Tx, m *models.Match) error {
		return applyReset(m, s.now())
	})
}

func (s *scoreService) SwitchSide(ctx context.Context, matchID int) (*models.Match, error) {
	return s.mutate(ctx, matchID, func(_ *sql.Tx, m *models.Match) error {
		return applySwitchSide(m, s.now())
	})
}

func (s *scoreService) ChangeSet(ctx context.Context, matchID, set int) (*models.Match, error) {
	return s.mutate(ctx, matchID, func(_ *sql.Tx, m *models.Match) error {
		return applyChangeSet(m, set)
	})
}

func (s *scoreService) SelectInitialServer(ctx context.Context, matchID int, player string) (*models.Match, error) {
	return s.mutate(ctx, matchID, func(_ *sql.Tx, m *models.Match) error {
		return applySelectInitialServer(m, player, s.now())
	})
}

func (s *scoreService) SelectInitialReceiver(ctx context.Context, matchID int, player string) (*models.Match, error) {
	return s.mutate(ctx, matchID, func(_ *sql.Tx, m *models.Match) error {
		return applySelectInitialReceiver(m, player, s.now())
	})
}

func (s *scoreService) ForceWin(ctx context.Context, matchID int, team string) (*models.Match, error) {
	return s.mutate(ctx, matchID, func(_ *sql.Tx, m *models.Match) error {
		return applyForceWin(m, team, s.now())
	})
}

func (s *scoreService) Finish(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.mutate(ctx, matchID, func(_ *sql.Tx, m *models.Match) error {
		return applyFinish(m, s.now())
	})
	if err != nil {
		return nil, err
	}
	s.archiveScoresheet(ctx, match)
	return match, nil
}

func (s *scoreService) ToggleScoreboard(ctx context.Context, matchID int) (*models.Match, error) {
	return s.mutate(ctx, matchID, func(tx *sql.Tx, m *models.Match) error {
		if !m.Started() {
			return ErrMatchNotStarted
		}
		m.Statuses.Active = !m.Statuses.Active
		m.Statuses.Focus = s.now().UnixMilli()
		return s.markCourtInUse(ctx, tx, m, m.Statuses.Active)
	})
}

func (s *scoreService) Focus(ctx context.Context, matchID int) (*models.Match, error) {
	return s.mutate(ctx, matchID, func(_ *sql.Tx, m *models.Match) error {
		m.Statuses.Focus = s.now().UnixMilli()
		return nil
	})
}

func (s *scoreService) AdjustShuttles(ctx context.Context, matchID, delta int) (*models.Match, error) {
	return s.mutate(ctx, matchID, func(_ *sql.Tx, m *models.Match) error {
		return applyAdjustShuttles(m, delta)
	})
}

// archiveScoresheet exports the final document to object storage. Best
// effort: a failed archive is logged, never surfaced to the operator.
func (s *scoreService) archiveScoresheet(ctx context.Context, match *models.Match) {
	if s.archiver == nil {
		return
	}
	document, err := json.Marshal(match)
	if err != nil {
		s.logger.Warn("failed to marshal scoresheet archive", slog.Int("match_id", match.ID), slog.Any("error", err))
		return
	}
	key := fmt.Sprintf("scoresheets/match_%d.json", match.ID)
	if _, err := s.archiver.Upload(ctx, key, "application/json", strings.NewReader(string(document))); err != nil {
		s.logger.Warn("failed to archive scoresheet", slog.Int("match_id", match.ID), slog.Any("error", err))
		return
	}
	s.logger.Info("scoresheet archived", slog.Int("match_id", match.ID), slog.String("key", key))
}
