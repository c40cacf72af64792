package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/courtside/badminton-scoring/models"
	"github.com/courtside/badminton-scoring/repositories"
)

// CourtStatus pairs a court with the match currently broadcast on it, if any.
type CourtStatus struct {
	Court *models.Court `json:"court"`
	Match *models.Match `json:"match,omitempty"`
}

type Dashboard struct {
	Courts        []CourtStatus   `json:"courts"`
	ActiveMatches []*models.Match `json:"active_matches"`
}

type DashboardService interface {
	Snapshot(ctx context.Context) (*Dashboard, error)
	Courts(ctx context.Context) ([]*models.Court, error)
}

type dashboardService struct {
	courtRepo repositories.CourtRepository
	matchRepo repositories.MatchRepository
}

func NewDashboardService(courtRepo repositories.CourtRepository, matchRepo repositories.MatchRepository) DashboardService {
	return &dashboardService{courtRepo: courtRepo, matchRepo: matchRepo}
}

// Snapshot loads courts and live matches concurrently and joins them by
// court name.
func (s *dashboardService) Snapshot(ctx context.Context) (*Dashboard, error) {
	var (
		courts  []*models.Court
		matches []*models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		courts, err = s.courtRepo.List(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListActive(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byCourt := make(map[string]*models.Match, len(matches))
	for _, match := range matches {
		if match.Details.Court != "" {
			byCourt[match.Details.Court] = match
		}
	}

	statuses := make([]CourtStatus, 0, len(courts))
	for _, court := range courts {
		statuses = append(statuses, CourtStatus{
			Court: court,
			Match: byCourt[court.Name],
		})
	}

	return &Dashboard{Courts: statuses, ActiveMatches: matches}, nil
}

func (s *dashboardService) Courts(ctx context.Context) ([]*models.Court, error) {
	return s.courtRepo.List(ctx)
}
