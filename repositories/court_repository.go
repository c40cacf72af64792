package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/courtside/badminton-scoring/models"
)

var ErrCourtNotFound = errors.New("court not found")

type CourtRepository interface {
	GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Court, error)
	SetInUse(ctx context.Context, exec SQLExecutor, id int, inUse bool) error
	List(ctx context.Context) ([]*models.Court, error)
}

type postgresCourtRepository struct {
	db *sql.DB
}

func NewPostgresCourtRepository(db *sql.DB) CourtRepository {
	return &postgresCourtRepository{db: db}
}

func (r *postgresCourtRepository) GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Court, error) {
	query := `SELECT id, court_name, court_in_use, created_at FROM courts WHERE court_name = $1`

	court := &models.Court{}
	err := exec.QueryRowContext(ctx, query, name).Scan(
		&court.ID,
		&court.Name,
		&court.InUse,
		&court.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourtNotFound
		}
		return nil, fmt.Errorf("failed to scan court %q: %w", name, err)
	}
	return court, nil
}

func (r *postgresCourtRepository) SetInUse(ctx context.Context, exec SQLExecutor, id int, inUse bool) error {
	query := `UPDATE courts SET court_in_use = $1 WHERE id = $2`
	result, err := exec.ExecContext(ctx, query, inUse, id)
	if err != nil {
		return fmt.Errorf("failed to update court %d busy flag: %w", id, err)
	}
	return checkAffectedRows(result, ErrCourtNotFound)
}

func (r *postgresCourtRepository) List(ctx context.Context) ([]*models.Court, error) {
	query := `SELECT id, court_name, court_in_use, created_at FROM courts ORDER BY court_name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query courts: %w", err)
	}
	defer rows.Close()

	courts := make([]*models.Court, 0)
	for rows.Next() {
		court := &models.Court{}
		if scanErr := rows.Scan(&court.ID, &court.Name, &court.InUse, &court.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan court row: %w", scanErr)
		}
		courts = append(courts, court)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during court rows iteration: %w", err)
	}
	return courts, nil
}
