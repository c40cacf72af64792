package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/courtside/badminton-scoring/models"
)

var ErrMatchNotFound = errors.New("match not found")

// MatchRepository stores each match as one JSONB document keyed by id.
// Orchestrator operations read the document FOR UPDATE inside a transaction,
// mutate it in memory and write it back whole, so an operation either lands
// completely or not at all.
type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id int) (*models.Match, error)
	Save(ctx context.Context, exec SQLExecutor, match *models.Match) error
	List(ctx context.Context, status *models.MatchStatus) ([]*models.Match, error)
	ListActive(ctx context.Context) ([]*models.Match, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	document, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("failed to marshal match document: %w", err)
	}

	query := `INSERT INTO matches (document) VALUES ($1) RETURNING id`
	if err := exec.QueryRowContext(ctx, query, document).Scan(&match.ID); err != nil {
		return fmt.Errorf("failed to insert match document: %w", err)
	}

	// Re-save so the document carries its own id; readers of raw documents
	// (scoreboard clients, archives) rely on it.
	return r.Save(ctx, exec, match)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	query := `SELECT id, document FROM matches WHERE id = $1`
	return r.scanMatch(exec.QueryRowContext(ctx, query, id), id)
}

// GetByIDForUpdate locks the row for the duration of the transaction, so
// concurrent operators serialize on the same match document.
func (r *postgresMatchRepository) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id int) (*models.Match, error) {
	query := `SELECT id, document FROM matches WHERE id = $1 FOR UPDATE`
	return r.scanMatch(tx.QueryRowContext(ctx, query, id), id)
}

func (r *postgresMatchRepository) scanMatch(row *sql.Row, id int) (*models.Match, error) {
	var (
		rowID    int
		document []byte
	)
	if err := row.Scan(&rowID, &document); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match %d: %w", id, err)
	}

	match := &models.Match{}
	if err := json.Unmarshal(document, match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match %d document: %w", id, err)
	}
	match.ID = rowID
	return match, nil
}

func (r *postgresMatchRepository) Save(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	document, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("failed to marshal match document: %w", err)
	}

	query := `UPDATE matches SET document = $1 WHERE id = $2`
	result, err := exec.ExecContext(ctx, query, document, match.ID)
	if err != nil {
		return fmt.Errorf("failed to save match %d: %w", match.ID, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) List(ctx context.Context, status *models.MatchStatus) ([]*models.Match, error) {
	query := `SELECT id, document FROM matches`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE document->'statuses'->>'current' = $1`
		args = append(args, string(*status))
	}
	query += ` ORDER BY id ASC`

	return r.queryMatches(ctx, query, args...)
}

// ListActive returns matches currently broadcast to a scoreboard.
func (r *postgresMatchRepository) ListActive(ctx context.Context) ([]*models.Match, error) {
	query := `SELECT id, document FROM matches WHERE (document->'statuses'->>'active')::boolean ORDER BY id ASC`
	return r.queryMatches(ctx, query)
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var (
			id       int
			document []byte
		)
		if scanErr := rows.Scan(&id, &document); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		match := &models.Match{}
		if err := json.Unmarshal(document, match); err != nil {
			return nil, fmt.Errorf("failed to unmarshal match %d document: %w", id, err)
		}
		match.ID = id
		matches = append(matches, match)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}
