package database

import (
	"context"
	"errors"
	"screentime/internal/models"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CreateSessionParams struct {
	ID        uuid.UUID
	UserID    int64
	UserAgent string
	ClientIP  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (q *Queries) CreateSession(ctx context.Context, arg CreateSessionParams) (*models.Session, error) {
	query := `
		INSERT INTO sessions (id, user_id, user_agent, client_ip, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, user_agent, client_ip, expires_at, created_at
	`
	var session models.Session
	err := q.db.QueryRow(ctx, query,
		arg.ID,
		arg.UserID,
		arg.UserAgent,
		arg.ClientIP,
		arg.ExpiresAt,
		arg.CreatedAt,
	).Scan(
		&session.ID,
		&session.UserID,
		&session.UserAgent,
		&session.ClientIP,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// GetActiveSession returns the session if it exists and has not expired at now.
func (q *Queries) GetActiveSession(ctx context.Context, id uuid.UUID, now time.Time) (*models.Session, error) {
	query := `
		SELECT id, user_id, user_agent, client_ip, expires_at, created_at
		FROM sessions
		WHERE id = $1 AND expires_at > $2
	`
	var session models.Session
	err := q.db.QueryRow(ctx, query, id, now).Scan(
		&session.ID,
		&session.UserID,
		&session.UserAgent,
		&session.ClientIP,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &session, nil
}

func (q *Queries) ListSessionsForUser(ctx context.Context, userID int64, now time.Time) ([]models.Session, error) {
	query := `
		SELECT id, user_id, user_agent, client_ip, expires_at, created_at
		FROM sessions
		WHERE user_id = $1 AND expires_at > $2
		ORDER BY created_at DESC
	`
	rows, err := q.db.Query(ctx, query, userID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var session models.Session
		if err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.UserAgent,
			&session.ClientIP,
			&session.ExpiresAt,
			&session.CreatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if sessions == nil {
		return []models.Session{}, nil
	}

	return sessions, nil
}

func (q *Queries) DeleteSessionByID(ctx context.Context, id uuid.UUID, userID int64) (bool, error) {
	query := `DELETE FROM sessions WHERE id = $1 AND user_id = $2`
	res, err := q.db.Exec(ctx, query, id, userID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (q *Queries) DeleteAllSessionsForUser(ctx context.Context, userID int64) (int64, error) {
	query := `DELETE FROM sessions WHERE user_id = $1`
	res, err := q.db.Exec(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

func (q *Queries) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at <= $1`
	res, err := q.db.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}
