package database

import (
	"context"
	"errors"
	"screentime/internal/models"
	"time"

	"github.com/jackc/pgx/v5"
)

const updateColumns = `id, user_id, delta_minutes, screenshot_key, screenshot_name, created_at`

// Page size for update history.
const updatesPageSize = 100

func scanUpdate(row pgx.Row) (*models.ScreenTimeUpdate, error) {
	var u models.ScreenTimeUpdate
	if err := row.Scan(
		&u.ID,
		&u.UserID,
		&u.DeltaMinutes,
		&u.ScreenshotKey,
		&u.ScreenshotName,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

type CreateScreenTimeUpdateParams struct {
	UserID         int64
	DeltaMinutes   float64
	ScreenshotKey  *string
	ScreenshotName *string
	CreatedAt      time.Time
}

func (q *Queries) CreateScreenTimeUpdate(ctx context.Context, arg CreateScreenTimeUpdateParams) (*models.ScreenTimeUpdate, error) {
	query := `
		INSERT INTO screen_time_updates (user_id, delta_minutes, screenshot_key, screenshot_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + updateColumns

	return scanUpdate(q.db.QueryRow(ctx, query,
		arg.UserID,
		arg.DeltaMinutes,
		arg.ScreenshotKey,
		arg.ScreenshotName,
		arg.CreatedAt,
	))
}

func (q *Queries) ListUpdatesSince(ctx context.Context, userID int64, sinceID int64) ([]models.ScreenTimeUpdate, error) {
	query := `
		SELECT ` + updateColumns + `
		FROM screen_time_updates
		WHERE user_id = $1 AND id > $2
		ORDER BY id ASC
		LIMIT $3
	`
	rows, err := q.db.Query(ctx, query, userID, sinceID, updatesPageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var updates []models.ScreenTimeUpdate
	for rows.Next() {
		u, err := scanUpdate(rows)
		if err != nil {
			return nil, err
		}
		updates = append(updates, *u)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if updates == nil {
		return []models.ScreenTimeUpdate{}, nil
	}

	return updates, nil
}

// GetUpdateForUser returns nil, nil when the update does not exist or belongs
// to someone else.
func (q *Queries) GetUpdateForUser(ctx context.Context, id int64, userID int64) (*models.ScreenTimeUpdate, error) {
	query := `SELECT ` + updateColumns + ` FROM screen_time_updates WHERE id = $1 AND user_id = $2`

	u, err := scanUpdate(q.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return u, nil
}
