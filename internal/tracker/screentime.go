package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"screentime/internal/database"
	"screentime/internal/models"
	"screentime/internal/storage"
)

var allowedScreenshotExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
}

// Screenshot is an uploaded evidence file. A Screenshot with an empty
// Filename is treated as no screenshot, the way browsers submit an empty
// file input.
type Screenshot struct {
	Filename string
	Content  io.Reader
}

// MaxDeltaMinutes bounds one report to a leap year of minutes, which keeps
// the running total far from float overflow.
const MaxDeltaMinutes = 366 * 24 * 60

type UpdateScreenTimeParams struct {
	DeltaMinutes float64
	Screenshot   *Screenshot
}

func validateDelta(delta float64) error {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return fmt.Errorf("%w: screen time must be a finite number", ErrValidation)
	}
	if delta < 0 {
		return fmt.Errorf("%w: screen time must not be negative", ErrValidation)
	}
	if delta > MaxDeltaMinutes {
		return fmt.Errorf("%w: screen time must not exceed %d minutes", ErrValidation, MaxDeltaMinutes)
	}
	return nil
}

// UpdateScreenTime adds DeltaMinutes to the session user's total and records
// the update, with its screenshot if one was given.
//
// The screenshot is stored first under a key unique to this upload; the
// counter increment and the update record then commit in one transaction.
// If the transaction fails the stored file is removed again.
func (s *Service) UpdateScreenTime(ctx context.Context, session *models.Session, arg UpdateScreenTimeParams) (*models.User, error) {
	if session == nil {
		return nil, ErrUnauthorized
	}
	if err := validateDelta(arg.DeltaMinutes); err != nil {
		return nil, err
	}

	var shot *Screenshot
	var sanitizedName string
	if arg.Screenshot != nil && arg.Screenshot.Filename != "" {
		shot = arg.Screenshot
		sanitizedName = storage.SanitizeFilename(shot.Filename)
		if !allowedScreenshotExtensions[storage.Extension(sanitizedName)] {
			return nil, fmt.Errorf("%w: %q, only jpg, jpeg and png images are accepted", ErrUnsupportedFileType, shot.Filename)
		}
	}

	now := s.now()

	var key *string
	if shot != nil {
		k := s.keys.ScreenshotKey(session.UserID, now, sanitizedName)
		if err := s.files.Save(ctx, k, shot.Content); err != nil {
			return nil, fmt.Errorf("failed to store screenshot: %w", err)
		}
		key = &k
	}

	var updated *models.User
	txErr := s.store.ExecTx(ctx, func(q *database.Queries) error {
		user, err := q.AddScreenTime(ctx, session.UserID, arg.DeltaMinutes, now)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
		}

		params := database.CreateScreenTimeUpdateParams{
			UserID:       session.UserID,
			DeltaMinutes: arg.DeltaMinutes,
			CreatedAt:    now,
		}
		if key != nil {
			params.ScreenshotKey = key
			params.ScreenshotName = &sanitizedName
		}
		if _, err := q.CreateScreenTimeUpdate(ctx, params); err != nil {
			return err
		}

		updated = user
		return nil
	})
	if txErr != nil {
		if key != nil {
			s.discardScreenshot(ctx, *key)
		}
		if errors.Is(txErr, ErrUnauthorized) {
			return nil, txErr
		}
		return nil, fmt.Errorf("failed to update screen time: %w", txErr)
	}

	updatesTotal.Inc()
	minutesTotal.Add(arg.DeltaMinutes)
	if key != nil {
		screenshotsTotal.Inc()
	}

	s.logger.InfoContext(ctx, "screen time updated",
		"user_id", updated.ID,
		"delta_minutes", arg.DeltaMinutes,
		"screen_time", updated.ScreenTime,
		"screenshot", key != nil,
	)

	s.broadcast(EventScreenTimeUpdated, ScreenTimeUpdatedPayload{
		UserID:      updated.ID,
		Username:    updated.Username,
		ScreenTime:  updated.ScreenTime,
		LastChecked: updated.LastChecked,
	})

	return updated, nil
}

func (s *Service) discardScreenshot(ctx context.Context, key string) {
	if err := s.files.Delete(context.WithoutCancel(ctx), key); err != nil {
		s.logger.WarnContext(ctx, "failed to remove screenshot after aborted update", "key", key, "error", err)
	}
}

// ListUsers returns every user in insertion order.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListUpdates returns the user's updates with id greater than sinceID.
func (s *Service) ListUpdates(ctx context.Context, userID int64, sinceID int64) ([]models.ScreenTimeUpdate, error) {
	if sinceID < 0 {
		return nil, fmt.Errorf("%w: since must not be negative", ErrValidation)
	}
	updates, err := s.store.ListUpdatesSince(ctx, userID, sinceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list updates: %w", err)
	}
	return updates, nil
}

// OpenScreenshot streams the screenshot of one of the user's own updates.
// The caller closes the returned reader.
func (s *Service) OpenScreenshot(ctx context.Context, userID int64, updateID int64) (io.ReadCloser, *models.ScreenTimeUpdate, error) {
	update, err := s.store.GetUpdateForUser(ctx, updateID, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load update: %w", err)
	}
	if update == nil || !update.HasScreenshot() {
		return nil, nil, fmt.Errorf("%w: screenshot for update %d", ErrNotFound, updateID)
	}

	rc, err := s.files.Get(ctx, *update.ScreenshotKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: screenshot for update %d", ErrNotFound, updateID)
		}
		return nil, nil, fmt.Errorf("failed to open screenshot: %w", err)
	}

	return rc, update, nil
}
