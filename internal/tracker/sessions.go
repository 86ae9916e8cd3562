package tracker

import (
	"context"
	"fmt"
	"time"

	"screentime/internal/models"

	"github.com/google/uuid"
)

func (s *Service) ListSessions(ctx context.Context, userID int64) ([]models.Session, error) {
	sessions, err := s.store.ListSessionsForUser(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// TerminateSession revokes one of the user's own sessions.
func (s *Service) TerminateSession(ctx context.Context, userID int64, sessionID uuid.UUID) error {
	deleted, err := s.store.DeleteSessionByID(ctx, sessionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
	}
	return nil
}

// TerminateAllSessions logs the user out everywhere and tells their open
// dashboards about it.
func (s *Service) TerminateAllSessions(ctx context.Context, userID int64) (int64, error) {
	n, err := s.store.DeleteAllSessionsForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions: %w", err)
	}

	s.publish(userID, EventSessionsTerminated, map[string]int64{"user_id": userID, "count": n})
	s.logger.InfoContext(ctx, "all sessions terminated", "user_id", userID, "count", n)

	return n, nil
}

func (s *Service) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpiredSessions(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	return n, nil
}

// RunSessionJanitor purges expired sessions every interval until ctx is done.
func (s *Service) RunSessionJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeExpiredSessions(ctx)
			if err != nil {
				s.logger.ErrorContext(ctx, "session janitor failed", "error", err)
				continue
			}
			if n > 0 {
				s.logger.InfoContext(ctx, "purged expired sessions", "count", n)
			}
		}
	}
}
