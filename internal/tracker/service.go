// Package tracker implements accounts, sessions and the screen-time counter.
package tracker

import (
	"fmt"
	"log/slog"
	"time"

	"screentime/internal/database"
	"screentime/internal/storage"
)

// Publisher pushes dashboard events to connected clients.
type Publisher interface {
	Broadcast(eventData []byte)
	PublishEvent(userID int64, eventData []byte)
}

type Options struct {
	SessionSecret string
	SessionTTL    time.Duration
}

type Service struct {
	store      *database.Store
	files      storage.Storage
	keys       *storage.KeyGenerator
	events     Publisher
	logger     *slog.Logger
	secret     string
	sessionTTL time.Duration
	now        func() time.Time
}

func NewService(store *database.Store, files storage.Storage, events Publisher, logger *slog.Logger, opts Options) (*Service, error) {
	if opts.SessionSecret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if opts.SessionTTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}

	keys, err := storage.NewKeyGenerator()
	if err != nil {
		return nil, err
	}

	if events == nil {
		events = noopPublisher{}
	}

	return &Service{
		store:      store,
		files:      files,
		keys:       keys,
		events:     events,
		logger:     logger,
		secret:     opts.SessionSecret,
		sessionTTL: opts.SessionTTL,
		now:        defaultClock,
	}, nil
}

// Postgres keeps microseconds; truncating here makes returned rows compare
// equal to the instant that was written.
func defaultClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

type noopPublisher struct{}

func (noopPublisher) Broadcast([]byte)           {}
func (noopPublisher) PublishEvent(int64, []byte) {}
