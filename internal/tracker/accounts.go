package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"screentime/internal/auth"
	"screentime/internal/database"
	"screentime/internal/models"

	"github.com/google/uuid"
)

// Register creates an account with a zero screen-time total.
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, error) {
	if err := auth.ValidateCredentials(username, password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, database.CreateUserParams{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicateUsername) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUsername, username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	registrationsTotal.Inc()
	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID, "username", user.Username)

	return user, nil
}

type AuthenticateParams struct {
	Username  string
	Password  string
	UserAgent string
	ClientIP  string
}

type LoginResult struct {
	User    *models.User
	Session *models.Session
	Token   string
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// equalizeTiming spends one hash verification when the username is unknown,
// so response time does not reveal which usernames exist.
func equalizeTiming(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = auth.HashPassword("screentime-dummy-password")
	})
	auth.CheckPasswordHash(password, dummyHash)
}

// Authenticate checks the credentials and opens a new session.
func (s *Service) Authenticate(ctx context.Context, arg AuthenticateParams) (*LoginResult, error) {
	if arg.Username == "" || arg.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	if !auth.WellFormed(arg.Username) || !auth.WellFormed(arg.Password) {
		return nil, fmt.Errorf("%w: username and password must be valid text", ErrValidation)
	}

	user, err := s.store.GetUserByUsername(ctx, arg.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		equalizeTiming(arg.Password)
		loginsTotal.WithLabelValues("rejected").Inc()
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPasswordHash(arg.Password, user.PasswordHash) {
		loginsTotal.WithLabelValues("rejected").Inc()
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	session, err := s.store.CreateSession(ctx, database.CreateSessionParams{
		ID:        uuid.New(),
		UserID:    user.ID,
		UserAgent: arg.UserAgent,
		ClientIP:  arg.ClientIP,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := auth.GenerateJWT(user, session, s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	loginsTotal.WithLabelValues("accepted").Inc()
	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID, "session_id", session.ID)

	return &LoginResult{User: user, Session: session, Token: token}, nil
}

// ResolveSession maps a presented token to its live session and user. Every
// failure is reported as ErrUnauthorized.
func (s *Service) ResolveSession(ctx context.Context, token string) (*models.Session, *models.User, error) {
	if token == "" {
		return nil, nil, fmt.Errorf("%w: missing session", ErrUnauthorized)
	}

	claims, err := auth.VerifyJWT(token, s.secret)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	session, err := s.store.GetActiveSession(ctx, claims.SessionID, s.now())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil || session.UserID != claims.UserID {
		return nil, nil, fmt.Errorf("%w: session expired or revoked", ErrUnauthorized)
	}

	user, err := s.store.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, nil, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
	}

	return session, user, nil
}

// Logout revokes the session. Revoking an already revoked session is not an error.
func (s *Service) Logout(ctx context.Context, session *models.Session) error {
	if session == nil {
		return ErrUnauthorized
	}

	if _, err := s.store.DeleteSessionByID(ctx, session.ID, session.UserID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged out", "user_id", session.UserID, "session_id", session.ID)
	return nil
}
