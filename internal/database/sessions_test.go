package database_test

import (
	. "screentime/internal/database"

	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func createTestSession(t *testing.T, userID int64, expiresAt time.Time) uuid.UUID {
	session, err := testStore.CreateSession(context.Background(), CreateSessionParams{
		ID:        uuid.New(),
		UserID:    userID,
		UserAgent: "go-test",
		ClientIP:  "127.0.0.1",
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	return session.ID
}

func TestCreateAndGetActiveSession(t *testing.T) {
	userID := createTestUser(t, "session_user")
	id := createTestSession(t, userID, time.Now().Add(time.Hour))

	session, err := testStore.GetActiveSession(context.Background(), id, time.Now())
	require.NoError(t, err)
	require.NotNil(t, session)
	require.Equal(t, userID, session.UserID)
	require.Equal(t, "go-test", session.UserAgent)
	require.Equal(t, "127.0.0.1", session.ClientIP)

	missing, err := testStore.GetActiveSession(context.Background(), uuid.New(), time.Now())
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestGetActiveSession_Expired(t *testing.T) {
	userID := createTestUser(t, "expired_session_user")
	id := createTestSession(t, userID, time.Now().Add(-time.Minute))

	session, err := testStore.GetActiveSession(context.Background(), id, time.Now())
	require.NoError(t, err)
	require.Nil(t, session)
}

func TestListAndDeleteSessions(t *testing.T) {
	userID := createTestUser(t, "list_sessions_user")
	otherID := createTestUser(t, "list_sessions_other")

	first := createTestSession(t, userID, time.Now().Add(time.Hour))
	createTestSession(t, userID, time.Now().Add(time.Hour))
	createTestSession(t, userID, time.Now().Add(-time.Hour))
	foreign := createTestSession(t, otherID, time.Now().Add(time.Hour))

	sessions, err := testStore.ListSessionsForUser(context.Background(), userID, time.Now())
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	deleted, err := testStore.DeleteSessionByID(context.Background(), foreign, userID)
	require.NoError(t, err)
	require.False(t, deleted, "a user must not delete someone else's session")

	deleted, err = testStore.DeleteSessionByID(context.Background(), first, userID)
	require.NoError(t, err)
	require.True(t, deleted)

	n, err := testStore.DeleteAllSessionsForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	sessions, err = testStore.ListSessionsForUser(context.Background(), userID, time.Now())
	require.NoError(t, err)
	require.Empty(t, sessions)
	require.NotNil(t, sessions)
}

func TestDeleteExpiredSessions(t *testing.T) {
	userID := createTestUser(t, "janitor_user")
	live := createTestSession(t, userID, time.Now().Add(time.Hour))
	dead := createTestSession(t, userID, time.Now().Add(-time.Hour))

	n, err := testStore.DeleteExpiredSessions(context.Background(), time.Now())
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, int64(1))

	var count int
	err = testStore.GetPool().QueryRow(context.Background(), `SELECT count(*) FROM sessions WHERE id = $1`, dead).Scan(&count)
	require.NoError(t, err)
	require.Zero(t, count)

	session, err := testStore.GetActiveSession(context.Background(), live, time.Now())
	require.NoError(t, err)
	require.NotNil(t, session)
}
