package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"screentime/internal/models"
	"screentime/internal/storage"

	"github.com/stretchr/testify/require"
)

func registerAndLogin(t *testing.T, env *testEnv, username string) *LoginResult {
	t.Helper()
	_, err := env.service.Register(context.Background(), username, "secret1")
	require.NoError(t, err)
	return login(t, env, username, "secret1")
}

func currentScreenTime(t *testing.T, userID int64) float64 {
	t.Helper()
	user, err := testStore.GetUserByID(context.Background(), userID)
	require.NoError(t, err)
	return user.ScreenTime
}

func storedFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(dir, path)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestUpdateScreenTime_SequentialDeltas(t *testing.T) {
	env := newTestEnv(t)
	res := registerAndLogin(t, env, "sequential_user")

	first := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(90 * time.Minute)

	env.service.now = func() time.Time { return first }
	_, err := env.service.UpdateScreenTime(context.Background(), res.Session, UpdateScreenTimeParams{DeltaMinutes: 12.25})
	require.NoError(t, err)

	env.service.now = func() time.Time { return second }
	user, err := env.service.UpdateScreenTime(context.Background(), res.Session, UpdateScreenTimeParams{DeltaMinutes: 7.75})
	require.NoError(t, err)

	require.Equal(t, 20.0, user.ScreenTime)
	require.True(t, second.Equal(user.LastChecked), "last_checked should be the time of the second update")
	require.Equal(t, 20.0, currentScreenTime(t, res.User.ID))
}

func TestUpdateScreenTime_ZeroDeltaTouchesLastChecked(t *testing.T) {
	env := newTestEnv(t)
	res := registerAndLogin(t, env, "zero_delta_user")

	at := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	env.service.now = func() time.Time { return at }

	user, err := env.service.UpdateScreenTime(context.Background(), res.Session, UpdateScreenTimeParams{DeltaMinutes: 0})
	require.NoError(t, err)
	require.Zero(t, user.ScreenTime)
	require.True(t, at.Equal(user.LastChecked))
}

func TestUpdateScreenTime_RejectsInvalidDelta(t *testing.T) {
	env := newTestEnv(t)
	res := registerAndLogin(t, env, "invalid_delta_user")
	_, err := env.service.UpdateScreenTime(context.Background(), res.Session, UpdateScreenTimeParams{DeltaMinutes: 5})
	require.NoError(t, err)

	for _, delta := range []float64{-1, -0.001, math.NaN(), math.Inf(1), math.Inf(-1), MaxDeltaMinutes + 0.5, math.MaxFloat64} {
		_, err := env.service.UpdateScreenTime(context.Background(), res.Session, UpdateScreenTimeParams{
			DeltaMinutes: delta,
			Screenshot:   &Screenshot{Filename: "shot.png", Content: strings.NewReader("png")},
		})
		require.ErrorIs(t, err, ErrValidation, "delta %v", delta)
	}

	require.Equal(t, 5.0, currentScreenTime(t, res.User.ID))
	require.Empty(t, storedFiles(t, env.uploadDir))
}

func TestUpdateScreenTime_LargestDeltaAccepted(t *testing.T) {
	env := newTestEnv(t)
	res := registerAndLogin(t, env, "largest_delta_user")

	for i := 0; i < 2; i++ {
		_, err := env.service.UpdateScreenTime(context.Background(), res.Session, UpdateScreenTimeParams{DeltaMinutes: MaxDeltaMinutes})
		require.NoError(t, err)
	}
	require.Equal(t, float64(2*MaxDeltaMinutes), currentScreenTime(t, res.User.ID))
}

func TestUpdateScreenTime_UnsupportedFileType(t *testing.T) {
	env := newTestEnv(t)
	res := registerAndLogin(t, env, "bad_file_user")

	for _, name := range []string{"notes.txt", "shot.gif", "png", "shot.png.exe", "../../"} {
		_, err := env.service.UpdateScreenTime(context.Background(), res.Session, UpdateScreenTimeParams{
			DeltaMinutes: 10,
			Screenshot:   &Screenshot{Filename: name, Content: strings.NewReader("data")},
		})
		require.ErrorIs(t, err, ErrUnsupportedFileType, name)
	}

	require.Zero(t, currentScreenTime(t, res.User.ID))
	require.Empty(t, storedFiles(t, env.uploadDir))
}

func TestUpdateScreenTime_Unauthorized(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.UpdateScreenTime(context.Background(), nil, UpdateScreenTimeParams{DeltaMinutes: 1})
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateScreenTime_StoresScreenshotAndLinksIt(t *testing.T) {
	env := newTestEnv(t)
	res := registerAndLogin(t, env, "screenshot_user")

	user, err := env.service.UpdateScreenTime(context.Background(), res.Session, UpdateScreenTimeParams{
		DeltaMinutes: 30,
		Screenshot:   &Screenshot{Filename: "../My Screen.PNG", Content: strings.NewReader("png-bytes")},
	})
	require.NoError(t, err)
	require.Equal(t, 30.0, user.ScreenTime)

	files := storedFiles(t, env.uploadDir)
	require.Len(t, files, 1)
	require.True(t, strings.HasPrefix(files[0], fmt.Sprintf("%d/", res.User.ID)))
	require.True(t, strings.HasSuffix(files[0], "_My_Screen.PNG"))

	updates, err := env.service.ListUpdates(context.Background(), res.User.ID, 0)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	require.Equal(t, 30.0, updates[0].DeltaMinutes)
	require.Equal(t, "My_Screen.PNG", *updates[0].ScreenshotName)
	require.Equal(t, files[0], *updates[0].ScreenshotKey)

	rc, update, err := env.service.OpenScreenshot(context.Background(), res.User.ID, updates[0].ID)
	require.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(content))
	require.Equal(t, updates[0].ID, update.ID)
}

func TestUpdateScreenTime_SameFilenameDoesNotOverwrite(t *testing.T) {
	env := newTestEnv(t)
	alice := registerAndLogin(t, env, "same_name_alice")
	bob := registerAndLogin(t, env, "same_name_bob")

	at := time.Date(2026, 5, 5, 5, 5, 5, 0, time.UTC)
	env.service.now = func() time.Time { return at }

	for _, s := range []*LoginResult{alice, alice, bob} {
		_, err := env.service.UpdateScreenTime(context.Background(), s.Session, UpdateScreenTimeParams{
			DeltaMinutes: 1,
			Screenshot:   &Screenshot{Filename: "screenshot.jpg", Content: strings.NewReader(s.User.Username)},
		})
		require.NoError(t, err)
	}

	require.Len(t, storedFiles(t, env.uploadDir), 3)
}

func TestUpdateScreenTime_EmptyFilenameMeansNoScreenshot(t *testing.T) {
	env := newTestEnv(t)
	res := registerAndLogin(t, env, "empty_file_user")

	user, err := env.service.UpdateScreenTime(context.Background(), res.Session, UpdateScreenTimeParams{
		DeltaMinutes: 3,
		Screenshot:   &Screenshot{Filename: "", Content: bytes.NewReader(nil)},
	})
	require.NoError(t, err)
	require.Equal(t, 3.0, user.ScreenTime)
	require.Empty(t, storedFiles(t, env.uploadDir))

	updates, err := env.service.ListUpdates(context.Background(), res.User.ID, 0)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	require.False(t, updates[0].HasScreenshot())

	_, _, err = env.service.OpenScreenshot(context.Background(), res.User.ID, updates[0].ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateScreenTime_RemovesScreenshotWhenCommitFails(t *testing.T) {
	env := newTestEnv(t)
	ghost := &models.Session{UserID: -1}

	_, err := env.service.UpdateScreenTime(context.Background(), ghost, UpdateScreenTimeParams{
		DeltaMinutes: 5,
		Screenshot:   &Screenshot{Filename: "shot.png", Content: strings.NewReader("png")},
	})
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Empty(t, storedFiles(t, env.uploadDir), "the orphaned screenshot must be removed")
}

type failingStorage struct{ storage.Storage }

func (failingStorage) Save(context.Context, string, io.Reader) error {
	return errors.New("disk full")
}

func TestUpdateScreenTime_StorageFailureLeavesCounter(t *testing.T) {
	env := newTestEnv(t)
	res := registerAndLogin(t, env, "storage_fail_user")
	env.service.files = failingStorage{env.files}

	_, err := env.service.UpdateScreenTime(context.Background(), res.Session, UpdateScreenTimeParams{
		DeltaMinutes: 5,
		Screenshot:   &Screenshot{Filename: "shot.png", Content: strings.NewReader("png")},
	})
	require.ErrorContains(t, err, "disk full")
	require.Zero(t, currentScreenTime(t, res.User.ID))

	updates, err := env.service.ListUpdates(context.Background(), res.User.ID, 0)
	require.NoError(t, err)
	require.Empty(t, updates)
}

func TestUpdateScreenTime_BroadcastsDashboardEvent(t *testing.T) {
	env := newTestEnv(t)
	res := registerAndLogin(t, env, "broadcast_user")

	_, err := env.service.UpdateScreenTime(context.Background(), res.Session, UpdateScreenTimeParams{DeltaMinutes: 8})
	require.NoError(t, err)

	env.events.mu.Lock()
	defer env.events.mu.Unlock()
	require.Len(t, env.events.broadcast, 1)

	var event struct {
		Type    string                   `json:"event_type"`
		Payload ScreenTimeUpdatedPayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(env.events.broadcast[0], &event))
	require.Equal(t, EventScreenTimeUpdated, event.Type)
	require.Equal(t, res.User.ID, event.Payload.UserID)
	require.Equal(t, "broadcast_user", event.Payload.Username)
	require.Equal(t, 8.0, event.Payload.ScreenTime)
}

func TestListUpdates_Validation(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.service.ListUpdates(context.Background(), 1, -1)
	require.ErrorIs(t, err, ErrValidation)
}

func TestOpenScreenshot_OtherUsersUpdateIsHidden(t *testing.T) {
	env := newTestEnv(t)
	owner := registerAndLogin(t, env, "shot_owner")
	stranger := registerAndLogin(t, env, "shot_stranger")

	_, err := env.service.UpdateScreenTime(context.Background(), owner.Session, UpdateScreenTimeParams{
		DeltaMinutes: 1,
		Screenshot:   &Screenshot{Filename: "mine.jpeg", Content: strings.NewReader("jpeg")},
	})
	require.NoError(t, err)

	updates, err := env.service.ListUpdates(context.Background(), owner.User.ID, 0)
	require.NoError(t, err)
	require.Len(t, updates, 1)

	_, _, err = env.service.OpenScreenshot(context.Background(), stranger.User.ID, updates[0].ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateScreenTime_ConcurrentSessionsLoseNothing(t *testing.T) {
	env := newTestEnv(t)
	const n = 20

	_, err := env.service.Register(context.Background(), "concurrent_user", "secret1")
	require.NoError(t, err)

	sessions := make([]*models.Session, n)
	for i := range sessions {
		sessions[i] = login(t, env, "concurrent_user", "secret1").Session
	}
	initial := currentScreenTime(t, sessions[0].UserID)

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, session := range sessions {
		wg.Add(1)
		go func(session *models.Session) {
			defer wg.Done()
			_, err := env.service.UpdateScreenTime(context.Background(), session, UpdateScreenTimeParams{DeltaMinutes: 1})
			errs <- err
		}(session)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, initial+n, currentScreenTime(t, sessions[0].UserID))

	updates, err := env.service.ListUpdates(context.Background(), sessions[0].UserID, 0)
	require.NoError(t, err)
	require.Len(t, updates, n)
}

func TestScenario_AliceDashboard(t *testing.T) {
	require.NoError(t, testDB.Reset(context.Background()))
	env := newTestEnv(t)

	_, err := env.service.Register(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	res := login(t, env, "alice", "secret1")

	user, err := env.service.UpdateScreenTime(context.Background(), res.Session, UpdateScreenTimeParams{DeltaMinutes: 30})
	require.NoError(t, err)
	require.Equal(t, 30.0, user.ScreenTime)

	user, err = env.service.UpdateScreenTime(context.Background(), res.Session, UpdateScreenTimeParams{DeltaMinutes: 15})
	require.NoError(t, err)
	require.Equal(t, 45.0, user.ScreenTime)

	users, err := env.service.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "alice", users[0].Username)
	require.Equal(t, 45.0, users[0].ScreenTime)
}
