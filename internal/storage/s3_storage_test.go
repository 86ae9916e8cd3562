package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeS3 understands just enough path-style S3 for PutObject, GetObject and
// DeleteObject.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	calls   []string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, r.Method+" "+r.URL.Path)

	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = body
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, ok := f.objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`))
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	case http.MethodDelete:
		delete(f.objects, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestS3Storage(t *testing.T) (*S3Storage, *fakeS3) {
	fake := &fakeS3{objects: map[string][]byte{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	s, err := NewS3Storage(context.Background(), S3Options{
		Bucket:    "screenshots",
		Region:    "us-east-1",
		Endpoint:  srv.URL,
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.NoError(t, err)
	return s, fake
}

func TestS3Storage_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s, fake := newTestS3Storage(t)

	key := "42/20260101T120000Z_abc_screen.png"
	require.NoError(t, s.Save(ctx, key, bytes.NewReader([]byte("png-bytes"))))

	fake.mu.Lock()
	_, stored := fake.objects["/screenshots/"+key]
	fake.mu.Unlock()
	require.True(t, stored, "object should be written path-style under the bucket")

	fake.mu.Lock()
	fake.objects["/screenshots/"+key] = []byte("png-bytes")
	fake.mu.Unlock()

	rc, err := s.Get(ctx, key)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	require.Equal(t, "png-bytes", string(got))

	require.NoError(t, s.Delete(ctx, key))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.NotContains(t, fake.objects, "/screenshots/"+key)
	require.Equal(t, []string{
		"PUT /screenshots/" + key,
		"GET /screenshots/" + key,
		"DELETE /screenshots/" + key,
	}, fake.calls)
}

func TestS3Storage_GetMissing(t *testing.T) {
	s, _ := newTestS3Storage(t)

	_, err := s.Get(context.Background(), "1/missing.png")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStorageImplementations(t *testing.T) {
	var _ Storage = (*LocalStorage)(nil)
	var _ Storage = (*S3Storage)(nil)
}
