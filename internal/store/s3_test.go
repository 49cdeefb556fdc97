package store

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 is a minimal path-style S3 endpoint backed by a map.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.objects[r.URL.Path] = body
		f.types[r.URL.Path] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, ok := f.objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+
				`<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newFakeS3Sink(t *testing.T, prefix string) (*S3Sink, *fakeS3) {
	t.Helper()
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	t.Setenv("AWS_CONFIG_FILE", "/nonexistent")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/nonexistent")

	fake := &fakeS3{objects: make(map[string][]byte), types: make(map[string]string)}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	sink, err := NewS3Sink(context.Background(), S3Config{
		Bucket:       "filters",
		Prefix:       prefix,
		Endpoint:     srv.URL,
		UsePathStyle: true,
		AccessKey:    "test",
		SecretKey:    "test",
	})
	require.NoError(t, err)
	return sink, fake
}

func TestS3Sink_PutGet(t *testing.T) {
	ctx := context.Background()
	sink, fake := newFakeS3Sink(t, "survey")

	require.NoError(t, sink.Put(ctx, "sdss.parquet", []byte("PAR1")))

	assert.Equal(t, []byte("PAR1"), fake.objects["/filters/survey/sdss.parquet"])
	assert.Equal(t, parquetContentType, fake.types["/filters/survey/sdss.parquet"])

	got, err := sink.Get(ctx, "sdss.parquet")
	require.NoError(t, err)
	assert.Equal(t, []byte("PAR1"), got)
}

func TestS3Sink_GetMissing(t *testing.T) {
	sink, _ := newFakeS3Sink(t, "")

	_, err := sink.Get(context.Background(), "missing.parquet")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNewS3Sink_RequiresBucket(t *testing.T) {
	_, err := NewS3Sink(context.Background(), S3Config{})
	require.Error(t, err)
}

func TestNewS3Sink_AssumeRole(t *testing.T) {
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")

	sink, err := NewS3Sink(context.Background(), S3Config{
		Bucket:    "filters",
		AccessKey: "test",
		SecretKey: "test",
		RoleARN:   "arn:aws:iam::000000000000:role/filters-writer",
	})
	require.NoError(t, err)
	assert.Equal(t, defaultRegion, sink.cfg.Region)
	assert.Equal(t, parquetContentType, sink.cfg.ContentType)
}
