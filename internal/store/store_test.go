package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink_PutGet(t *testing.T) {
	ctx := context.Background()
	sink := FileSink{Dir: t.TempDir()}

	require.NoError(t, sink.Put(ctx, "tables/sdss.parquet", []byte("PAR1")))

	got, err := sink.Get(ctx, "tables/sdss.parquet")
	require.NoError(t, err)
	assert.Equal(t, []byte("PAR1"), got)

	_, err = sink.Get(ctx, "tables/missing.parquet")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileSink_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	sink := FileSink{Dir: t.TempDir()}

	for _, key := range []string{"", "../outside", "a/../../outside"} {
		require.Error(t, sink.Put(ctx, key, nil), key)
	}
}

func TestFileSink_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := FileSink{Dir: t.TempDir()}
	require.ErrorIs(t, sink.Put(ctx, "k", nil), context.Canceled)
	_, err := sink.Get(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseLocation(t *testing.T) {
	loc, err := ParseLocation("s3://filters/survey/sdss.parquet")
	require.NoError(t, err)
	assert.True(t, loc.IsS3())
	assert.Equal(t, "filters", loc.Bucket)
	assert.Equal(t, "survey/sdss.parquet", loc.Key)

	loc, err = ParseLocation("out/sdss.parquet")
	require.NoError(t, err)
	assert.False(t, loc.IsS3())
	assert.Equal(t, "out", loc.Dir)
	assert.Equal(t, "sdss.parquet", loc.Key)

	for _, bad := range []string{"", "s3://", "s3://bucket", "s3://bucket/", "s3:///key"} {
		_, err := ParseLocation(bad)
		require.Error(t, err, bad)
	}
}

func TestOpen(t *testing.T) {
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	ctx := context.Background()

	sink, err := Open(ctx, Location{Dir: "out", Key: "t.parquet"}, S3Config{})
	require.NoError(t, err)
	assert.Equal(t, FileSink{Dir: "out"}, sink)

	sink, err = Open(ctx, Location{Bucket: "filters", Key: "t.parquet"}, S3Config{Bucket: "ignored", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	s3Sink, ok := sink.(*S3Sink)
	require.True(t, ok)
	assert.Equal(t, "filters", s3Sink.cfg.Bucket)
}
