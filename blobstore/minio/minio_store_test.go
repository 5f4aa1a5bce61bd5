package minio

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/hupe1980/kmeans2d/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ blobstore.BlobStore = (*Store)(nil)

func TestStore_Key(t *testing.T) {
	assert.Equal(t, "datasets/a.txt", NewStore(nil, "b", "datasets/").key("a.txt"))
	assert.Equal(t, "a.txt", NewStore(nil, "b", "").key("a.txt"))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", contentType("runs/result.json"))
	assert.Equal(t, "text/plain", contentType("points.txt"))
	assert.Equal(t, "application/octet-stream", contentType("points.txt.zst"))
}

// TestMinioStore_Integration requires a running MinIO instance.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("Skipping MinIO integration test: MINIO_ENDPOINT not set")
	}
	bucket := "test-kmeans2d"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, fmt.Sprintf("run-%d/", time.Now().UnixNano()))

	data := []byte("0 0\n0 1\n10 10\n10 11\n")
	require.NoError(t, store.Put(ctx, "points.txt", data))

	b, err := store.Open(ctx, "points.txt")
	require.NoError(t, err)
	defer b.Close()
	require.Equal(t, int64(len(data)), b.Size())

	buf := make([]byte, 4)
	n, err := b.ReadAt(ctx, buf, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "0 1\n", string(buf))

	rc, err := b.ReadRange(ctx, 8, 6)
	require.NoError(t, err)
	part, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "10 10\n", string(part))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"points.txt"}, names)

	_, err = store.Open(ctx, "missing.txt")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
