package store

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseBackend checks the Backend contract shared by every implementation.
func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	_, err := b.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Put(ctx, "k", []byte(`[1]`)))
	got, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `[1]`, string(got))

	require.NoError(t, b.Put(ctx, "k", []byte(`[2,3]`)))
	got, err = b.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `[2,3]`, string(got), "put replaces the value wholesale")
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, NewMemoryBackend())
}

func TestMemoryBackend_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryBackend().Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileBackend(t *testing.T) {
	b, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	exerciseBackend(t, b)
}

func TestFileBackend_SanitizesKey(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)

	require.NoError(t, b.Put(context.Background(), "../escape/key", []byte(`[]`)))

	assert.Equal(t, filepath.Join(dir, ".._escape_key.json"), b.Path("../escape/key"))
	_, err = os.Stat(b.Path("../escape/key"))
	assert.NoError(t, err)
}

func TestFileBackend_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)

	require.NoError(t, b.Put(context.Background(), DefaultKey, []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, DefaultKey+".json", entries[0].Name())
}

func TestFileBackend_RequiresDir(t *testing.T) {
	_, err := NewFileBackend("")
	assert.Error(t, err)
}

func TestRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	b, err := NewRedisBackend(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	exerciseBackend(t, b)
	assert.Zero(t, mr.TTL("k"), "values never expire")
}

func TestRedisBackend_InvalidURL(t *testing.T) {
	_, err := NewRedisBackend(context.Background(), "http://not-redis")
	assert.Error(t, err)

	_, err = NewRedisBackend(context.Background(), "")
	assert.Error(t, err)
}

// fakeS3 is an in-memory objectAPI.
type fakeS3 struct {
	objects map[string][]byte
	lastKey string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.lastKey = aws.ToString(in.Key)
	data, ok := f.objects[f.lastKey]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.lastKey = aws.ToString(in.Key)
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[f.lastKey] = data
	return &s3.PutObjectOutput{}, nil
}

func TestS3Backend(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	exerciseBackend(t, newS3Backend(fake, "bucket", "/talent/"))
	assert.Equal(t, "talent/k.json", fake.lastKey)
}

func TestS3Backend_NoPrefix(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	b := newS3Backend(fake, "bucket", "")

	require.NoError(t, b.Put(context.Background(), DefaultKey, []byte(`[]`)))
	assert.Equal(t, DefaultKey+".json", fake.lastKey)
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()

	b, err := OpenBackend(ctx, BackendConfig{Kind: KindMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryBackend{}, b)

	b, err = OpenBackend(ctx, BackendConfig{Kind: KindFile, DataDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileBackend{}, b)

	_, err = OpenBackend(ctx, BackendConfig{Kind: "floppy"})
	assert.Error(t, err)

	_, err = OpenBackend(ctx, BackendConfig{Kind: KindS3})
	assert.Error(t, err, "bucket is required")
}
