package archive

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalArchive_Store(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backups")
	a := NewLocalArchive(dir)

	loc, err := a.Store(context.Background(), "backup-20240601.json", []byte(`{"clients":{}}`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "backup-20240601.json"), loc)

	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, `{"clients":{}}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no quedan temporales")
}

func TestLocalArchive_NombreInvalido(t *testing.T) {
	_, err := NewLocalArchive(t.TempDir()).Store(context.Background(), "../x.json", nil)
	assert.Error(t, err)
}

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Archive_Store(t *testing.T) {
	client := &fakeS3{}
	a := newS3Archive(client, "taller", "backups/")

	loc, err := a.Store(context.Background(), "b.json", []byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, "s3://taller/backups/b.json", loc)
	assert.Equal(t, "backups/b.json", aws.ToString(client.in.Key))
	assert.Equal(t, "taller", aws.ToString(client.in.Bucket))
	assert.Equal(t, []byte("{}"), client.body)
}

func TestMulti_SigueTrasUnError(t *testing.T) {
	boom := errors.New("sin red")
	local := NewLocalArchive(t.TempDir())
	m := Multi{newS3Archive(&fakeS3{err: boom}, "b", ""), local}

	loc, err := m.Store(context.Background(), "x.json", []byte("{}"))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, loc, "x.json")
}
