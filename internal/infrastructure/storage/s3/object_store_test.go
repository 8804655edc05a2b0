package s3

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func TestObjectStore_Put(t *testing.T) {
	fake := &fakePutter{}
	store := newObjectStore(fake, Config{Bucket: "media", PublicURL: "https://cdn.example.com/"})

	url, err := store.Put(context.Background(), "covers/a.png", strings.NewReader("png"), 3, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/covers/a.png", url)
	assert.Equal(t, "media", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "covers/a.png", aws.ToString(fake.input.Key))
	assert.Equal(t, "image/png", aws.ToString(fake.input.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(fake.input.ContentLength))
	assert.Equal(t, "png", fake.body)
}

func TestObjectStore_PutError(t *testing.T) {
	store := newObjectStore(&fakePutter{err: errors.New("denied")}, Config{Bucket: "media", Endpoint: "http://minio:9000"})

	_, err := store.Put(context.Background(), "avatars/x.jpg", strings.NewReader("x"), 1, "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "avatars/x.jpg")
}

func TestObjectStore_URLFromEndpoint(t *testing.T) {
	store := newObjectStore(&fakePutter{}, Config{Bucket: "media", Endpoint: "http://minio:9000/"})
	url, err := store.Put(context.Background(), "covers/b.webp", strings.NewReader("w"), 1, "image/webp")
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/media/covers/b.webp", url)
}

func TestNewObjectStore_UploadsOverHTTP(t *testing.T) {
	var gotPath, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, err := NewObjectStore(context.Background(), Config{
		Region:    "us-east-1",
		Endpoint:  srv.URL,
		Bucket:    "media",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "covers/c.png", strings.NewReader("png"), 3, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/media/covers/c.png", gotPath)
	assert.Equal(t, "image/png", gotType)
	assert.Equal(t, srv.URL+"/media/covers/c.png", url)
}
