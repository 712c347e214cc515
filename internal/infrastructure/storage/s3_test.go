package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	appconfig "campus-jobs/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.in = in
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = b
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Put(t *testing.T) {
	p := &fakePutter{}
	s := &S3Store{client: p, bucket: "resumes", publicBaseURL: "http://localhost:9000/resumes"}

	url, err := s.Put(context.Background(), "resumes/u1/1_cv.pdf", "application/pdf", []byte("pdf"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/resumes/resumes/u1/1_cv.pdf", url)
	assert.Equal(t, "resumes", aws.ToString(p.in.Bucket))
	assert.Equal(t, "resumes/u1/1_cv.pdf", aws.ToString(p.in.Key))
	assert.Equal(t, "application/pdf", aws.ToString(p.in.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(p.in.ContentLength))
	assert.Equal(t, []byte("pdf"), p.body)
}

func TestS3Store_PutError(t *testing.T) {
	s := &S3Store{client: &fakePutter{err: errors.New("denied")}, bucket: "b", publicBaseURL: "http://x"}
	_, err := s.Put(context.Background(), "k", "text/plain", nil)
	assert.Error(t, err)

	_, err = s.Put(context.Background(), "/", "text/plain", nil)
	assert.Error(t, err)
}

func TestPublicBase(t *testing.T) {
	assert.Equal(t, "https://cdn.example", publicBase(appconfig.S3Config{PublicBaseURL: "https://cdn.example/", Bucket: "b"}))
	assert.Equal(t, "http://minio:9000/b", publicBase(appconfig.S3Config{BaseEndpoint: "http://minio:9000/", Bucket: "b"}))
	assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com", publicBase(appconfig.S3Config{Bucket: "b", Region: "eu-west-1"}))
}

func TestNewS3Store(t *testing.T) {
	s, err := NewS3Store(context.Background(), appconfig.S3Config{
		Region: "us-east-1", Bucket: "resumes", BaseEndpoint: "http://localhost:9000",
		AccessKey: "minio", SecretKey: "minio123", UsePathStyle: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/resumes/a%20b", s.URL("a b"))

	_, err = NewS3Store(context.Background(), appconfig.S3Config{})
	assert.Error(t, err)
}
