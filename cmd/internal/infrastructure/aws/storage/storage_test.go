package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string]string
	types   map[string]string
	deleted []string
	putErr  error
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	out := &s3.ListObjectsV2Output{}
	modified := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for key, body := range f.objects {
		if !strings.HasPrefix(key, aws.ToString(in.Prefix)) {
			continue
		}
		out.Contents = append(out.Contents, types.Object{
			Key:          aws.String(key),
			Size:         aws.Int64(int64(len(body))),
			LastModified: &modified,
		})
	}
	return out, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	ct, ok := f.types[aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("no such key")
	}
	return &s3.HeadObjectOutput{ContentType: aws.String(ct)}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, _ := io.ReadAll(in.Body)
	f.objects[aws.ToString(in.Key)] = string(body)
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObjects(_ context.Context, in *s3.DeleteObjectsInput, _ ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	for _, obj := range in.Delete.Objects {
		f.deleted = append(f.deleted, aws.ToString(obj.Key))
		delete(f.objects, aws.ToString(obj.Key))
	}
	return &s3.DeleteObjectsOutput{}, nil
}

func newFake() *fakeS3 {
	return &fakeS3{objects: map[string]string{}, types: map[string]string{}}
}

func TestStore_UploadListRemove(t *testing.T) {
	ctx := context.Background()
	fake := newFake()
	store := New(fake, "bucket", "us-east-1", "")

	require.NoError(t, store.Upload(ctx, "public/report.pdf", strings.NewReader("%PDF"), 4, "application/pdf"))

	files, err := store.List(ctx, "public/")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "report.pdf", files[0].Name)
	assert.Equal(t, "application/pdf", files[0].Type)
	assert.Equal(t, int64(4), files[0].Size)
	assert.False(t, files[0].CreatedAt.IsZero())

	require.NoError(t, store.Remove(ctx, "public/report.pdf"))
	assert.Equal(t, []string{"public/report.pdf"}, fake.deleted)
}

func TestStore_UploadError(t *testing.T) {
	fake := newFake()
	fake.putErr = errors.New("access denied")
	store := New(fake, "bucket", "us-east-1", "")

	err := store.Upload(context.Background(), "public/a.txt", strings.NewReader("a"), 1, "text/plain")
	assert.ErrorContains(t, err, "access denied")
}

func TestStore_PublicURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		key     string
		want    string
	}{
		{
			name: "virtual hosted default",
			key:  "public/care plan.pdf",
			want: "https://bucket.s3.eu-west-2.amazonaws.com/public/care%20plan.pdf",
		},
		{
			name:    "custom base",
			baseURL: "https://cdn.example.org/",
			key:     "photos/abc.jpg",
			want:    "https://cdn.example.org/photos/abc.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := New(newFake(), "bucket", "eu-west-2", tt.baseURL)
			got, err := store.PublicURL(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
