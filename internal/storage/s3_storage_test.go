package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	objects map[string][]byte
	getErr  error
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func TestRemoteS3StorageRoundTrip(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	store := &remoteS3Storage{client: fake, bucket: "payroll", prefix: "prod"}
	ctx := context.Background()

	if _, err := store.Read(ctx, "accounts.json"); !errors.Is(err, ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}

	if err := store.Write(ctx, "accounts.json", []byte("[]")); err != nil {
		t.Fatalf("unexpected error writing: %v", err)
	}
	if _, ok := fake.objects["prod/accounts.json"]; !ok {
		t.Fatalf("expected object under prefixed key, got %v", fake.objects)
	}

	got, err := store.Read(ctx, "accounts.json")
	if err != nil {
		t.Fatalf("unexpected error reading: %v", err)
	}
	if string(got) != "[]" {
		t.Fatalf("expected [], got %s", got)
	}
}

func TestRemoteS3StorageWrapsOtherErrors(t *testing.T) {
	boom := errors.New("access denied")
	store := &remoteS3Storage{client: &fakeS3{getErr: boom}, bucket: "payroll"}

	_, err := store.Read(context.Background(), "accounts.json")
	if err == nil || errors.Is(err, ErrNotExist) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected error to wrap cause, got %v", err)
	}
}

func TestNewS3StorageRequiresBucket(t *testing.T) {
	if _, err := NewS3Storage(testConfig()); err == nil {
		t.Fatal("expected error for missing bucket")
	}
}
