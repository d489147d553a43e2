package storage

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/observability"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		dest    string
		want    Target
		wantErr bool
	}{
		{"s3://labels/sheet.pdf", Target{"labels", "sheet.pdf"}, false},
		{"s3://labels/2026/sheets/", Target{"labels", "2026/sheets/"}, false},
		{"s3://labels", Target{"labels", ""}, false},
		{"s3:///sheet.pdf", Target{}, true},
		{"s3://labels/../etc", Target{}, true},
		{"/tmp/sheet.pdf", Target{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.dest, func(t *testing.T) {
			got, err := ParseTarget(tt.dest)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTarget() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTarget() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestJoinKey(t *testing.T) {
	tests := []struct{ prefix, name, want string }{
		{"", "a.pdf", "a.pdf"},
		{"dir/", "a.pdf", "dir/a.pdf"},
		{"dir", "a.pdf", "dir/a.pdf"},
	}
	for _, tt := range tests {
		if got := JoinKey(tt.prefix, tt.name); got != tt.want {
			t.Errorf("JoinKey(%q, %q) = %q, want %q", tt.prefix, tt.name, got, tt.want)
		}
	}
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	loc, err := s.Put(context.Background(), "out/labels.pdf", "application/pdf", []byte("%PDF"))
	if err != nil {
		t.Fatal(err)
	}
	if loc != filepath.Join(dir, "out", "labels.pdf") {
		t.Errorf("location = %q", loc)
	}
	data, err := os.ReadFile(loc)
	if err != nil || string(data) != "%PDF" {
		t.Errorf("file content = %q, err %v", data, err)
	}

	if _, err := s.Put(context.Background(), "../escape.pdf", "", nil); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("traversal error = %v", err)
	}
}

type stubS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (s *stubS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	s.in = in
	s.body, _ = io.ReadAll(in.Body)
	if s.err != nil {
		return nil, s.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3StorePut(t *testing.T) {
	stub := &stubS3{}
	s := newS3Store(stub, "labels")

	loc, err := s.Put(context.Background(), "sheets/a.pdf", "application/pdf", []byte("%PDF"))
	if err != nil {
		t.Fatal(err)
	}
	if loc != "s3://labels/sheets/a.pdf" {
		t.Errorf("location = %q", loc)
	}
	if aws.ToString(stub.in.Bucket) != "labels" || aws.ToString(stub.in.Key) != "sheets/a.pdf" {
		t.Errorf("input = %s/%s", aws.ToString(stub.in.Bucket), aws.ToString(stub.in.Key))
	}
	if aws.ToString(stub.in.ContentType) != "application/pdf" || aws.ToInt64(stub.in.ContentLength) != 4 {
		t.Errorf("content type %q length %d", aws.ToString(stub.in.ContentType), aws.ToInt64(stub.in.ContentLength))
	}
	if string(stub.body) != "%PDF" {
		t.Errorf("body = %q", stub.body)
	}
}

func TestS3StorePutError(t *testing.T) {
	cause := stderrors.New("access denied")
	s := newS3Store(&stubS3{err: cause}, "labels")

	_, err := s.Put(context.Background(), "a.pdf", "application/pdf", nil)
	if !errors.Is(err, errors.ErrCodeStorageFailed) || !stderrors.Is(err, cause) {
		t.Errorf("error = %v", err)
	}
	if _, err := s.Put(context.Background(), "/abs.pdf", "", nil); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("absolute key error = %v", err)
	}
}

func TestNewS3StoreValidation(t *testing.T) {
	ctx := context.Background()
	if _, err := NewS3Store(ctx, S3Config{}); err == nil {
		t.Error("expected error without bucket")
	}
	if _, err := NewS3Store(ctx, S3Config{Bucket: "b", AccessKey: "ak"}); err == nil {
		t.Error("expected error with access key but no secret")
	}

	s, err := NewS3Store(ctx, S3Config{
		Bucket:       "b",
		Endpoint:     "localhost:9000",
		AccessKey:    "ak",
		SecretKey:    "sk",
		UsePathStyle: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.bucket != "b" {
		t.Errorf("bucket = %q", s.bucket)
	}
}

type uploadRecorder struct {
	locations []string
	errs      []error
}

func (r *uploadRecorder) OnUpload(_ context.Context, location string, _ int, _ time.Duration, err error) {
	r.locations = append(r.locations, location)
	r.errs = append(r.errs, err)
}

func TestPublishFiresHook(t *testing.T) {
	rec := &uploadRecorder{}
	observability.SetStorageHooks(rec)
	defer observability.Reset()

	store := NewFileStore(t.TempDir())
	loc, err := Publish(context.Background(), store, "sheet.pdf", "application/pdf", []byte("%PDF"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Publish(context.Background(), store, "../escape.pdf", "application/pdf", nil); err == nil {
		t.Error("Publish() with traversal key should fail")
	}

	if len(rec.locations) != 2 {
		t.Fatalf("hook calls = %d, want 2", len(rec.locations))
	}
	if rec.locations[0] != loc || rec.errs[0] != nil {
		t.Errorf("first upload = %q, %v", rec.locations[0], rec.errs[0])
	}
	if rec.locations[1] != "../escape.pdf" || rec.errs[1] == nil {
		t.Errorf("failed upload = %q, %v", rec.locations[1], rec.errs[1])
	}
}
