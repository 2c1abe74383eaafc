package sitesync

import (
	"bytes"
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/natefinch/atomic"

	"github.com/SirSluginston/SirSluginston-Backend/internal/errs"
)

// Sink publishes a complete set of artifacts.
type Sink interface {
	Name() string
	Publish(ctx context.Context, artifacts []Artifact) error
}

// LocalSink writes artifacts to their local paths. Every artifact is staged
// next to its destination first; destinations are only replaced once all
// staging succeeded, so a failed run leaves the previous files in place.
type LocalSink struct{}

func (LocalSink) Name() string { return "local" }

func (LocalSink) Publish(_ context.Context, artifacts []Artifact) error {
	staged := make([]string, 0, len(artifacts))
	cleanup := func() {
		for _, p := range staged {
			_ = os.Remove(p)
		}
	}

	for _, a := range artifacts {
		tmp, err := stage(a)
		if err != nil {
			cleanup()
			return &errs.WriteError{Path: a.Path, Err: err}
		}
		staged = append(staged, tmp)
	}

	for i, a := range artifacts {
		if err := atomic.ReplaceFile(staged[i], a.Path); err != nil {
			cleanup()
			return &errs.WriteError{Path: a.Path, Err: err}
		}
	}
	return nil
}

func stage(a Artifact) (string, error) {
	dir := filepath.Dir(a.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(a.Path)+".*.tmp")
	if err != nil {
		return "", err
	}
	name := f.Name()
	fail := func(err error) (string, error) {
		_ = f.Close()
		_ = os.Remove(name)
		return "", err
	}
	if _, err := f.Write(a.Data); err != nil {
		return fail(err)
	}
	if err := f.Chmod(0o644); err != nil {
		return fail(err)
	}
	if err := f.Sync(); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}

type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads artifacts to bucket under prefix, keyed by file name.
type S3Sink struct {
	Client S3API
	Bucket string
	Prefix string
}

func (s S3Sink) Name() string { return "s3://" + s.Bucket }

func (s S3Sink) Key(a Artifact) string {
	return path.Join(strings.Trim(s.Prefix, "/"), filepath.Base(a.Path))
}

func (s S3Sink) Publish(ctx context.Context, artifacts []Artifact) error {
	for _, a := range artifacts {
		key := s.Key(a)
		_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:       aws.String(s.Bucket),
			Key:          aws.String(key),
			Body:         bytes.NewReader(a.Data),
			ContentType:  aws.String(a.ContentType),
			CacheControl: aws.String("no-cache"),
		})
		if err != nil {
			return &errs.WriteError{Path: "s3://" + s.Bucket + "/" + key, Err: err}
		}
	}
	return nil
}
