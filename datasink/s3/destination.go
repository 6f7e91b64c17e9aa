// Package s3 commits exported data to an object in Amazon S3 (or a compatible store). Data is
// staged in a local temporary file and uploaded with a single conditional PutObject, so that a
// partially-written export is never visible.
package s3

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/go-sif/sift/datasink"
	"github.com/go-sif/sift/errors"
)

// Scheme prefixes destinations handled by this package
const Scheme = "s3://"

// API is the subset of the S3 client used to commit exports
type API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config configures an S3 client
type Config struct {
	Region       string // Region is the AWS region of the bucket. Defaults to the environment's configuration.
	Endpoint     string // Endpoint is an optional custom endpoint (for MinIO, LocalStack, etc.)
	UsePathStyle bool   // UsePathStyle enables path-style addressing (required for MinIO)
}

// CreateClient creates an S3 client from the default AWS configuration chain
func CreateClient(ctx context.Context, conf Config) (*s3.Client, error) {
	var opts []func(*config.LoadOptions) error
	if conf.Region != "" {
		opts = append(opts, config.WithRegion(conf.Region))
	}
	awsConf, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return s3.NewFromConfig(awsConf, func(o *s3.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
		}
		o.UsePathStyle = conf.UsePathStyle
	}), nil
}

// IsS3Path returns true iff a destination path refers to S3
func IsS3Path(path string) bool {
	return strings.HasPrefix(path, Scheme)
}

// ParsePath splits an s3://bucket/key path into its bucket and key
func ParsePath(path string) (bucket string, key string, err error) {
	if !IsS3Path(path) {
		return "", "", fmt.Errorf("%s is not an %s path", path, Scheme)
	}
	parts := strings.SplitN(strings.TrimPrefix(path, Scheme), "/", 2)
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[1]) == 0 || strings.HasSuffix(parts[1], "/") {
		return "", "", fmt.Errorf("%s must be of the form %sbucket/key", path, Scheme)
	}
	return parts[0], parts[1], nil
}

// Destination is an object within an S3 bucket
type Destination struct {
	client API
	bucket string
	key    string
}

// CreateDestination returns a Destination for an s3://bucket/key path
func CreateDestination(client API, path string) (*Destination, error) {
	bucket, key, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return &Destination{client: client, bucket: bucket, key: key}, nil
}

// Path returns the s3://bucket/key path of this Destination
func (d *Destination) Path() string {
	return Scheme + d.bucket + "/" + d.key
}

// Stat reports whether the object exists, and its size
func (d *Destination) Stat(ctx context.Context) (bool, int64, error) {
	out, err := d.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.key),
	})
	if isNotFound(err) {
		return false, 0, nil
	} else if err != nil {
		return false, 0, err
	}
	return true, aws.ToInt64(out.ContentLength), nil
}

// Stage creates a local temporary file to hold the object's new content. If keepExisting is set,
// the current content of the object is downloaded into it, and its ETag is recorded so that the
// upload can be made conditional upon the object remaining unchanged.
func (d *Destination) Stage(ctx context.Context, keepExisting bool) (datasink.Staging, error) {
	f, err := os.CreateTemp("", "sift-s3-*.tmp")
	if err != nil {
		return nil, err
	}
	s := &staging{dest: d, file: f, keepExisting: keepExisting}
	if keepExisting {
		if err := s.download(ctx); err != nil {
			s.Abort()
			return nil, err
		}
	}
	return s, nil
}

type staging struct {
	dest         *Destination
	file         *os.File
	keepExisting bool
	etag         string // the ETag of the downloaded content, if any
	tail         []byte
}

func (s *staging) download(ctx context.Context) error {
	out, err := s.dest.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.dest.bucket),
		Key:    aws.String(s.dest.key),
	})
	if isNotFound(err) {
		return nil
	} else if err != nil {
		return err
	}
	defer out.Body.Close()
	s.etag = aws.ToString(out.ETag)
	s.tail, err = datasink.CopyExisting(s.file, out.Body)
	return err
}

// Tail returns the final byte of the downloaded object, if any
func (s *staging) Tail() []byte {
	return s.tail
}

func (s *staging) Write(p []byte) (int, error) {
	return s.file.Write(p)
}

// Commit uploads the staged content with a single PutObject. With ModeErrorIfExists (or when
// appending to an object which did not exist), the upload requires that no object exists. When
// appending to an existing object, the upload requires that the object has not changed.
func (s *staging) Commit(ctx context.Context, mode datasink.ExportMode) error {
	size, err := s.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.dest.bucket),
		Key:           aws.String(s.dest.key),
		Body:          s.file,
		ContentLength: aws.Int64(size),
	}
	switch {
	case mode == datasink.ModeErrorIfExists:
		input.IfNoneMatch = aws.String("*")
	case mode == datasink.ModeAppend && len(s.etag) > 0:
		input.IfMatch = aws.String(s.etag)
	case mode == datasink.ModeAppend:
		input.IfNoneMatch = aws.String("*")
	}
	_, err = s.dest.client.PutObject(ctx, input)
	if isPreconditionFailed(err) {
		if mode == datasink.ModeErrorIfExists {
			return errors.DestinationConflictError{Path: s.dest.Path()}
		}
		return fmt.Errorf("%s was modified during the export: %w", s.dest.Path(), err)
	} else if err != nil {
		return err
	}
	s.Abort()
	return nil
}

// Abort removes the local staging file
func (s *staging) Abort() error {
	s.file.Close()
	if err := os.Remove(s.file.Name()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	if stderrors.As(err, &notFound) || stderrors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchKey"
	}
	return false
}

func isPreconditionFailed(err error) bool {
	if err == nil {
		return false
	}
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "PreconditionFailed", "ConditionalRequestConflict":
			return true
		}
	}
	var httpErr interface{ HTTPStatusCode() int }
	if stderrors.As(err, &httpErr) {
		return httpErr.HTTPStatusCode() == 412
	}
	return false
}
