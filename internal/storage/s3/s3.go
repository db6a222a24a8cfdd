package s3

import (
	"context"
	"errors"
	"fmt"
	"io"

	"openupload/internal/config"
	"openupload/internal/storage"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const (
	emptyAWSSessionToken = ""

	errFailedCreateAWSSessionFmt = "failed to create AWS session: %w"
	errFailedUploadObjectFmt     = "failed to upload object: %w"
	errFailedGetObjectFmt        = "failed to get object: %w"
	errFailedDeleteObjectFmt     = "failed to delete object: %w"
)

// Store keeps blobs as objects in a single S3 bucket.
type Store struct {
	svc      *awss3.S3
	uploader *s3manager.Uploader
	bucket   string
}

func NewStore(cfg *config.StorageConfig) (*Store, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.S3Region)}
	if cfg.AWSAccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			emptyAWSSessionToken,
		)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf(errFailedCreateAWSSessionFmt, err)
	}

	return &Store{
		svc:      awss3.New(sess),
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.S3Bucket,
	}, nil
}

// countingReader reports how many bytes the uploader pulled, since S3 does
// not echo the object size back on PutObject.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (s *Store) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	cr := &countingReader{r: r}

	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   cr,
	})
	if err != nil {
		return 0, fmt.Errorf(errFailedUploadObjectFmt, err)
	}

	return cr.n, nil
}

func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.svc.GetObjectWithContext(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf(errFailedGetObjectFmt, err)
	}

	return out.Body, nil
}

// Delete is idempotent: S3 returns success for keys that no longer exist.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.svc.DeleteObjectWithContext(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf(errFailedDeleteObjectFmt, err)
	}

	return nil
}

func isNoSuchKey(err error) bool {
	var aerr awserr.Error
	return errors.As(err, &aerr) && aerr.Code() == awss3.ErrCodeNoSuchKey
}
