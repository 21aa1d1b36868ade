package opener

import (
	"context"

	"github.com/buildbarn/bb-joinedreader/pkg/stream"
	"github.com/buildbarn/bb-joinedreader/pkg/util"

	"gocloud.dev/blob"
	// Bucket drivers that may be referenced by URL.
	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"

	"google.golang.org/grpc/codes"
)

// statusCodeFromBucketError converts an error code returned by
// gocloud.dev to a gRPC status code.
func statusCodeFromBucketError(err error) codes.Code {
	switch gcerrors.Code(err) {
	case gcerrors.NotFound:
		return codes.NotFound
	case gcerrors.AlreadyExists:
		return codes.AlreadyExists
	case gcerrors.InvalidArgument:
		return codes.InvalidArgument
	case gcerrors.FailedPrecondition:
		return codes.FailedPrecondition
	case gcerrors.PermissionDenied:
		return codes.PermissionDenied
	case gcerrors.ResourceExhausted:
		return codes.ResourceExhausted
	case gcerrors.Unimplemented:
		return codes.Unimplemented
	case gcerrors.Canceled:
		return codes.Canceled
	case gcerrors.DeadlineExceeded:
		return codes.DeadlineExceeded
	case gcerrors.Internal:
		return codes.Internal
	default:
		return codes.Unknown
	}
}

type bucketReadCloser struct {
	*blob.Reader
	bucket *blob.Bucket
}

func (r *bucketReadCloser) Close() error {
	err := r.Reader.Close()
	if r.bucket != nil {
		if bucketErr := r.bucket.Close(); err == nil {
			err = bucketErr
		}
	}
	if err != nil {
		return util.StatusWrapWithCode(err, statusCodeFromBucketError(err), "Failed to close bucket object")
	}
	return nil
}

func newBucketSource(ctx context.Context, bucket, ownedBucket *blob.Bucket, key string) (stream.Source, error) {
	r, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, util.StatusWrapfWithCode(err, statusCodeFromBucketError(err), "Failed to open object %#v", key)
	}
	return stream.NewSourceFromReadCloser(&bucketReadCloser{
		Reader: r,
		bucket: ownedBucket,
	}), nil
}

// NewBucketSource opens an object in an existing bucket for reading.
// The bucket is not closed when the Source is closed.
func NewBucketSource(ctx context.Context, bucket *blob.Bucket, key string) (stream.Source, error) {
	return newBucketSource(ctx, bucket, nil, key)
}

// NewBucketSourceFromURL opens a bucket by URL and opens an object in
// it for reading. Closing the Source also closes the bucket.
func NewBucketSourceFromURL(ctx context.Context, url, key string) (stream.Source, error) {
	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, util.StatusWrapfWithCode(err, codes.InvalidArgument, "Failed to open bucket %#v", url)
	}
	s, err := newBucketSource(ctx, bucket, bucket, key)
	if err != nil {
		bucket.Close()
		return nil, err
	}
	return s, nil
}
