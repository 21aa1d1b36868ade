package opener

import (
	"os"

	"github.com/buildbarn/bb-joinedreader/pkg/stream"
	"github.com/buildbarn/bb-joinedreader/pkg/util"

	"google.golang.org/grpc/codes"
)

// statusCodeFromOSError picks a gRPC status code that corresponds to
// an error returned by the os package.
func statusCodeFromOSError(err error) codes.Code {
	switch {
	case os.IsNotExist(err):
		return codes.NotFound
	case os.IsPermission(err):
		return codes.PermissionDenied
	default:
		return codes.Internal
	}
}

// NewFileSource opens a file on the local file system for reading.
func NewFileSource(path string) (stream.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, util.StatusWrapfWithCode(err, statusCodeFromOSError(err), "Failed to open file %#v", path)
	}
	return stream.NewSourceFromReadCloser(f), nil
}
