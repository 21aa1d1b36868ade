package stream

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errSourceClosed = status.Error(codes.FailedPrecondition, "Source has already been closed")

// SourceOpener is a callback that is provided to NewLazySource to
// obtain the backing Source upon first use.
type SourceOpener func() (Source, error)

type lazySource struct {
	opener SourceOpener
	base   Source
}

// NewLazySource creates a Source that defers opening the backing
// Source until it is read for the first time. This permits joining
// large numbers of Sources without keeping all of them open.
//
// If opening fails, the error is returned by the current and all
// subsequent reads. Closing a Source that was never opened does not
// invoke the callback.
func NewLazySource(opener SourceOpener) Source {
	return &lazySource{
		opener: opener,
	}
}

func (s *lazySource) getBase() Source {
	if s.base == nil {
		base, err := s.opener()
		if err != nil {
			base = NewErrorSource(err)
		}
		s.base = base
		s.opener = nil
	}
	return s.base
}

func (s *lazySource) Read(p []byte) (int, error) {
	return s.getBase().Read(p)
}

func (s *lazySource) ReadByte() (byte, error) {
	return s.getBase().ReadByte()
}

func (s *lazySource) Close() error {
	if s.base == nil {
		s.opener = nil
		s.base = NewErrorSource(errSourceClosed)
		return nil
	}
	return s.base.Close()
}
