package stream

import (
	"io"
)

// Source of bytes that can be read one byte at a time or in bulk, and
// that needs to be closed once the caller is done with it.
//
// Implementations are not safe for concurrent use. All calls against a
// single Source need to be serialized by the caller.
type Source interface {
	io.Reader
	io.ByteReader
	io.Closer
}

// maximumConsecutiveEmptyReads is the number of times ReadByte() calls
// into Read() when it keeps on returning zero bytes without an error.
const maximumConsecutiveEmptyReads = 100

type readCloserSource struct {
	r  io.Reader
	br io.ByteReader
	c  io.Closer

	// Error returned by Read() alongside the final byte obtained
	// by ReadByte(). It is returned by the next call.
	err error
}

// NewSourceFromReadCloser converts an io.ReadCloser to a Source. If
// the io.ReadCloser also implements io.ByteReader, calls to ReadByte()
// are forwarded. Otherwise, ReadByte() is implemented by issuing a
// one byte call to Read(). No buffering is performed.
func NewSourceFromReadCloser(r io.ReadCloser) Source {
	if s, ok := r.(Source); ok {
		return s
	}
	br, _ := r.(io.ByteReader)
	return &readCloserSource{
		r:  r,
		br: br,
		c:  r,
	}
}

// NewSourceFromReader converts an io.Reader to a Source whose Close()
// function does nothing.
func NewSourceFromReader(r io.Reader) Source {
	br, _ := r.(io.ByteReader)
	return &readCloserSource{
		r:  r,
		br: br,
		c:  nopCloser{},
	}
}

func (s *readCloserSource) Read(p []byte) (int, error) {
	if err := s.takeError(); err != nil {
		return 0, err
	}
	return s.r.Read(p)
}

func (s *readCloserSource) takeError() error {
	err := s.err
	s.err = nil
	return err
}

func (s *readCloserSource) ReadByte() (byte, error) {
	if s.br != nil {
		return s.br.ReadByte()
	}
	if err := s.takeError(); err != nil {
		return 0, err
	}
	var b [1]byte
	for i := 0; i < maximumConsecutiveEmptyReads; i++ {
		n, err := s.r.Read(b[:])
		if n > 0 {
			s.err = err
			return b[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
	return 0, io.ErrNoProgress
}

func (s *readCloserSource) Close() error {
	return s.c.Close()
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}
