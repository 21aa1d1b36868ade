package stream

import (
	"io"
)

type joinedReader struct {
	sources []Source
	next    int
	closed  bool
}

// NewJoinedReader creates a Source that returns the concatenated
// contents of a series of Sources. Sources are read in the order in
// which they are provided. Every Source that reaches end-of-file is
// closed before the next one is consulted, meaning that the returned
// Source takes ownership of all of them.
//
// A single call to Read() never returns data from more than one
// Source, even if the provided buffer could hold more. Callers that
// need full buffers should use io.ReadFull() or a ChunkReader with
// ChunkSizeExactly().
//
// The Sources are not read or validated by this function.
func NewJoinedReader(sources ...Source) Source {
	return &joinedReader{
		sources: append([]Source(nil), sources...),
	}
}

// discardCurrent removes the Source at the front and closes it. The
// Source is removed prior to closing, so that it is never closed twice.
func (r *joinedReader) discardCurrent() error {
	s := r.sources[r.next]
	r.sources[r.next] = nil
	r.next++
	return s.Close()
}

func (r *joinedReader) ReadByte() (byte, error) {
	for !r.closed && r.next < len(r.sources) {
		b, err := r.sources[r.next].ReadByte()
		if err == nil {
			return b, nil
		} else if err != io.EOF {
			return 0, err
		}
		// End of current Source reached. Continue with the
		// next one.
		if err := r.discardCurrent(); err != nil {
			return 0, err
		}
	}
	return 0, io.EOF
}

func (r *joinedReader) Read(p []byte) (int, error) {
	for !r.closed && r.next < len(r.sources) {
		n, err := r.sources[r.next].Read(p)
		if err == io.EOF {
			if n > 0 {
				// Final data of the current Source.
				// Close it right away, but don't
				// mix in data of the next Source.
				return n, r.discardCurrent()
			}
			if err := r.discardCurrent(); err != nil {
				return 0, err
			}
			continue
		}
		return n, err
	}
	return 0, io.EOF
}

func (r *joinedReader) Close() error {
	if r.closed {
		return nil
	}
	// Close all remaining Sources, even if some of them fail.
	var firstErr error
	for r.next < len(r.sources) {
		if err := r.discardCurrent(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.sources = nil
	r.next = 0
	r.closed = true
	return firstErr
}
