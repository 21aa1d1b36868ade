package stream

import (
	"io"
)

// ChunkReader is a reader that returns data in chunks of a size that
// is chosen by the implementation, as opposed to io.Reader, where the
// caller provides the buffer.
type ChunkReader interface {
	Read() ([]byte, error)
	Close()
}

type sourceChunkReader struct {
	source           Source
	defaultSizeBytes int
	err              error
}

// NewChunkReaderFromSource creates a ChunkReader that reads data from a
// Source, returning chunks that comply with the provided ChunkPolicy.
// As the joined reader never returns data from more than one Source
// per call to Read(), this can be used to obtain chunks that span
// Source boundaries. Closing the ChunkReader closes the Source.
func NewChunkReaderFromSource(s Source, chunkPolicy ChunkPolicy) ChunkReader {
	return newNormalizingChunkReader(
		&sourceChunkReader{
			source:           s,
			defaultSizeBytes: chunkPolicy.defaultSizeBytes,
		},
		chunkPolicy)
}

func (r *sourceChunkReader) Read() ([]byte, error) {
	if r.err != nil {
		// Error that was returned alongside the previous chunk.
		err := r.err
		r.err = nil
		return nil, err
	}
	chunk := make([]byte, r.defaultSizeBytes)
	n, err := r.source.Read(chunk)
	if n > 0 {
		r.err = err
		return chunk[:n], nil
	}
	return nil, err
}

func (r *sourceChunkReader) Close() {
	r.source.Close()
}

// IntoWriter copies all data from a Source into a Writer, using chunks
// that comply with the provided ChunkPolicy. The Source is closed
// regardless of whether copying succeeds. Errors returned while
// closing the Source are reported if copying succeeded.
func IntoWriter(s Source, w io.Writer, chunkPolicy ChunkPolicy) error {
	r := NewChunkReaderFromSource(s, chunkPolicy)
	for {
		chunk, err := r.Read()
		if err == io.EOF {
			return s.Close()
		} else if err != nil {
			s.Close()
			return err
		}
		if _, err := w.Write(chunk); err != nil {
			s.Close()
			return err
		}
	}
}
