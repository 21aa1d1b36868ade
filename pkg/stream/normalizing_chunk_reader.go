package stream

import (
	"io"
)

type normalizingChunkReader struct {
	base        ChunkReader
	chunkPolicy ChunkPolicy

	leftover []byte
	err      error
}

// newNormalizingChunkReader creates a decorator for ChunkReader that
// normalizes the sizes of the chunks returned by Read(). Empty chunks
// are omitted. Chunks smaller than the minimum size are merged with
// their successors, while chunks that exceed the maximum size are
// split up.
func newNormalizingChunkReader(base ChunkReader, chunkPolicy ChunkPolicy) ChunkReader {
	return &normalizingChunkReader{
		base:        base,
		chunkPolicy: chunkPolicy,
	}
}

func (r *normalizingChunkReader) next() ([]byte, error) {
	if len(r.leftover) > 0 {
		chunk := r.leftover
		r.leftover = nil
		return chunk, nil
	}
	if r.err != nil {
		// Errors are sticky, so that io.EOF is not followed
		// by another call into the underlying reader.
		return nil, r.err
	}
	chunk, err := r.base.Read()
	r.err = err
	return chunk, err
}

func (r *normalizingChunkReader) Read() ([]byte, error) {
	chunk, err := r.next()
	if err != nil {
		return nil, err
	}
	if len(chunk) < r.chunkPolicy.minimumSizeBytes {
		merged := append([]byte(nil), chunk...)
		for len(merged) < r.chunkPolicy.minimumSizeBytes {
			chunk, err := r.next()
			if err == io.EOF && len(merged) > 0 {
				// Only the final chunk may be smaller
				// than the minimum size.
				break
			} else if err != nil {
				return nil, err
			}
			merged = append(merged, chunk...)
		}
		chunk = merged
	}
	if len(chunk) > r.chunkPolicy.maximumSizeBytes {
		r.leftover = chunk[r.chunkPolicy.maximumSizeBytes:]
		chunk = chunk[:r.chunkPolicy.maximumSizeBytes]
	}
	return chunk, nil
}

func (r *normalizingChunkReader) Close() {
	r.base.Close()
}
