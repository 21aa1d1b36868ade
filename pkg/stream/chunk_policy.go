package stream

// ChunkPolicy controls the sizes of the chunks returned by a
// ChunkReader created through NewChunkReaderFromSource(). The default
// size determines how many bytes are requested from the Source per
// call to Read(). The minimum and maximum sizes are enforced by
// merging and splitting the data that is returned.
type ChunkPolicy struct {
	minimumSizeBytes int
	defaultSizeBytes int
	maximumSizeBytes int
}

// ChunkSizeExactly returns a ChunkPolicy under which every chunk
// except the final one has the provided size. Because the joined
// reader never returns data of more than one Source per call, chunks
// that straddle two Sources are assembled by copying.
func ChunkSizeExactly(sizeBytes int) ChunkPolicy {
	return ChunkPolicy{
		minimumSizeBytes: sizeBytes,
		defaultSizeBytes: sizeBytes,
		maximumSizeBytes: sizeBytes,
	}
}

// ChunkSizeAtMost returns a ChunkPolicy that only puts an upper bound
// on the chunk size. Data is passed on as the Source returns it, so a
// joined reader yields chunks that end at every Source boundary.
func ChunkSizeAtMost(sizeBytes int) ChunkPolicy {
	return ChunkPolicy{
		minimumSizeBytes: 1,
		defaultSizeBytes: sizeBytes,
		maximumSizeBytes: sizeBytes,
	}
}
