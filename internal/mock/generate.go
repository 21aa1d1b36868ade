package mock

//go:generate mockgen -package mock -destination stream.go github.com/buildbarn/bb-joinedreader/pkg/stream Source,ChunkReader
