package opener

import (
	"bytes"
	"context"

	"github.com/buildbarn/bb-joinedreader/pkg/stream"
	"github.com/buildbarn/bb-joinedreader/pkg/util"
	"github.com/go-redis/redis/v8"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NewRedisSource fetches the value of a key stored in Redis and
// returns a Source that yields its contents. The value is fetched in
// its entirety, as Redis provides no way to stream values.
func NewRedisSource(ctx context.Context, url, key string) (stream.Source, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, util.StatusWrapfWithCode(err, codes.InvalidArgument, "Invalid Redis URL %#v", url)
	}
	client := redis.NewClient(options)
	defer client.Close()

	value, err := client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, status.Errorf(codes.NotFound, "Key %#v not found", key)
	} else if err != nil {
		return nil, util.StatusWrapfWithCode(err, codes.Unavailable, "Failed to get key %#v", key)
	}
	return stream.NewSourceFromReader(bytes.NewReader(value)), nil
}
