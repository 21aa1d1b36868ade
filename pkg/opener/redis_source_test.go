package opener_test

import (
	"context"
	"testing"

	"github.com/buildbarn/bb-joinedreader/pkg/opener"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNewRedisSource(t *testing.T) {
	// Only failures that occur before contacting Redis are tested,
	// as no Redis server is available.
	t.Run("InvalidScheme", func(t *testing.T) {
		_, err := opener.NewRedisSource(context.Background(), "http://localhost:6379", "key")
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("InvalidDatabase", func(t *testing.T) {
		_, err := opener.NewRedisSource(context.Background(), "redis://localhost:6379/notanumber", "key")
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}
