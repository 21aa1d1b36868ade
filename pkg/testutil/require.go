package testutil

import (
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/status"
)

// RequireEqualStatus asserts that two errors have the same gRPC status
// code and message. Errors can't be compared using require.Equal(),
// as the underlying protobuf messages carry internal state that may
// differ even if the messages are equal.
func RequireEqualStatus(t testing.TB, want, got error) {
	t.Helper()

	wantProto := status.Convert(want).Proto()
	gotProto := status.Convert(got).Proto()
	require.True(t, proto.Equal(wantProto, gotProto), "Not equal:\nexpected: %s\nactual  : %s", wantProto, gotProto)
}
