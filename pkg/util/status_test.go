package util_test

import (
	"errors"
	"testing"

	"github.com/buildbarn/bb-joinedreader/pkg/testutil"
	"github.com/buildbarn/bb-joinedreader/pkg/util"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestStatusWrap(t *testing.T) {
	t.Run("PreserveCode", func(t *testing.T) {
		testutil.RequireEqualStatus(
			t,
			status.Error(codes.NotFound, "Failed to open source 3: Object not found"),
			util.StatusWrapf(status.Error(codes.NotFound, "Object not found"), "Failed to open source %d", 3))
	})

	t.Run("NonStatusError", func(t *testing.T) {
		testutil.RequireEqualStatus(
			t,
			status.Error(codes.Unknown, "Failed to open source: Disk on fire"),
			util.StatusWrap(errors.New("Disk on fire"), "Failed to open source"))
	})

	t.Run("ReplaceCode", func(t *testing.T) {
		testutil.RequireEqualStatus(
			t,
			status.Error(codes.InvalidArgument, "Invalid URL \"foo\": Missing scheme"),
			util.StatusWrapfWithCode(status.Error(codes.Internal, "Missing scheme"), codes.InvalidArgument, "Invalid URL %#v", "foo"))
	})
}
