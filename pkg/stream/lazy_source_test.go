package stream_test

import (
	"io"
	"testing"

	"github.com/buildbarn/bb-joinedreader/internal/mock"
	"github.com/buildbarn/bb-joinedreader/pkg/stream"
	"github.com/buildbarn/bb-joinedreader/pkg/testutil"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestLazySource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("OpenOnFirstRead", func(t *testing.T) {
		opens := 0
		s := stream.NewLazySource(func() (stream.Source, error) {
			opens++
			return stringSource("Hello"), nil
		})
		require.Equal(t, 0, opens)

		b, err := s.ReadByte()
		require.NoError(t, err)
		require.Equal(t, byte('H'), b)
		var p [10]byte
		n, err := s.Read(p[:])
		require.NoError(t, err)
		require.Equal(t, []byte("ello"), p[:n])
		require.Equal(t, 1, opens)
		require.NoError(t, s.Close())
	})

	t.Run("CloseWithoutOpening", func(t *testing.T) {
		s := stream.NewLazySource(func() (stream.Source, error) {
			t.Fatal("Source should not be opened")
			return nil, nil
		})
		require.NoError(t, s.Close())

		_, err := s.ReadByte()
		testutil.RequireEqualStatus(t, status.Error(codes.FailedPrecondition, "Source has already been closed"), err)
	})

	t.Run("CloseAfterOpening", func(t *testing.T) {
		base := mock.NewMockSource(ctrl)
		gomock.InOrder(
			base.EXPECT().ReadByte().Return(byte(0), io.EOF),
			base.EXPECT().Close().Return(status.Error(codes.Internal, "Disk on fire")))
		s := stream.NewLazySource(func() (stream.Source, error) {
			return base, nil
		})

		_, err := s.ReadByte()
		require.Equal(t, io.EOF, err)
		testutil.RequireEqualStatus(t, status.Error(codes.Internal, "Disk on fire"), s.Close())
	})

	t.Run("OpenFailure", func(t *testing.T) {
		opens := 0
		s := stream.NewLazySource(func() (stream.Source, error) {
			opens++
			return nil, status.Error(codes.NotFound, "File not found")
		})

		var p [10]byte
		_, err := s.Read(p[:])
		testutil.RequireEqualStatus(t, status.Error(codes.NotFound, "File not found"), err)
		_, err = s.ReadByte()
		testutil.RequireEqualStatus(t, status.Error(codes.NotFound, "File not found"), err)
		require.Equal(t, 1, opens)
		require.NoError(t, s.Close())
	})

	t.Run("Joined", func(t *testing.T) {
		// Only the Source at the front of a joined reader
		// should be opened.
		opened := map[string]bool{}
		lazy := func(contents string) stream.Source {
			return stream.NewLazySource(func() (stream.Source, error) {
				opened[contents] = true
				return stringSource(contents), nil
			})
		}
		r := stream.NewJoinedReader(lazy("foo"), lazy("bar"))
		var p [10]byte
		n, err := r.Read(p[:])
		require.NoError(t, err)
		require.Equal(t, []byte("foo"), p[:n])
		require.Equal(t, map[string]bool{"foo": true}, opened)
		require.NoError(t, r.Close())
		require.Equal(t, map[string]bool{"foo": true}, opened)
	})
}
