package opener_test

import (
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/buildbarn/bb-joinedreader/pkg/opener"
	"github.com/buildbarn/bb-joinedreader/pkg/testutil"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNewSourceFromConfiguration(t *testing.T) {
	ctx := context.Background()
	dir, err := ioutil.TempDir("", "new_source_from_configuration")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "a"), []byte("foo"), 0o644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "b"), nil, 0o644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "c"), []byte("bar"), 0o644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("baz"))
	}))
	defer server.Close()

	t.Run("Joined", func(t *testing.T) {
		s, err := opener.NewSourceFromConfiguration(ctx, &opener.SourceConfiguration{
			Joined: &opener.JoinedConfiguration{
				Sources: []opener.SourceConfiguration{
					{File: filepath.Join(dir, "a")},
					{File: filepath.Join(dir, "b")},
					{Bucket: &opener.BucketConfiguration{
						URL: "file://" + filepath.ToSlash(dir),
						Key: "c",
					}},
					{Joined: &opener.JoinedConfiguration{
						Sources: []opener.SourceConfiguration{
							{HTTP: &opener.HTTPConfiguration{URL: server.URL}},
						},
					}},
				},
			},
		})
		require.NoError(t, err)
		data, err := ioutil.ReadAll(s)
		require.NoError(t, err)
		require.Equal(t, []byte("foobarbaz"), data)
		require.NoError(t, s.Close())
	})

	t.Run("OpenedOnDemand", func(t *testing.T) {
		// Nonexistent files should only cause failures once
		// reading reaches them.
		s, err := opener.NewSourceFromConfiguration(ctx, &opener.SourceConfiguration{
			Joined: &opener.JoinedConfiguration{
				Sources: []opener.SourceConfiguration{
					{File: filepath.Join(dir, "a")},
					{File: filepath.Join(dir, "nonexistent")},
				},
			},
		})
		require.NoError(t, err)

		var p [10]byte
		n, err := s.Read(p[:])
		require.NoError(t, err)
		require.Equal(t, []byte("foo"), p[:n])

		_, err = s.Read(p[:])
		require.Equal(t, codes.NotFound, status.Code(err))
		require.NoError(t, s.Close())

		_, err = s.Read(p[:])
		require.Equal(t, io.EOF, err)
	})

	t.Run("NoSource", func(t *testing.T) {
		_, err := opener.NewSourceFromConfiguration(ctx, &opener.SourceConfiguration{})
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "Configuration did not contain a supported source"), err)
	})

	t.Run("MultipleSources", func(t *testing.T) {
		_, err := opener.NewSourceFromConfiguration(ctx, &opener.SourceConfiguration{
			File: filepath.Join(dir, "a"),
			HTTP: &opener.HTTPConfiguration{URL: server.URL},
		})
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "Configuration contains multiple sources: [file http]"), err)
	})

	t.Run("InvalidNestedSource", func(t *testing.T) {
		// Nested configuration should be validated up front,
		// even though the sources are opened on demand.
		_, err := opener.NewSourceFromConfiguration(ctx, &opener.SourceConfiguration{
			Joined: &opener.JoinedConfiguration{
				Sources: []opener.SourceConfiguration{
					{File: filepath.Join(dir, "a")},
					{Joined: &opener.JoinedConfiguration{
						Sources: []opener.SourceConfiguration{{}},
					}},
				},
			},
		})
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "Source 1: Source 0: Configuration did not contain a supported source"), err)
	})
}
