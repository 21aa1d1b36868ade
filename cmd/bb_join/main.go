package main

import (
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"

	"github.com/buildbarn/bb-joinedreader/pkg/opener"
	"github.com/buildbarn/bb-joinedreader/pkg/stream"
	"github.com/buildbarn/bb-joinedreader/pkg/util"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ApplicationConfiguration is the top-level configuration of bb_join.
type ApplicationConfiguration struct {
	// Sources whose contents are concatenated, in order.
	Sources []opener.SourceConfiguration `json:"sources"`

	// Path of the file to which the results are written. The
	// results are written to stdout if left empty.
	OutputPath string `json:"outputPath,omitempty"`

	// Size of chunks in which data is copied. Defaults to 64 KiB.
	ChunkSizeBytes int `json:"chunkSizeBytes,omitempty"`

	// Only write chunks of exactly ChunkSizeBytes, except for the
	// final one.
	ExactChunks bool `json:"exactChunks,omitempty"`

	// Address on which Prometheus metrics are exposed.
	DiagnosticsHTTPListenAddress string `json:"diagnosticsHttpListenAddress,omitempty"`

	// Logging level, as understood by logrus.ParseLevel().
	LogLevel string `json:"logLevel,omitempty"`
}

func main() {
	if len(os.Args) != 2 {
		logrus.Fatal("Usage: bb_join bb_join.jsonnet")
	}
	var configuration ApplicationConfiguration
	if err := util.UnmarshalConfigurationFromFile(os.Args[1], &configuration); err != nil {
		logrus.Fatalf("Failed to read configuration from %s: %s", os.Args[1], err)
	}
	if configuration.LogLevel != "" {
		level, err := logrus.ParseLevel(configuration.LogLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level %#v: %s", configuration.LogLevel, err)
		}
		logrus.SetLevel(level)
	}

	if addr := configuration.DiagnosticsHTTPListenAddress; addr != "" {
		router := mux.NewRouter()
		router.Handle("/metrics", promhttp.Handler())
		go func() {
			logrus.Fatal(http.ListenAndServe(addr, router))
		}()
	}

	if err := run(context.Background(), &configuration, os.Stdout); err != nil {
		logrus.Fatal(err)
	}
}

func getChunkPolicy(configuration *ApplicationConfiguration) (stream.ChunkPolicy, error) {
	chunkSizeBytes := configuration.ChunkSizeBytes
	if chunkSizeBytes == 0 {
		chunkSizeBytes = 64 * 1024
	} else if chunkSizeBytes < 0 {
		return stream.ChunkPolicy{}, status.Errorf(codes.InvalidArgument, "Invalid chunk size: %d bytes", chunkSizeBytes)
	}
	if configuration.ExactChunks {
		return stream.ChunkSizeExactly(chunkSizeBytes), nil
	}
	return stream.ChunkSizeAtMost(chunkSizeBytes), nil
}

// run concatenates all sources and writes the results either to the
// configured output path or to stdout.
func run(ctx context.Context, configuration *ApplicationConfiguration, stdout io.Writer) error {
	chunkPolicy, err := getChunkPolicy(configuration)
	if err != nil {
		return err
	}
	s, err := opener.NewSourceFromConfiguration(ctx, &opener.SourceConfiguration{
		Joined: &opener.JoinedConfiguration{
			Sources: configuration.Sources,
		},
	})
	if err != nil {
		return util.StatusWrap(err, "Invalid source configuration")
	}
	logrus.WithField("sources", len(configuration.Sources)).Debug("Joining sources")

	if configuration.OutputPath == "" {
		return stream.IntoWriter(s, stdout, chunkPolicy)
	}

	// Write into a temporary file next to the output, so that the
	// output is only replaced if all sources could be read.
	outputPath := configuration.OutputPath
	f, err := ioutil.TempFile(filepath.Dir(outputPath), "."+filepath.Base(outputPath)+".tmp")
	if err != nil {
		s.Close()
		return util.StatusWrapfWithCode(err, codes.Internal, "Failed to create temporary file for %#v", outputPath)
	}
	if err := stream.IntoWriter(s, f, chunkPolicy); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	// Temporary files are created with mode 0600.
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(f.Name())
		return util.StatusWrapfWithCode(err, codes.Internal, "Failed to change permissions of temporary file for %#v", outputPath)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return util.StatusWrapfWithCode(err, codes.Internal, "Failed to close temporary file for %#v", outputPath)
	}
	if err := os.Rename(f.Name(), outputPath); err != nil {
		os.Remove(f.Name())
		return util.StatusWrapfWithCode(err, codes.Internal, "Failed to rename temporary file to %#v", outputPath)
	}
	logrus.WithField("path", outputPath).Info("Wrote joined output")
	return nil
}
