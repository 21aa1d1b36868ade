package opener

import (
	"context"

	"github.com/buildbarn/bb-joinedreader/pkg/stream"
	"github.com/buildbarn/bb-joinedreader/pkg/util"

	"go.opencensus.io/trace"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// getSourceKind returns the name of the kind of Source described by a
// configuration message. It is used as a label for metrics.
func getSourceKind(configuration *SourceConfiguration) (string, error) {
	if configuration == nil {
		return "", status.Error(codes.InvalidArgument, "Source configuration not specified")
	}
	var kinds []string
	if configuration.File != "" {
		kinds = append(kinds, "file")
	}
	if configuration.Bucket != nil {
		kinds = append(kinds, "bucket")
	}
	if configuration.Redis != nil {
		kinds = append(kinds, "redis")
	}
	if configuration.HTTP != nil {
		kinds = append(kinds, "http")
	}
	if configuration.Joined != nil {
		kinds = append(kinds, "joined")
	}
	switch len(kinds) {
	case 0:
		return "", status.Error(codes.InvalidArgument, "Configuration did not contain a supported source")
	case 1:
		return kinds[0], nil
	default:
		return "", status.Errorf(codes.InvalidArgument, "Configuration contains multiple sources: %v", kinds)
	}
}

// ValidateConfiguration checks that a configuration message and all
// of its nested configuration messages describe exactly one Source.
func ValidateConfiguration(configuration *SourceConfiguration) error {
	kind, err := getSourceKind(configuration)
	if err != nil {
		return err
	}
	if kind == "joined" {
		for i := range configuration.Joined.Sources {
			if err := ValidateConfiguration(&configuration.Joined.Sources[i]); err != nil {
				return util.StatusWrapf(err, "Source %d", i)
			}
		}
	}
	return nil
}

// NewSourceFromConfiguration opens a Source based on a configuration
// message. Every Source is decorated to expose Prometheus metrics,
// labeled by the kind of the Source.
//
// Sources that are part of a joined configuration are validated
// immediately, but are only opened once reading reaches them.
func NewSourceFromConfiguration(ctx context.Context, configuration *SourceConfiguration) (stream.Source, error) {
	ctx, span := trace.StartSpan(ctx, "opener.NewSourceFromConfiguration")
	defer span.End()

	s, kind, err := newSourceFromConfiguration(ctx, configuration)
	span.AddAttributes(trace.StringAttribute("kind", kind))
	if err != nil {
		span.SetStatus(trace.Status{
			Code:    int32(status.Code(err)),
			Message: err.Error(),
		})
		return nil, err
	}
	return stream.NewMetricsSource(s, kind), nil
}

func newSourceFromConfiguration(ctx context.Context, configuration *SourceConfiguration) (stream.Source, string, error) {
	kind, err := getSourceKind(configuration)
	if err != nil {
		return nil, "", err
	}
	var s stream.Source
	switch kind {
	case "file":
		s, err = NewFileSource(configuration.File)
	case "bucket":
		s, err = NewBucketSourceFromURL(ctx, configuration.Bucket.URL, configuration.Bucket.Key)
	case "redis":
		s, err = NewRedisSource(ctx, configuration.Redis.URL, configuration.Redis.Key)
	case "http":
		s, err = NewHTTPSource(ctx, configuration.HTTP.URL, configuration.HTTP.Headers)
	case "joined":
		if err := ValidateConfiguration(configuration); err != nil {
			return nil, kind, err
		}
		children := make([]stream.Source, 0, len(configuration.Joined.Sources))
		for i := range configuration.Joined.Sources {
			childConfiguration := &configuration.Joined.Sources[i]
			index := i
			children = append(children, stream.NewLazySource(func() (stream.Source, error) {
				s, err := NewSourceFromConfiguration(ctx, childConfiguration)
				if err != nil {
					return nil, util.StatusWrapf(err, "Failed to open source %d", index)
				}
				return s, nil
			}))
		}
		s = stream.NewJoinedReader(children...)
	}
	return s, kind, err
}
