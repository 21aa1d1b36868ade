package opener

import (
	"context"
	"net/http"

	"github.com/buildbarn/bb-joinedreader/pkg/stream"
	"github.com/buildbarn/bb-joinedreader/pkg/util"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// statusCodeFromHTTPStatus converts an HTTP status code to a gRPC
// status code.
func statusCodeFromHTTPStatus(httpStatus int) codes.Code {
	switch httpStatus {
	case http.StatusBadRequest:
		return codes.InvalidArgument
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusForbidden:
		return codes.PermissionDenied
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusTooManyRequests:
		return codes.ResourceExhausted
	case http.StatusNotImplemented:
		return codes.Unimplemented
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return codes.Unavailable
	default:
		return codes.Unknown
	}
}

// NewHTTPSource issues an HTTP GET request and returns a Source that
// yields the response body. Responses with a status code other than
// 2xx are converted to errors.
func NewHTTPSource(ctx context.Context, url string, headers map[string]string) (stream.Source, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, util.StatusWrapfWithCode(err, codes.InvalidArgument, "Invalid HTTP URL %#v", url)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, util.StatusWrapfWithCode(err, codes.Unavailable, "Failed to fetch %#v", url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, status.Errorf(statusCodeFromHTTPStatus(resp.StatusCode), "Failed to fetch %#v: HTTP %s", url, resp.Status)
	}
	return stream.NewSourceFromReadCloser(resp.Body), nil
}
