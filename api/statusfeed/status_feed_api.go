package statusfeed

import (
	"context"
	"encoding/json"
	"errors"
	"net"

	"crowd-status/api"
	"crowd-status/models"
)

// ErrFetchFailure wraps every network, HTTP or parse failure of the feed.
var ErrFetchFailure = errors.New("status feed fetch failed")

// StatusFeedAPI defines the interface for retrieving the crowd status feed
type StatusFeedAPI interface {
	FetchStatus(ctx context.Context) (*models.StatusFeedResponse, error)
}

// FailureReason buckets a fetch error for metrics.
func FailureReason(err error) string {
	var statusErr *api.StatusError
	var decodeErr *api.DecodeError
	var syntaxErr *json.SyntaxError
	var netErr net.Error
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.As(err, &statusErr):
		return "http_status"
	case errors.As(err, &decodeErr), errors.As(err, &syntaxErr), errors.Is(err, errMissingData):
		return "invalid_format"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}
	return "network"
}
