package statusfeed

import (
	"context"
	"errors"
	"fmt"

	"crowd-status/api"
	"crowd-status/models"
)

var errMissingData = errors.New("response has no data array")

// StatusFeedApiClient embeds the common HTTPClient. BaseURL is the full feed URL.
type StatusFeedApiClient struct {
	*api.HTTPClient
}

// NewStatusFeedApiClient creates a new instance of StatusFeedApiClient
func NewStatusFeedApiClient(httpClient *api.HTTPClient) *StatusFeedApiClient {
	return &StatusFeedApiClient{
		HTTPClient: httpClient,
	}
}

// FetchStatus downloads the feed. A document without a data array is rejected.
func (c *StatusFeedApiClient) FetchStatus(ctx context.Context) (*models.StatusFeedResponse, error) {
	var response models.StatusFeedResponse
	if err := c.GetJSON(ctx, "", map[string]string{"Cache-Control": "no-cache"}, &response); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailure, err)
	}
	if response.Data == nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailure, errMissingData)
	}
	return &response, nil
}
