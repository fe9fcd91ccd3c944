package statusfeed

import (
	"context"
	"fmt"

	"crowd-status/models"
	"crowd-status/util"
)

// StatusFeedApiClientMock serves the feed from a JSON file on disk
type StatusFeedApiClientMock struct {
	path string
}

// NewStatusFeedApiClientMock creates a new instance of StatusFeedApiClientMock
func NewStatusFeedApiClientMock(path string) *StatusFeedApiClientMock {
	return &StatusFeedApiClientMock{path: path}
}

// FetchStatus re-reads the file on every call so edits show up on the next refresh.
func (c *StatusFeedApiClientMock) FetchStatus(ctx context.Context) (*models.StatusFeedResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailure, err)
	}
	response, err := util.ReadStatusFeedResponseFromJSON(c.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailure, err)
	}
	if response.Data == nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailure, errMissingData)
	}
	return response, nil
}
