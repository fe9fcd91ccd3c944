// models/status_feed_response.go
package models

import "crowd-status/models/venue"

// StatusFeedResponse is the crowd status document published by the venue operator.
type StatusFeedResponse struct {
    UpdatedAt string        `json:"updatedAt"`
    Data      []venue.Venue `json:"data"`
}
