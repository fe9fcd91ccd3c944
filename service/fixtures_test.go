package services

import (
	"context"
	"errors"
	"sync"

	"crowd-status/api/statusfeed"
	"crowd-status/models"
	"crowd-status/models/venue"
)

func testFeed(updatedAt string) *models.StatusFeedResponse {
	return &models.StatusFeedResponse{
		UpdatedAt: updatedAt,
		Data: []venue.Venue{
			{
				ID: "store_1", Name: "８２ 三田店", NameEn: "82 Mita",
				Region: "関東", Prefecture: "東京都", City: "港区",
				Matches: []venue.Match{
					{Date: "2026-02-14", Sport: "サッカー", Match: "日本 vs 韓国 (20:00)", Status: venue.SeatStatus{Table: "〇", Standing: "△"}},
					{Date: "2026-02-14", Sport: "サッカー", Match: "日本 vs 米国 (9:30)", Status: venue.SeatStatus{Table: "×", Standing: "未使用"}},
				},
			},
			{
				ID: "store_2", Name: "HUB 梅田店",
				Region: "近畿", Prefecture: "大阪府", City: "大阪市",
				Matches: []venue.Match{
					{Date: "2026-02-12", Sport: "ラグビー", Match: "A vs B", Status: venue.SeatStatus{Table: "満席", Standing: "満席"}},
				},
			},
			// Malformed: no matches array.
			{ID: "store_3", Name: "broken", Region: "関東"},
		},
	}
}

// fakeFeed returns queued results in order, repeating the last one.
type fakeFeed struct {
	mu      sync.Mutex
	results []fakeResult
	calls   int
}

type fakeResult struct {
	feed *models.StatusFeedResponse
	err  error
}

var errUpstream = errors.New("upstream down")

func (f *fakeFeed) FetchStatus(ctx context.Context) (*models.StatusFeedResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	f.calls++
	r := f.results[i]
	if r.err != nil {
		return nil, fmtFetchErr(r.err)
	}
	return r.feed, nil
}

func fmtFetchErr(err error) error {
	return errors.Join(statusfeed.ErrFetchFailure, err)
}

type recordingNotifier struct {
	mu      sync.Mutex
	updates []string
}

func (n *recordingNotifier) NotifyDatasetUpdated(updatedAt string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updates = append(n.updates, updatedAt)
}
