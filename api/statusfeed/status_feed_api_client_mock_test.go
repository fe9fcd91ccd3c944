package statusfeed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ StatusFeedAPI = (*StatusFeedApiClientMock)(nil)

func TestStatusFeedApiClientMock_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	require.NoError(t, os.WriteFile(path, []byte(feedBody), 0o644))

	resp, err := NewStatusFeedApiClientMock(path).FetchStatus(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "８２ 三田店", resp.Data[0].Name)
}

func TestStatusFeedApiClientMock_MissingFile(t *testing.T) {
	_, err := NewStatusFeedApiClientMock(filepath.Join(t.TempDir(), "nope.json")).FetchStatus(context.Background())
	assert.ErrorIs(t, err, ErrFetchFailure)
}

func TestStatusFeedApiClientMock_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStatusFeedApiClientMock("unused").FetchStatus(ctx)
	assert.ErrorIs(t, err, ErrFetchFailure)
	assert.ErrorIs(t, err, context.Canceled)
}
