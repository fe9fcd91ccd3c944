package redis

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log/slog"
    "strings"

    "crowd-status/db"
    "crowd-status/models"
    "crowd-status/models/venue"
)

// STATUS_SNAPSHOT_KEY_V1 holds the last successfully fetched feed document.
const STATUS_SNAPSHOT_KEY_V1 = "status_snapshot_v1"

// STATUS_VENUE_KEY_FORMAT_V1 holds one venue record per key.
const STATUS_VENUE_KEY_FORMAT_V1 = "status_venue_v1:%s"

// RedisStatusDAO caches the status feed in Redis.
type RedisStatusDAO struct {
    client db.RedisClient
}

// NewRedisStatusDAO initializes a RedisStatusDAO with the Redis client.
func NewRedisStatusDAO(client db.RedisClient) *RedisStatusDAO {
    return &RedisStatusDAO{client: client}
}

// SaveSnapshot stores the whole feed document.
func (dao *RedisStatusDAO) SaveSnapshot(ctx context.Context, feed *models.StatusFeedResponse) error {
    data, err := json.Marshal(feed)
    if err != nil {
        return fmt.Errorf("failed to marshal status snapshot: %w", err)
    }
    if err := dao.client.Set(ctx, STATUS_SNAPSHOT_KEY_V1, string(data)); err != nil {
        return fmt.Errorf("failed to set status snapshot in redis: %w", err)
    }
    return nil
}

// LoadSnapshot returns the cached feed, or nil when none has been saved.
func (dao *RedisStatusDAO) LoadSnapshot(ctx context.Context) (*models.StatusFeedResponse, error) {
    str, err := dao.client.Get(ctx, STATUS_SNAPSHOT_KEY_V1)
    if errors.Is(err, db.ErrKeyNotFound) {
        return nil, nil
    }
    if err != nil {
        return nil, fmt.Errorf("failed to get status snapshot from redis: %w", err)
    }
    var feed models.StatusFeedResponse
    if err := json.Unmarshal([]byte(str), &feed); err != nil {
        return nil, fmt.Errorf("failed to unmarshal status snapshot JSON: %w", err)
    }
    return &feed, nil
}

// UpsertVenue stores one venue record under its id.
func (dao *RedisStatusDAO) UpsertVenue(ctx context.Context, v venue.Venue) error {
    data, err := json.Marshal(v)
    if err != nil {
        return fmt.Errorf("failed to marshal venue %s: %w", v.ID, err)
    }
    if err := dao.client.Set(ctx, venueKey(v.ID), string(data)); err != nil {
        return fmt.Errorf("failed to set venue %s in redis: %w", v.ID, err)
    }
    return nil
}

// GetVenue retrieves one venue record. The error wraps db.ErrKeyNotFound on a miss.
func (dao *RedisStatusDAO) GetVenue(ctx context.Context, id string) (*venue.Venue, error) {
    str, err := dao.client.Get(ctx, venueKey(id))
    if err != nil {
        return nil, fmt.Errorf("failed to get venue %s from redis: %w", id, err)
    }
    var v venue.Venue
    if err := json.Unmarshal([]byte(str), &v); err != nil {
        return nil, fmt.Errorf("failed to unmarshal venue JSON: %w", err)
    }
    return &v, nil
}

// ListVenueIDs returns the ids of every cached venue record.
func (dao *RedisStatusDAO) ListVenueIDs(ctx context.Context) ([]string, error) {
    keys, err := dao.client.Keys(ctx, venueKey("*"))
    if err != nil {
        return nil, fmt.Errorf("failed to list venue keys: %w", err)
    }
    prefix := venueKey("")
    ids := make([]string, 0, len(keys))
    for _, k := range keys {
        ids = append(ids, strings.TrimPrefix(k, prefix))
    }
    return ids, nil
}

func (dao *RedisStatusDAO) DeleteVenue(ctx context.Context, id string) error {
    if err := dao.client.Del(ctx, venueKey(id)); err != nil {
        return fmt.Errorf("failed to delete venue key %s: %w", id, err)
    }
    return nil
}

// SyncVenues upserts every venue and deletes records for ids no longer
// present. It returns the number of deleted records.
func (dao *RedisStatusDAO) SyncVenues(ctx context.Context, venues []venue.Venue) (int, error) {
    current := make(map[string]struct{}, len(venues))
    for _, v := range venues {
        if err := dao.UpsertVenue(ctx, v); err != nil {
            return 0, err
        }
        current[v.ID] = struct{}{}
    }

    cached, err := dao.ListVenueIDs(ctx)
    if err != nil {
        return 0, err
    }
    removed := 0
    for _, id := range cached {
        if _, ok := current[id]; ok {
            continue
        }
        if err := dao.DeleteVenue(ctx, id); err != nil {
            return removed, err
        }
        slog.Info("deleted stale venue cache", slog.String("component", "RedisStatusDAO"), slog.String("venue_id", id))
        removed++
    }
    return removed, nil
}

func venueKey(id string) string {
    return fmt.Sprintf(STATUS_VENUE_KEY_FORMAT_V1, id)
}
