package util

import (
    "encoding/json"
    "fmt"
    "os"

    "crowd-status/models"
    "crowd-status/models/geo"
)

// ReadStatusFeedResponseFromJSON loads a StatusFeedResponse from JSON on disk.
func ReadStatusFeedResponseFromJSON(filePath string) (*models.StatusFeedResponse, error) {
    data, err := os.ReadFile(filePath)
    if err != nil {
        return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
    }
    var resp models.StatusFeedResponse
    if err := json.Unmarshal(data, &resp); err != nil {
        return nil, fmt.Errorf("failed to unmarshal StatusFeedResponse: %w", err)
    }
    return &resp, nil
}

// ReadGeoReferenceFromJSON loads a geography reference table from JSON on disk.
func ReadGeoReferenceFromJSON(filePath string) (*geo.Reference, error) {
    data, err := os.ReadFile(filePath)
    if err != nil {
        return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
    }
    var ref geo.Reference
    if err := json.Unmarshal(data, &ref); err != nil {
        return nil, fmt.Errorf("failed to unmarshal geo reference: %w", err)
    }
    if len(ref.RegionPrefectures) == 0 {
        return nil, fmt.Errorf("geo reference %q has no regions", filePath)
    }
    return &ref, nil
}

// LoadGeoReference prefers the table on disk and falls back to the built-in one.
func LoadGeoReference(filePath string) *geo.Reference {
    if ref, err := ReadGeoReferenceFromJSON(filePath); err == nil {
        return ref
    }
    return geo.Default()
}
