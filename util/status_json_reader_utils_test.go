package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadStatusFeedResponseFromJSON(t *testing.T) {
	content := `{
		"updatedAt": "2026-02-10T09:00:00+09:00",
		"data": [
			{
				"id": "store_1",
				"name": "８２ 三田店",
				"name_en": "82 Mita",
				"region": "関東",
				"prefecture": "東京都",
				"city": "港区",
				"matches": [
					{"date": "2026-02-14", "sport": "サッカー", "match": "日本 vs 米国 (9:30)", "status": {"table": "〇", "standing": "未使用"}}
				]
			}
		]
	}`
	path := createTempFile(t, content)

	resp, err := ReadStatusFeedResponseFromJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "2026-02-10T09:00:00+09:00", resp.UpdatedAt)
	require.Len(t, resp.Data, 1)
	v := resp.Data[0]
	assert.Equal(t, "store_1", v.ID)
	assert.Equal(t, "82 Mita", v.NameEn)
	require.Len(t, v.Matches, 1)
	assert.Equal(t, "未使用", v.Matches[0].Status.Standing)
}

func TestReadStatusFeedResponseFromJSON_Errors(t *testing.T) {
	_, err := ReadStatusFeedResponseFromJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = ReadStatusFeedResponseFromJSON(createTempFile(t, `{"data": [`))
	assert.Error(t, err)
}

func TestReadGeoReferenceFromJSON(t *testing.T) {
	path := createTempFile(t, `{
		"regions": ["関東"],
		"region_prefectures": {"関東": ["東京都"]},
		"prefecture_cities": {"東京都": ["港区"]}
	}`)

	ref, err := ReadGeoReferenceFromJSON(path)
	require.NoError(t, err)
	assert.Empty(t, ref.Validate("関東", "東京都", "港区"))
	assert.NotEmpty(t, ref.Validate("関東", "東京都", "渋谷区"))

	_, err = ReadGeoReferenceFromJSON(createTempFile(t, `{}`))
	assert.Error(t, err)
}

func TestLoadGeoReference_FallsBackToDefault(t *testing.T) {
	ref := LoadGeoReference(filepath.Join(t.TempDir(), "missing.json"))
	require.NotNil(t, ref)
	region, ok := ref.RegionOf("大阪府")
	assert.True(t, ok)
	assert.Equal(t, "近畿", region)
}

func TestShippedResources(t *testing.T) {
	feed, err := ReadStatusFeedResponseFromJSON(filepath.Join("..", "resources", "status.json"))
	require.NoError(t, err)
	assert.NotEmpty(t, feed.UpdatedAt)
	assert.NotEmpty(t, feed.Data)

	ref, err := ReadGeoReferenceFromJSON(filepath.Join("..", "resources", "geo_reference.json"))
	require.NoError(t, err)
	for _, v := range feed.Data {
		assert.Empty(t, ref.Validate(v.Region, v.Prefecture, v.City), v.ID)
	}
}
