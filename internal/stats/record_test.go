package stats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/harness/ar-stats/internal/artifactory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) *artifactory.SearchResponse {
	t.Helper()
	var resp artifactory.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return &resp
}

func TestNewRecord_MissingStatsUseDefaults(t *testing.T) {
	resp := decode(t, `{"results": [{"repo": "r", "path": "p", "name": "n", "size": 5}]}`)
	rec := NewRecord(resp.Results[0])

	assert.Equal(t, int64(0), rec.Downloads)
	assert.Equal(t, "N/A", rec.DownloadedBy)
	assert.Equal(t, "N/A", rec.LastDownloaded)
	assert.False(t, rec.Created.Valid)
}

func TestNewRecord_EmptyStatsListUsesDefaults(t *testing.T) {
	resp := decode(t, `{"results": [{"name": "n", "stats": []}]}`)
	rec := NewRecord(resp.Results[0])
	assert.Equal(t, int64(0), rec.Downloads)
	assert.Equal(t, NotAvailable, rec.DownloadedBy)
}

func TestNewRecord_PartialStats(t *testing.T) {
	resp := decode(t, `{"results": [{"name": "n", "stats": [{"downloads": 3}]}]}`)
	rec := NewRecord(resp.Results[0])
	assert.Equal(t, int64(3), rec.Downloads)
	assert.Equal(t, NotAvailable, rec.DownloadedBy)
	assert.Equal(t, NotAvailable, rec.LastDownloaded)
}

func TestNewRecord_FullItem(t *testing.T) {
	resp := decode(t, `{"results": [{
		"repo": "libs-release", "path": "a/b", "name": "c.jar", "type": "file",
		"size": 1073741824,
		"created": "2024-01-15T10:20:30.000+01:00", "created_by": "alice",
		"modified": "garbage", "modified_by": "bob",
		"updated": "2024-01-16T00:00:00.000Z",
		"stats": [{"downloads": 11, "downloaded_by": "ci", "downloaded": "2024-02-01T00:00:00.000Z"}]
	}]}`)
	got := NewRecord(resp.Results[0])

	want := Record{
		Repo:           "libs-release",
		Path:           "a/b",
		Name:           "c.jar",
		Type:           "file",
		Size:           1073741824,
		Created:        Timestamp{Time: time.Date(2024, 1, 15, 10, 20, 30, 0, time.UTC), Valid: true},
		CreatedBy:      "alice",
		Modified:       Timestamp{},
		ModifiedBy:     "bob",
		Updated:        "2024-01-16T00:00:00.000Z",
		Downloads:      11,
		DownloadedBy:   "ci",
		LastDownloaded: "2024-02-01T00:00:00.000Z",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewRecord() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1.0, got.SizeInGB())

	label, ok := got.DownloadRange()
	assert.True(t, ok)
	assert.Equal(t, "11-20", label)
}

func TestSizeInGB(t *testing.T) {
	tests := []struct {
		size int64
		want float64
	}{
		{size: 1073741824, want: 1.0},
		{size: 0, want: 0},
		{size: 536870912, want: 0.5},
		{size: 1610612736, want: 1.5},
		{size: 5368709, want: 0.0},
		{size: 16106127, want: 0.01},
		{size: 16106128, want: 0.02},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Record{Size: tt.size}.SizeInGB(), "size %d", tt.size)
	}
}

func TestNormalize_EmptyResults(t *testing.T) {
	table := Normalize(decode(t, `{"results": []}`), Filter{})
	assert.Empty(t, table.Records)
	assert.False(t, table.HasCreated)

	missing := Normalize(decode(t, `{}`), Filter{})
	assert.Empty(t, missing.Records)

	nilResp := Normalize(nil, Filter{})
	assert.Empty(t, nilResp.Records)
}

func TestNormalize_AppliesFilter(t *testing.T) {
	resp := decode(t, `{"results": [
		{"path": "a", "name": "x.jar", "created": "2024-01-01T00:00:00Z"},
		{"path": "a", "name": "x.pom", "created": "2024-01-01T00:00:00Z"}
	]}`)
	f, err := NewFilter(nil, []string{"**.pom"})
	require.NoError(t, err)

	table := Normalize(resp, f)
	require.Len(t, table.Records, 1)
	assert.Equal(t, "x.jar", table.Records[0].Name)
	assert.True(t, table.HasCreated)
}

func TestRecordDateParts(t *testing.T) {
	rec := Record{Created: ParseTimestamp("2023-11-05T12:00:00Z")}
	year, ok := rec.Year()
	assert.True(t, ok)
	assert.Equal(t, 2023, year)
	month, ok := rec.Month()
	assert.True(t, ok)
	assert.Equal(t, 11, month)
	assert.Equal(t, "Nov 2023", rec.MonthYear())

	var missing Record
	_, ok = missing.Year()
	assert.False(t, ok)
	_, ok = missing.Month()
	assert.False(t, ok)
	assert.Equal(t, "", missing.MonthYear())
}
