// Package stats flattens AQL search results into typed records and
// aggregates them into the summaries shown in a repository report.
package stats

import (
	"math"
	"strings"

	"github.com/harness/ar-stats/internal/artifactory"

	"github.com/rs/zerolog/log"
)

// NotAvailable is substituted for usage statistics an item does not carry
const NotAvailable = "N/A"

const bytesPerGB = 1 << 30

// Record is one artifact row. String members are empty when the server
// omitted them. Downloads is 0 and DownloadedBy / LastDownloaded are
// NotAvailable when the item has no stats entry.
type Record struct {
	Repo           string
	Path           string
	Name           string
	Type           string
	Size           int64
	Created        Timestamp
	CreatedBy      string
	Modified       Timestamp
	ModifiedBy     string
	Updated        string
	Downloads      int64
	DownloadedBy   string
	LastDownloaded string
}

// Table is the normalized result set for one repository
type Table struct {
	Records []Record
	// HasCreated is false when no item carried a created value, in which
	// case every date grouping is empty.
	HasCreated bool
}

// Normalize converts a search response into a Table. A nil response or
// a missing results list produces an empty table.
func Normalize(resp *artifactory.SearchResponse, filter Filter) Table {
	var table Table
	if resp == nil {
		log.Warn().Msg("'created' column is missing")
		return table
	}

	table.Records = make([]Record, 0, len(resp.Results))
	skipped := 0
	for _, item := range resp.Results {
		if item.Created != nil {
			table.HasCreated = true
		}
		rec := NewRecord(item)
		if !filter.Keep(rec) {
			skipped++
			continue
		}
		table.Records = append(table.Records, rec)
	}

	if skipped > 0 {
		log.Debug().Int("skipped", skipped).Int("kept", len(table.Records)).Msg("Filtered artifacts")
	}
	if !table.HasCreated {
		log.Warn().Msg("'created' column is missing")
	}
	return table
}

// NewRecord decodes one item, applying the documented defaults and
// stripping zone offsets from created and modified
func NewRecord(item artifactory.Item) Record {
	rec := Record{
		Repo:           deref(item.Repo),
		Path:           deref(item.Path),
		Name:           deref(item.Name),
		Type:           deref(item.Type),
		CreatedBy:      deref(item.CreatedBy),
		ModifiedBy:     deref(item.ModifiedBy),
		Updated:        deref(item.Updated),
		Created:        ParseTimestamp(deref(item.Created)).Naive(),
		Modified:       ParseTimestamp(deref(item.Modified)).Naive(),
		DownloadedBy:   NotAvailable,
		LastDownloaded: NotAvailable,
	}
	if item.Size != nil {
		rec.Size = *item.Size
	}
	if stat := item.FirstStat(); stat != nil {
		if stat.Downloads != nil {
			rec.Downloads = *stat.Downloads
		}
		if stat.DownloadedBy != nil {
			rec.DownloadedBy = *stat.DownloadedBy
		}
		if stat.Downloaded != nil {
			rec.LastDownloaded = *stat.Downloaded
		}
	}
	return rec
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FullPath joins path and name the way Artifactory displays them.
// Items at the repository root have path ".".
func (r Record) FullPath() string {
	p := strings.Trim(r.Path, "/")
	if p == "" || p == "." {
		return r.Name
	}
	return p + "/" + r.Name
}

// SizeInGB converts Size to GiB rounded to two decimals
func (r Record) SizeInGB() float64 {
	return round2(float64(r.Size) / bytesPerGB)
}

// Year of creation; ok is false when Created is not a valid time
func (r Record) Year() (year int, ok bool) {
	if !r.Created.Valid {
		return 0, false
	}
	return r.Created.Time.Year(), true
}

// Month of creation, 1-12; ok is false when Created is not a valid time
func (r Record) Month() (month int, ok bool) {
	if !r.Created.Valid {
		return 0, false
	}
	return int(r.Created.Time.Month()), true
}

// MonthYear labels the creation month, e.g. "Jan 2024"
func (r Record) MonthYear() string {
	if !r.Created.Valid {
		return ""
	}
	return r.Created.Time.Format("Jan 2006")
}

// DownloadRange returns the histogram bucket for Downloads
func (r Record) DownloadRange() (string, bool) {
	return BucketFor(r.Downloads)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
