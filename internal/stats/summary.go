package stats

import (
	"math"
	"sort"
	"time"
)

// Range is a half-open download interval (Low, High]
type Range struct {
	Label string
	Low   int64
	High  int64
}

// DownloadRanges are the histogram buckets. Zero downloads falls in none
// of them and is reported separately as ZeroDownloads.
var DownloadRanges = []Range{
	{Label: "1-10", Low: 0, High: 10},
	{Label: "11-20", Low: 10, High: 20},
	{Label: "21-30", Low: 20, High: 30},
	{Label: "31-40", Low: 30, High: 40},
	{Label: "41-50", Low: 40, High: 50},
	{Label: "50+", Low: 50, High: math.MaxInt64},
}

// BucketFor returns the label of the range containing downloads
func BucketFor(downloads int64) (string, bool) {
	for _, r := range DownloadRanges {
		if downloads > r.Low && downloads <= r.High {
			return r.Label, true
		}
	}
	return "", false
}

// BucketCount is one row of the download histogram
type BucketCount struct {
	Range string `json:"range" yaml:"range"`
	Count int    `json:"count" yaml:"count"`
}

// YearSummary aggregates artifacts created in one year
type YearSummary struct {
	Year          int     `json:"year" yaml:"year"`
	ArtifactCount int     `json:"artifactCount" yaml:"artifactCount"`
	TotalSizeGB   float64 `json:"totalSizeGB" yaml:"totalSizeGB"`
}

// MonthSummary counts uploads in one calendar month
type MonthSummary struct {
	Label       string     `json:"month" yaml:"month"`
	Year        int        `json:"-" yaml:"-"`
	Month       time.Month `json:"-" yaml:"-"`
	UploadCount int        `json:"uploadCount" yaml:"uploadCount"`
}

// UserSummary counts uploads by one creator
type UserSummary struct {
	User        string `json:"user" yaml:"user"`
	UploadCount int    `json:"uploadCount" yaml:"uploadCount"`
}

// Summary holds every aggregate shown on the Summary and Graphs sheets
type Summary struct {
	Repository     string         `json:"repository" yaml:"repository"`
	TotalArtifacts int            `json:"totalArtifacts" yaml:"totalArtifacts"`
	TotalSize      int64          `json:"totalSizeBytes" yaml:"totalSizeBytes"`
	ZeroDownloads  int            `json:"zeroDownloads" yaml:"zeroDownloads"`
	DownloadRanges []BucketCount  `json:"downloadRanges" yaml:"downloadRanges"`
	Yearly         []YearSummary  `json:"yearly" yaml:"yearly"`
	Monthly        []MonthSummary `json:"monthly" yaml:"monthly"`
	Users          []UserSummary  `json:"users" yaml:"users"`
}

// Summarize computes the report aggregates. Records with an invalid
// created time are counted in totals and download metrics but excluded
// from the yearly and monthly groupings. Records without a creator are
// excluded from the per-user grouping.
func Summarize(repository string, table Table) Summary {
	s := Summary{
		Repository:     repository,
		TotalArtifacts: len(table.Records),
		DownloadRanges: make([]BucketCount, len(DownloadRanges)),
		Yearly:         []YearSummary{},
		Monthly:        []MonthSummary{},
		Users:          []UserSummary{},
	}
	for i, r := range DownloadRanges {
		s.DownloadRanges[i].Range = r.Label
	}

	years := map[int]*YearSummary{}
	months := map[string]*MonthSummary{}
	users := map[string]int{}

	for _, rec := range table.Records {
		s.TotalSize += rec.Size
		if rec.Downloads == 0 {
			s.ZeroDownloads++
		}
		if label, ok := rec.DownloadRange(); ok {
			for i := range s.DownloadRanges {
				if s.DownloadRanges[i].Range == label {
					s.DownloadRanges[i].Count++
				}
			}
		}

		if year, ok := rec.Year(); ok {
			ys, found := years[year]
			if !found {
				ys = &YearSummary{Year: year}
				years[year] = ys
			}
			ys.ArtifactCount++
			ys.TotalSizeGB += rec.SizeInGB()

			label := rec.MonthYear()
			ms, found := months[label]
			if !found {
				ms = &MonthSummary{Label: label, Year: year, Month: rec.Created.Time.Month()}
				months[label] = ms
			}
			ms.UploadCount++
		}

		if rec.CreatedBy != "" {
			users[rec.CreatedBy]++
		}
	}

	for _, ys := range years {
		ys.TotalSizeGB = round2(ys.TotalSizeGB)
		s.Yearly = append(s.Yearly, *ys)
	}
	sort.Slice(s.Yearly, func(i, j int) bool { return s.Yearly[i].Year < s.Yearly[j].Year })

	for _, ms := range months {
		s.Monthly = append(s.Monthly, *ms)
	}
	sort.Slice(s.Monthly, func(i, j int) bool {
		if s.Monthly[i].Year != s.Monthly[j].Year {
			return s.Monthly[i].Year < s.Monthly[j].Year
		}
		return s.Monthly[i].Month < s.Monthly[j].Month
	})

	for user, n := range users {
		s.Users = append(s.Users, UserSummary{User: user, UploadCount: n})
	}
	sort.Slice(s.Users, func(i, j int) bool {
		if s.Users[i].UploadCount != s.Users[j].UploadCount {
			return s.Users[i].UploadCount > s.Users[j].UploadCount
		}
		return s.Users[i].User < s.Users[j].User
	})

	return s
}

// BucketedArtifacts is the number of records that fell into a download range
func (s Summary) BucketedArtifacts() int {
	n := 0
	for _, b := range s.DownloadRanges {
		n += b.Count
	}
	return n
}
