package artifactory

// SearchResponse is the body returned by /api/search/aql
type SearchResponse struct {
	Results []Item `json:"results"`
	Range   *Range `json:"range,omitempty"`
}

// Range describes the slice of results the server returned
type Range struct {
	StartPos int `json:"start_pos"`
	EndPos   int `json:"end_pos"`
	Total    int `json:"total"`
	Limit    int `json:"limit,omitempty"`
}

// Item is one element of the results list. Every member is optional;
// absent keys decode to nil so callers can tell missing from zero.
type Item struct {
	Repo       *string `json:"repo,omitempty"`
	Path       *string `json:"path,omitempty"`
	Name       *string `json:"name,omitempty"`
	Type       *string `json:"type,omitempty"`
	Size       *int64  `json:"size,omitempty"`
	Created    *string `json:"created,omitempty"`
	CreatedBy  *string `json:"created_by,omitempty"`
	Modified   *string `json:"modified,omitempty"`
	ModifiedBy *string `json:"modified_by,omitempty"`
	Updated    *string `json:"updated,omitempty"`
	Stats      []Stat  `json:"stats,omitempty"`
}

// Stat holds the usage statistics attached when "stat" is included
type Stat struct {
	Downloads       *int64  `json:"downloads,omitempty"`
	DownloadedBy    *string `json:"downloaded_by,omitempty"`
	Downloaded      *string `json:"downloaded,omitempty"`
	RemoteDownloads *int64  `json:"remote_downloads,omitempty"`
}

// FirstStat returns the first stats entry, or nil when the item has none
func (i Item) FirstStat() *Stat {
	if len(i.Stats) == 0 {
		return nil
	}
	return &i.Stats[0]
}
