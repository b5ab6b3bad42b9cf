// pkg/models/view.go
package models

// DetailStatus is the state of the vulnerability detail view
type DetailStatus string

const (
	DetailClosed  DetailStatus = "closed"
	DetailLoading DetailStatus = "loading"
	DetailLoaded  DetailStatus = "loaded"
	DetailFailed  DetailStatus = "failed"
)

// DetailState is what the detail modal renders
type DetailState struct {
	Status          DetailStatus    `json:"status"`
	AssetID         int64           `json:"assetId,omitempty"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`
}

// Open reports whether an asset is selected
func (d DetailState) Open() bool {
	return d.Status != DetailClosed && d.Status != ""
}

// ViewModel is the snapshot handed to a render layer
type ViewModel struct {
	Rows           []Asset          `json:"rows"`
	ChartData      []ProductAverage `json:"chartData"`
	SeverityData   SeverityCounts   `json:"severityData"`
	SeveritySeries []SeveritySlice  `json:"severitySeries"`
	Pagination     PaginationMeta   `json:"pagination"`
	Sort           SortState        `json:"sort"`
	Detail         DetailState      `json:"detail"`
	Loading        bool             `json:"loading"`
	Loaded         bool             `json:"loaded"`
	Error          string           `json:"error,omitempty"`
}
