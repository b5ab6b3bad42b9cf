// pkg/models/sort.go
package models

// SortKey names a sortable Asset column
type SortKey string

const (
	SortByName                 SortKey = "name"
	SortByVersion              SortKey = "version"
	SortByProduct              SortKey = "product"
	SortByPriorityScore        SortKey = "priority_score"
	SortByVulnerabilitiesCount SortKey = "vulnerabilities_count"
)

// SortKeys lists the columns in table order
var SortKeys = []SortKey{
	SortByName,
	SortByVersion,
	SortByProduct,
	SortByPriorityScore,
	SortByVulnerabilitiesCount,
}

// ParseSortKey reports whether raw is one of the sortable columns
func ParseSortKey(raw string) (SortKey, bool) {
	for _, k := range SortKeys {
		if string(k) == raw {
			return k, true
		}
	}
	return "", false
}

// Direction is the ordering direction of a column
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Flip returns the opposite direction
func (d Direction) Flip() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Arrow is the indicator shown next to the active column header
func (d Direction) Arrow() string {
	if d == Ascending {
		return "↑"
	}
	return "↓"
}

// SortState is the active column and direction of the assets table
type SortState struct {
	Key       SortKey   `json:"key"`
	Direction Direction `json:"direction"`
}

// DefaultSortState orders by priority score, highest first
func DefaultSortState() SortState {
	return SortState{Key: SortByPriorityScore, Direction: Descending}
}

// Toggle flips the direction when key is already active, otherwise switches to key descending
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key == key {
		return SortState{Key: key, Direction: s.Direction.Flip()}
	}
	return SortState{Key: key, Direction: Descending}
}

// Indicator returns the arrow for key, or "" when key is not the active column
func (s SortState) Indicator(key SortKey) string {
	if s.Key != key {
		return ""
	}
	return s.Direction.Arrow()
}

var sortKeyTitles = map[SortKey]string{
	SortByName:                 "Name",
	SortByVersion:              "Version",
	SortByProduct:              "Product",
	SortByPriorityScore:        "Priority Score",
	SortByVulnerabilitiesCount: "Vulnerabilities Count",
}

// Title is the column header of the key
func (k SortKey) Title() string {
	return sortKeyTitles[k]
}
