// pkg/models/severity.go
package models

// SeverityBucket classifies an asset by its priority score
type SeverityBucket string

const (
	BucketHigh   SeverityBucket = "High"
	BucketMedium SeverityBucket = "Medium"
	BucketLow    SeverityBucket = "Low"
)

// Bucket thresholds: High above 70, Medium above 40 up to 70, Low otherwise
const (
	highThreshold   = 70.0
	mediumThreshold = 40.0
)

// BucketFor returns the severity bucket of a priority score
func BucketFor(score float64) SeverityBucket {
	switch {
	case score > highThreshold:
		return BucketHigh
	case score > mediumThreshold:
		return BucketMedium
	default:
		return BucketLow
	}
}

// SeverityCounts holds the number of assets per bucket. All three buckets are
// always present, zero included.
type SeverityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Add counts one asset in bucket
func (c *SeverityCounts) Add(bucket SeverityBucket) {
	switch bucket {
	case BucketHigh:
		c.High++
	case BucketMedium:
		c.Medium++
	default:
		c.Low++
	}
}

// Total is the number of counted assets
func (c SeverityCounts) Total() int {
	return c.High + c.Medium + c.Low
}

// SeveritySlice is one chart entry
type SeveritySlice struct {
	Bucket SeverityBucket `json:"bucket"`
	Count  int            `json:"count"`
}

// Series returns the chart feed in High, Medium, Low order, leaving out empty buckets
func (c SeverityCounts) Series() []SeveritySlice {
	series := make([]SeveritySlice, 0, 3)
	for _, s := range []SeveritySlice{
		{Bucket: BucketHigh, Count: c.High},
		{Bucket: BucketMedium, Count: c.Medium},
		{Bucket: BucketLow, Count: c.Low},
	} {
		if s.Count > 0 {
			series = append(series, s)
		}
	}
	return series
}

// ProductAverage is the mean priority score of one product on the current page
type ProductAverage struct {
	Product         string  `json:"product"`
	AveragePriority float64 `json:"averagePriority"`
}
