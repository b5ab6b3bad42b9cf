package service

import (
	"testing"

	"bluepriori-dashboard/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestAverageByProduct(t *testing.T) {
	assets := []models.Asset{
		{Product: "A", PriorityScore: 10},
		{Product: "A", PriorityScore: 30},
		{Product: "B", PriorityScore: 50},
	}

	assert.Equal(t, []models.ProductAverage{
		{Product: "A", AveragePriority: 20.0},
		{Product: "B", AveragePriority: 50.0},
	}, AverageByProduct(assets))
}

func TestAverageByProduct_FirstSeenOrder(t *testing.T) {
	assets := []models.Asset{
		{Product: "Server", PriorityScore: 90},
		{Product: "Library", PriorityScore: 10},
		{Product: "Server", PriorityScore: 60},
		{Product: "library", PriorityScore: 40},
	}

	result := AverageByProduct(assets)
	assert.Equal(t, []models.ProductAverage{
		{Product: "Server", AveragePriority: 75},
		{Product: "Library", AveragePriority: 10},
		{Product: "library", AveragePriority: 40},
	}, result)
}

func TestAverageByProduct_Empty(t *testing.T) {
	result := AverageByProduct(nil)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestCountBySeverity(t *testing.T) {
	assets := []models.Asset{
		{PriorityScore: 0},
		{PriorityScore: 40},
		{PriorityScore: 40.0001},
		{PriorityScore: 70},
		{PriorityScore: 70.0001},
		{PriorityScore: 100},
	}

	counts := CountBySeverity(assets)
	assert.Equal(t, models.SeverityCounts{High: 2, Medium: 2, Low: 2}, counts)
	assert.Equal(t, len(assets), counts.Total())
}

func TestCountBySeverity_ReportsZeroBuckets(t *testing.T) {
	counts := CountBySeverity([]models.Asset{{PriorityScore: 95}})
	assert.Equal(t, models.SeverityCounts{High: 1}, counts)
	assert.Equal(t, []models.SeveritySlice{{Bucket: models.BucketHigh, Count: 1}}, counts.Series())
}
