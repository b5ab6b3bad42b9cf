// pkg/services/aggregator.go
package service

import "bluepriori-dashboard/pkg/models"

// AverageByProduct groups assets by exact product name and averages their
// priority scores. Products appear in the order they are first seen.
func AverageByProduct(assets []models.Asset) []models.ProductAverage {
	type accumulator struct {
		total float64
		count int
	}

	order := make([]string, 0)
	groups := make(map[string]*accumulator)
	for _, asset := range assets {
		acc, ok := groups[asset.Product]
		if !ok {
			acc = &accumulator{}
			groups[asset.Product] = acc
			order = append(order, asset.Product)
		}
		acc.total += asset.PriorityScore
		acc.count++
	}

	result := make([]models.ProductAverage, 0, len(order))
	for _, product := range order {
		acc := groups[product]
		result = append(result, models.ProductAverage{
			Product:         product,
			AveragePriority: acc.total / float64(acc.count),
		})
	}
	return result
}

// CountBySeverity counts assets per severity bucket
func CountBySeverity(assets []models.Asset) models.SeverityCounts {
	var counts models.SeverityCounts
	for _, asset := range assets {
		counts.Add(models.BucketFor(asset.PriorityScore))
	}
	return counts
}
