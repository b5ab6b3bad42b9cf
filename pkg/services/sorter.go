// pkg/services/sorter.go
package service

import (
	"cmp"
	"slices"

	"bluepriori-dashboard/pkg/models"
)

// assetComparators compare two assets on one column, ascending
var assetComparators = map[models.SortKey]func(a, b models.Asset) int{
	models.SortByName:                 by(func(a models.Asset) string { return a.Name }),
	models.SortByVersion:              by(func(a models.Asset) string { return a.Version }),
	models.SortByProduct:              by(func(a models.Asset) string { return a.Product }),
	models.SortByPriorityScore:        by(func(a models.Asset) float64 { return a.PriorityScore }),
	models.SortByVulnerabilitiesCount: by(func(a models.Asset) int { return a.VulnerabilitiesCount }),
}

func by[T cmp.Ordered](field func(models.Asset) T) func(a, b models.Asset) int {
	return func(a, b models.Asset) int {
		return cmp.Compare(field(a), field(b))
	}
}

// SortAssets returns a sorted copy of assets. Equal keys keep their page order.
// An unknown key returns the copy in page order.
func SortAssets(assets []models.Asset, state models.SortState) []models.Asset {
	sorted := make([]models.Asset, len(assets))
	copy(sorted, assets)

	compare, ok := assetComparators[state.Key]
	if !ok {
		return sorted
	}

	if state.Direction == models.Ascending {
		slices.SortStableFunc(sorted, compare)
	} else {
		slices.SortStableFunc(sorted, func(a, b models.Asset) int {
			return compare(b, a)
		})
	}
	return sorted
}
