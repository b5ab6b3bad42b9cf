package interfaces

import (
	"context"

	"bluepriori-dashboard/pkg/models"
)

// InventoryClientInterface reads the remote inventory API
type InventoryClientInterface interface {
	// ListAssets fetches one page of assets with its pagination metadata
	ListAssets(ctx context.Context, page, perPage int) (*models.AssetPage, error)
	// GetAssetVulnerabilities fetches the vulnerabilities of one asset
	GetAssetVulnerabilities(ctx context.Context, assetID int64, page, perPage int) ([]models.Vulnerability, error)
}

// DetailCacheInterface stores vulnerability lists per asset for a short time
type DetailCacheInterface interface {
	Get(ctx context.Context, assetID int64) ([]models.Vulnerability, bool)
	Set(ctx context.Context, assetID int64, vulns []models.Vulnerability) error
	Close() error
}

// DashboardInterface is what a render boundary drives
type DashboardInterface interface {
	// View returns the current snapshot
	View() (models.ViewModel, error)
	// Sort toggles the given column; false when the key is not sortable
	Sort(key string) (bool, error)
	// Next moves to the following page; false when there is none
	Next() (bool, error)
	// Prev moves to the previous page; false when there is none
	Prev() (bool, error)
	// Refresh re-requests the current page
	Refresh() error
	// Select opens the detail view for an asset
	Select(assetID int64) error
	// Close closes the detail view
	Close() error
}
