package service

import (
	"context"
	"fmt"

	"bluepriori-dashboard/pkg/models"
	"bluepriori-dashboard/pkg/utils"

	"github.com/stretchr/testify/mock"
)

type MockInventoryClient struct {
	mock.Mock
}

func (m *MockInventoryClient) ListAssets(ctx context.Context, page, perPage int) (*models.AssetPage, error) {
	args := m.Called(ctx, page, perPage)
	result, _ := args.Get(0).(*models.AssetPage)
	return result, args.Error(1)
}

func (m *MockInventoryClient) GetAssetVulnerabilities(ctx context.Context, assetID int64, page, perPage int) ([]models.Vulnerability, error) {
	args := m.Called(ctx, assetID, page, perPage)
	vulns, _ := args.Get(0).([]models.Vulnerability)
	return vulns, args.Error(1)
}

// manualExecutor records tasks so tests decide when, and in which order, fetches complete
type manualExecutor struct {
	tasks []Task
}

func (e *manualExecutor) Go(task Task) {
	e.tasks = append(e.tasks, task)
}

// complete runs task i and applies its continuation
func (e *manualExecutor) complete(i int) {
	if apply := e.tasks[i](context.Background()); apply != nil {
		apply()
	}
}

// inline runs fn immediately, standing in for the event loop in single goroutine tests
type inline struct{}

func (inline) Call(fn func()) error {
	fn()
	return nil
}

func newTestLogger() *utils.Logger {
	return utils.NewLogger(utils.Config{LogLevel: "error"})
}

// inventoryPage builds page of a total-item inventory with scores equal to the asset id
func inventoryPage(page, perPage, total int) *models.AssetPage {
	result := &models.AssetPage{
		Assets:     []models.Asset{},
		Pagination: models.NewPaginationMeta(page, perPage, total),
	}
	for id := (page-1)*perPage + 1; id <= min(page*perPage, total); id++ {
		result.Assets = append(result.Assets, models.Asset{
			ID:            int64(id),
			Name:          fmt.Sprintf("asset-%02d", id),
			Version:       "1.0.0",
			Product:       []string{"Library", "Server", "Container"}[id%3],
			PriorityScore: float64(id),
		})
	}
	return result
}
