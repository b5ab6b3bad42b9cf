package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"bluepriori-dashboard/pkg/models"
	service "bluepriori-dashboard/pkg/services"
	"bluepriori-dashboard/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupDashboardTestEnv(t *testing.T) (*fiber.App, *MockDashboard) {
	t.Helper()

	log := utils.NewLogger(utils.Config{LogLevel: "error"})
	mockDashboard := new(MockDashboard)
	handler := NewDashboardHandler(mockDashboard, log)

	app := fiber.New(fiber.Config{
		Views: html.New("../../views", ".html"),
	})
	app.Get("/", handler.DisplayDashboard)
	app.Get("/api/view", handler.GetView)
	app.Post("/api/sort/:key", handler.SortBy)
	app.Post("/api/page/next", handler.NextPage)
	app.Post("/api/page/prev", handler.PrevPage)
	app.Post("/api/refresh", handler.Refresh)
	app.Post("/api/assets/:id/select", handler.SelectAsset)
	app.Delete("/api/detail", handler.CloseDetail)
	app.Get("/api/detail", handler.GetDetail)
	app.Get("/health", handler.Health)
	app.Get("/version", handler.Version)

	return app, mockDashboard
}

func sampleView() models.ViewModel {
	assets := []models.Asset{
		{ID: 1, Name: "openssl", Version: "3.0.1", Product: "Library", PriorityScore: 82.5, VulnerabilitiesCount: 4},
		{ID: 2, Name: "nginx", Version: "1.25.3", Product: "Server", PriorityScore: 35, VulnerabilitiesCount: 1},
	}
	severity := models.SeverityCounts{High: 1, Low: 1}
	return models.ViewModel{
		Rows: assets,
		ChartData: []models.ProductAverage{
			{Product: "Library", AveragePriority: 82.5},
			{Product: "Server", AveragePriority: 35},
		},
		SeverityData:   severity,
		SeveritySeries: severity.Series(),
		Pagination:     models.NewPaginationMeta(1, 10, 2),
		Sort:           models.DefaultSortState(),
		Detail:         models.DetailState{Status: models.DetailClosed},
		Loaded:         true,
	}
}

func decodeError(t *testing.T, body io.Reader) string {
	t.Helper()
	var payload map[string]string
	require.NoError(t, json.NewDecoder(body).Decode(&payload))
	return payload["error"]
}

func TestGetView(t *testing.T) {
	app, mockDashboard := setupDashboardTestEnv(t)
	mockDashboard.On("View").Return(sampleView(), nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/view", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var view models.ViewModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Len(t, view.Rows, 2)
	assert.Equal(t, models.SeverityCounts{High: 1, Low: 1}, view.SeverityData)
	assert.Equal(t, models.SortByPriorityScore, view.Sort.Key)
	mockDashboard.AssertExpectations(t)
}

func TestGetView_LoopStopped(t *testing.T) {
	app, mockDashboard := setupDashboardTestEnv(t)
	mockDashboard.On("View").Return(models.ViewModel{}, service.ErrLoopStopped)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/view", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestSortBy(t *testing.T) {
	tests := []struct {
		name           string
		key            string
		sorted         bool
		expectedStatus int
	}{
		{name: "known key", key: "name", sorted: true, expectedStatus: 200},
		{name: "unknown key", key: "owner", sorted: false, expectedStatus: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, mockDashboard := setupDashboardTestEnv(t)
			mockDashboard.On("Sort", tt.key).Return(tt.sorted, nil)
			if tt.sorted {
				mockDashboard.On("View").Return(sampleView(), nil)
			}

			resp, err := app.Test(httptest.NewRequest("POST", "/api/sort/"+tt.key, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if !tt.sorted {
				assert.Equal(t, "Unknown sort key", decodeError(t, resp.Body))
			}
			mockDashboard.AssertExpectations(t)
		})
	}
}

func TestPageNavigation(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		method         string
		moved          bool
		expectedStatus int
	}{
		{name: "next accepted", path: "/api/page/next", method: "Next", moved: true, expectedStatus: 202},
		{name: "next at last page", path: "/api/page/next", method: "Next", moved: false, expectedStatus: 409},
		{name: "prev accepted", path: "/api/page/prev", method: "Prev", moved: true, expectedStatus: 202},
		{name: "prev at first page", path: "/api/page/prev", method: "Prev", moved: false, expectedStatus: 409},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, mockDashboard := setupDashboardTestEnv(t)
			mockDashboard.On(tt.method).Return(tt.moved, nil)
			mockDashboard.On("View").Return(sampleView(), nil).Maybe()

			resp, err := app.Test(httptest.NewRequest("POST", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			mockDashboard.AssertExpectations(t)
		})
	}
}

func TestRefresh(t *testing.T) {
	app, mockDashboard := setupDashboardTestEnv(t)
	mockDashboard.On("Refresh").Return(nil)
	mockDashboard.On("View").Return(sampleView(), nil)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, 202, resp.StatusCode)
	mockDashboard.AssertExpectations(t)
}

func TestRefresh_Error(t *testing.T) {
	app, mockDashboard := setupDashboardTestEnv(t)
	mockDashboard.On("Refresh").Return(errors.New("boom"))

	resp, err := app.Test(httptest.NewRequest("POST", "/api/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, "Failed to refresh assets", decodeError(t, resp.Body))
}

func TestSelectAsset(t *testing.T) {
	app, mockDashboard := setupDashboardTestEnv(t)

	view := sampleView()
	view.Detail = models.DetailState{Status: models.DetailLoading, AssetID: 42}
	mockDashboard.On("Select", int64(42)).Return(nil)
	mockDashboard.On("View").Return(view, nil)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/assets/42/select", nil))
	require.NoError(t, err)
	assert.Equal(t, 202, resp.StatusCode)

	var detail models.DetailState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
	assert.Equal(t, models.DetailLoading, detail.Status)
	assert.Equal(t, int64(42), detail.AssetID)
	mockDashboard.AssertExpectations(t)
}

func TestSelectAsset_InvalidID(t *testing.T) {
	for _, id := range []string{"abc", "0", "-3"} {
		t.Run(id, func(t *testing.T) {
			app, mockDashboard := setupDashboardTestEnv(t)

			resp, err := app.Test(httptest.NewRequest("POST", "/api/assets/"+id+"/select", nil))
			require.NoError(t, err)
			assert.Equal(t, 400, resp.StatusCode)
			mockDashboard.AssertNotCalled(t, "Select", mock.Anything)
		})
	}
}

func TestCloseDetail(t *testing.T) {
	app, mockDashboard := setupDashboardTestEnv(t)
	mockDashboard.On("Close").Return(nil)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/detail", nil))
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
	mockDashboard.AssertExpectations(t)
}

func TestHealthAndVersion(t *testing.T) {
	app, _ := setupDashboardTestEnv(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "OK", string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/version", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var info map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "commit")
}

func TestDisplayDashboard(t *testing.T) {
	app, mockDashboard := setupDashboardTestEnv(t)
	mockDashboard.On("View").Return(sampleView(), nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	page := string(body)
	assert.Contains(t, page, "Assets List")
	assert.Contains(t, page, "openssl")
	assert.Contains(t, page, "82.50")
	assert.Contains(t, page, "Priority Score ↓")

	// fermer le modal avec Escape doit aussi fermer la session côté serveur
	assert.Contains(t, page, `addEventListener("cancel", () => act("DELETE", "/api/detail"))`)
	assert.Contains(t, page, "(detail.vulnerabilities || []).length")
}

func TestDisplayDashboard_Error(t *testing.T) {
	app, mockDashboard := setupDashboardTestEnv(t)
	mockDashboard.On("View").Return(models.ViewModel{}, errors.New("boom"))

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Failed to load dashboard")
}
