// pkg/handlers/mocks.go
package handlers

import (
	"bluepriori-dashboard/pkg/models"

	"github.com/stretchr/testify/mock"
)

type MockDashboard struct {
	mock.Mock
}

func (m *MockDashboard) View() (models.ViewModel, error) {
	args := m.Called()
	return args.Get(0).(models.ViewModel), args.Error(1)
}

func (m *MockDashboard) Sort(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

func (m *MockDashboard) Next() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

func (m *MockDashboard) Prev() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

func (m *MockDashboard) Refresh() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockDashboard) Select(assetID int64) error {
	args := m.Called(assetID)
	return args.Error(0)
}

func (m *MockDashboard) Close() error {
	args := m.Called()
	return args.Error(0)
}
