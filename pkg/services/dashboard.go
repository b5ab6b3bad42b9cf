// pkg/services/dashboard.go
package service

import (
	"bluepriori-dashboard/pkg/interfaces"
	"bluepriori-dashboard/pkg/models"
	"bluepriori-dashboard/pkg/utils"

	"github.com/sirupsen/logrus"
)

// FetchErrorMessage is shown when the assets page cannot be loaded
const FetchErrorMessage = "Failed to fetch data from backend"

// Dispatcher runs fn on the loop owning the dashboard state
type Dispatcher interface {
	Call(fn func()) error
}

// Dashboard composes the store, pagination, sorting and detail session into
// the view consumed by render layers. It performs no I/O itself.
type Dashboard struct {
	loop   Dispatcher
	log    *utils.Logger
	store  *AssetStore
	pager  *PaginationController
	detail *DetailSession
	sort   models.SortState
}

// NewDashboard wires the components on loop. exec starts the fetches; with an
// EventLoop both are the same value.
func NewDashboard(client interfaces.InventoryClientInterface, loop Dispatcher, exec Executor, perPage int, log *utils.Logger) *Dashboard {
	store := NewAssetStore(client, exec, perPage, log)
	return &Dashboard{
		loop:   loop,
		log:    log,
		store:  store,
		pager:  NewPaginationController(store, log),
		detail: NewDetailSession(client, exec, perPage, log),
		sort:   models.DefaultSortState(),
	}
}

// NewLoopDashboard wires a dashboard on an EventLoop
func NewLoopDashboard(client interfaces.InventoryClientInterface, loop *EventLoop, perPage int, log *utils.Logger) *Dashboard {
	return NewDashboard(client, loop, loop, perPage, log)
}

// Start loads the first page
func (d *Dashboard) Start() error {
	return d.loop.Call(func() {
		d.store.Load(1)
	})
}

// View returns the current snapshot
func (d *Dashboard) View() (models.ViewModel, error) {
	var view models.ViewModel
	err := d.loop.Call(func() {
		view = d.build()
	})
	return view, err
}

func (d *Dashboard) build() models.ViewModel {
	assets := d.store.Assets()
	severity := CountBySeverity(assets)

	view := models.ViewModel{
		Rows:           SortAssets(assets, d.sort),
		ChartData:      AverageByProduct(assets),
		SeverityData:   severity,
		SeveritySeries: severity.Series(),
		Pagination:     d.store.Pagination(),
		Sort:           d.sort,
		Detail:         d.detail.State(),
		Loading:        d.store.Loading(),
		Loaded:         d.store.Loaded(),
	}
	if d.store.Err() != nil {
		view.Error = FetchErrorMessage
	}
	return view
}

// Sort toggles column key. Unknown keys leave the state untouched and return false.
func (d *Dashboard) Sort(key string) (bool, error) {
	sortKey, ok := models.ParseSortKey(key)
	if !ok {
		d.log.WithFunc().WithField("key", key).Debug("Ignoring unknown sort key")
		return false, nil
	}
	err := d.loop.Call(func() {
		d.sort = d.sort.Toggle(sortKey)
		d.log.WithFunc().WithFields(logrus.Fields{
			"key":       d.sort.Key,
			"direction": d.sort.Direction,
		}).Debug("Sort changed")
	})
	return err == nil, err
}

// Next moves to the following page
func (d *Dashboard) Next() (bool, error) {
	var moved bool
	err := d.loop.Call(func() {
		moved = d.pager.Next()
	})
	return moved, err
}

// Prev moves to the previous page
func (d *Dashboard) Prev() (bool, error) {
	var moved bool
	err := d.loop.Call(func() {
		moved = d.pager.Prev()
	})
	return moved, err
}

// GoTo jumps to page
func (d *Dashboard) GoTo(page int) (bool, error) {
	var moved bool
	err := d.loop.Call(func() {
		moved = d.pager.GoTo(page)
	})
	return moved, err
}

// Refresh re-requests the current page
func (d *Dashboard) Refresh() error {
	return d.loop.Call(func() {
		d.pager.Refresh()
	})
}

// Select opens the vulnerability detail of an asset
func (d *Dashboard) Select(assetID int64) error {
	return d.loop.Call(func() {
		d.detail.Select(assetID)
	})
}

// Close closes the vulnerability detail
func (d *Dashboard) Close() error {
	return d.loop.Call(func() {
		d.detail.Close()
	})
}
