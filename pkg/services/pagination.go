// pkg/services/pagination.go
package service

import (
	"bluepriori-dashboard/pkg/utils"

	"github.com/sirupsen/logrus"
)

// PaginationController moves the AssetStore between pages 1..pages.
// Transitions that are not allowed are no-ops and issue no fetch.
type PaginationController struct {
	store *AssetStore
	log   *utils.Logger
}

// NewPaginationController drives store
func NewPaginationController(store *AssetStore, log *utils.Logger) *PaginationController {
	return &PaginationController{store: store, log: log}
}

// basePage is the page being requested if a load is in flight, the displayed page otherwise
func (p *PaginationController) basePage() int {
	if page, ok := p.store.PendingPage(); ok {
		return page
	}
	if p.store.Loaded() {
		return p.store.Pagination().Page
	}
	return 1
}

// Next loads the following page. It returns false when there is none.
func (p *PaginationController) Next() bool {
	if !p.store.Loaded() {
		return false
	}
	base := p.basePage()
	if base >= p.store.Pagination().Pages {
		p.log.WithFunc().WithField("page", base).Debug("No next page")
		return false
	}
	p.move(base, base+1)
	return true
}

// Prev loads the previous page. It returns false when there is none.
func (p *PaginationController) Prev() bool {
	if !p.store.Loaded() {
		return false
	}
	base := p.basePage()
	if base <= 1 {
		p.log.WithFunc().WithField("page", base).Debug("No previous page")
		return false
	}
	p.move(base, base-1)
	return true
}

// GoTo loads page. It returns false when page is outside 1..pages, and true
// without fetching when page is already displayed or requested.
func (p *PaginationController) GoTo(page int) bool {
	if !p.store.Loaded() || page < 1 || page > p.store.Pagination().Pages {
		return false
	}
	base := p.basePage()
	if page == base {
		return true
	}
	p.move(base, page)
	return true
}

// Refresh re-requests the current page without moving
func (p *PaginationController) Refresh() {
	page := p.basePage()
	p.log.WithFunc().WithField("page", page).Debug("Refreshing page")
	p.store.Load(page)
}

func (p *PaginationController) move(from, to int) {
	p.log.WithFunc().WithFields(logrus.Fields{
		"from": from,
		"to":   to,
	}).Debug("Changing page")
	p.store.Load(to)
}
