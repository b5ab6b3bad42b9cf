// pkg/services/store.go
package service

import (
	"context"

	"bluepriori-dashboard/pkg/interfaces"
	"bluepriori-dashboard/pkg/models"
	"bluepriori-dashboard/pkg/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type requestIDKey struct{}

// WithRequestID tags ctx with the correlation id sent to the inventory API
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the correlation id carried by ctx, if any
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// pageTicket identifies one list fetch. Only the ticket matching the store's
// latest sequence may be applied.
type pageTicket struct {
	seq  uint64
	page int
	id   string
}

// AssetStore holds the current page of assets and its pagination metadata.
// All methods must be called from the owning event loop.
type AssetStore struct {
	client  interfaces.InventoryClientInterface
	exec    Executor
	log     *utils.Logger
	perPage int

	assets     []models.Asset
	pagination models.PaginationMeta
	loaded     bool
	err        error

	seq     uint64
	pending *pageTicket
}

// NewAssetStore creates an empty store fetching perPage assets per page
func NewAssetStore(client interfaces.InventoryClientInterface, exec Executor, perPage int, log *utils.Logger) *AssetStore {
	return &AssetStore{
		client:  client,
		exec:    exec,
		log:     log,
		perPage: perPage,
	}
}

// Load requests page. Any earlier request still in flight becomes stale.
func (s *AssetStore) Load(page int) {
	if page < 1 {
		page = 1
	}
	t := s.issue(page)

	s.log.WithFunc().WithFields(logrus.Fields{
		"page":      t.page,
		"perPage":   s.perPage,
		"requestId": t.id,
	}).Debug("Requesting assets page")

	s.exec.Go(func(ctx context.Context) func() {
		result, err := s.client.ListAssets(WithRequestID(ctx, t.id), t.page, s.perPage)
		return func() { s.resolve(t, result, err) }
	})
}

func (s *AssetStore) issue(page int) pageTicket {
	s.seq++
	t := pageTicket{seq: s.seq, page: page, id: uuid.NewString()}
	s.pending = &t
	return t
}

// resolve applies a fetch outcome. It returns false when the ticket is stale.
func (s *AssetStore) resolve(t pageTicket, result *models.AssetPage, err error) bool {
	if s.pending == nil || s.pending.seq != t.seq {
		s.log.WithFunc().WithFields(logrus.Fields{
			"page":      t.page,
			"requestId": t.id,
		}).Debug("Dropping stale assets response")
		return false
	}
	s.pending = nil

	if err == nil && result == nil {
		err = errEmptyResponse
	}
	if err != nil {
		s.err = err
		s.log.WithFunc().WithError(err).WithFields(logrus.Fields{
			"page":      t.page,
			"requestId": t.id,
		}).Error("Failed to load assets page")
		return true
	}

	assets := make([]models.Asset, len(result.Assets))
	copy(assets, result.Assets)

	meta := result.Pagination
	if meta.Page == 0 {
		meta.Page = t.page
	}
	if meta.PerPage == 0 {
		meta.PerPage = s.perPage
	}

	s.assets = assets
	s.pagination = meta.Normalize()
	s.loaded = true
	s.err = nil

	s.log.WithFunc().WithFields(logrus.Fields{
		"page":   s.pagination.Page,
		"pages":  s.pagination.Pages,
		"assets": len(s.assets),
	}).Debug("Assets page loaded")
	return true
}

// Assets returns the current page; callers must not modify it
func (s *AssetStore) Assets() []models.Asset {
	return s.assets
}

// Pagination returns the metadata of the current page
func (s *AssetStore) Pagination() models.PaginationMeta {
	return s.pagination
}

// Loaded reports whether at least one fetch has succeeded
func (s *AssetStore) Loaded() bool {
	return s.loaded
}

// Loading reports whether a fetch is in flight
func (s *AssetStore) Loading() bool {
	return s.pending != nil
}

// PendingPage returns the page being fetched, if any
func (s *AssetStore) PendingPage() (int, bool) {
	if s.pending == nil {
		return 0, false
	}
	return s.pending.page, true
}

// Err returns the error of the last completed fetch, nil after a success
func (s *AssetStore) Err() error {
	return s.err
}
