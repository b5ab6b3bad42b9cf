// pkg/services/detail.go
package service

import (
	"context"

	"bluepriori-dashboard/pkg/interfaces"
	"bluepriori-dashboard/pkg/models"
	"bluepriori-dashboard/pkg/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DetailSession tracks the selected asset and the fetch of its vulnerabilities.
// All methods must be called from the owning event loop.
type DetailSession struct {
	client  interfaces.InventoryClientInterface
	exec    Executor
	log     *utils.Logger
	perPage int

	state models.DetailState
	seq   uint64
}

// NewDetailSession creates a closed session
func NewDetailSession(client interfaces.InventoryClientInterface, exec Executor, perPage int, log *utils.Logger) *DetailSession {
	return &DetailSession{
		client:  client,
		exec:    exec,
		log:     log,
		perPage: perPage,
		state:   models.DetailState{Status: models.DetailClosed},
	}
}

// Select opens the session for assetID. A session open for another asset is
// abandoned and its result dropped. Selecting the asset already loading or
// loaded does nothing; selecting it after a failure retries.
func (d *DetailSession) Select(assetID int64) {
	if d.state.AssetID == assetID {
		switch d.state.Status {
		case models.DetailLoading, models.DetailLoaded:
			return
		}
	}

	d.seq++
	seq := d.seq
	requestID := uuid.NewString()
	d.state = models.DetailState{
		Status:  models.DetailLoading,
		AssetID: assetID,
	}

	d.log.WithFunc().WithFields(logrus.Fields{
		"assetId":   assetID,
		"requestId": requestID,
	}).Debug("Loading asset vulnerabilities")

	d.exec.Go(func(ctx context.Context) func() {
		vulns, err := d.client.GetAssetVulnerabilities(WithRequestID(ctx, requestID), assetID, 1, d.perPage)
		return func() { d.resolve(seq, assetID, vulns, err) }
	})
}

// Close clears the selection; a fetch still in flight is ignored when it lands
func (d *DetailSession) Close() {
	d.seq++
	d.state = models.DetailState{Status: models.DetailClosed}
}

func (d *DetailSession) resolve(seq uint64, assetID int64, vulns []models.Vulnerability, err error) bool {
	if seq != d.seq {
		d.log.WithFunc().WithField("assetId", assetID).Debug("Dropping stale vulnerabilities response")
		return false
	}

	if err != nil {
		d.log.WithFunc().WithError(err).WithField("assetId", assetID).Warn("Failed to load asset vulnerabilities")
		d.state = models.DetailState{
			Status:  models.DetailFailed,
			AssetID: assetID,
		}
		return true
	}

	list := make([]models.Vulnerability, len(vulns))
	copy(list, vulns)
	d.state = models.DetailState{
		Status:          models.DetailLoaded,
		AssetID:         assetID,
		Vulnerabilities: list,
	}
	return true
}

// State returns a copy of the current detail state
func (d *DetailSession) State() models.DetailState {
	s := d.state
	if s.Status == models.DetailLoaded || s.Vulnerabilities != nil {
		// une liste chargée vide reste [] en JSON, jamais null
		list := make([]models.Vulnerability, len(s.Vulnerabilities))
		copy(list, s.Vulnerabilities)
		s.Vulnerabilities = list
	}
	return s
}
