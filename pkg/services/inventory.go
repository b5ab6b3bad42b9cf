// pkg/services/inventory.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"bluepriori-dashboard/config"
	"bluepriori-dashboard/pkg/interfaces"
	"bluepriori-dashboard/pkg/models"
	"bluepriori-dashboard/pkg/utils"
	"bluepriori-dashboard/pkg/version"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"
)

// ErrUnexpectedStatus wraps every non-2xx answer of the inventory API
var ErrUnexpectedStatus = errors.New("unexpected status from inventory api")

var errEmptyResponse = errors.New("empty response from inventory api")

// StatusError carries the status code and a short body excerpt
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inventory api returned status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// InventoryClient reads the remote inventory API behind a circuit breaker.
// Vulnerability lists are deduplicated per asset and optionally cached.
type InventoryClient struct {
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
	endpoints  *utils.Endpoints
	cache      interfaces.DetailCacheInterface
	group      singleflight.Group
	log        *utils.Logger
}

// NewInventoryClient creates a client for cfg.Inventory. cache may be nil.
func NewInventoryClient(cfg *config.Config, cache interfaces.DetailCacheInterface, log *utils.Logger) (*InventoryClient, error) {
	endpoints, err := utils.NewEndpoints(cfg.Inventory.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout: cfg.RequestTimeout(),
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	breaker := cfg.Inventory.Breaker
	cbSettings := gobreaker.Settings{
		Name:        "inventory-api",
		MaxRequests: breaker.MaxRequests,
		Interval:    time.Duration(breaker.IntervalSeconds) * time.Second,
		Timeout:     time.Duration(breaker.TimeoutSeconds) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breaker.ConsecutiveFailures
		},
		// client errors and caller cancellations say nothing about backend health
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				return statusErr.StatusCode < 500
			}
			return false
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	}

	log.WithFields(logrus.Fields{
		"baseURL": endpoints.Base(),
		"timeout": httpClient.Timeout.String(),
	}).Debug("Inventory client ready")

	return &InventoryClient{
		httpClient: httpClient,
		cb:         gobreaker.NewCircuitBreaker(cbSettings),
		endpoints:  endpoints,
		cache:      cache,
		log:        log,
	}, nil
}

// ListAssets fetches GET /assets. Lists are never cached so a refresh always reaches the backend.
func (c *InventoryClient) ListAssets(ctx context.Context, page, perPage int) (*models.AssetPage, error) {
	var result models.AssetPage
	if err := c.getJSON(ctx, c.endpoints.AssetsURL(page, perPage), &result); err != nil {
		return nil, fmt.Errorf("failed to list assets (page %d): %w", page, err)
	}
	return &result, nil
}

// GetAssetVulnerabilities fetches GET /assets/{id}
func (c *InventoryClient) GetAssetVulnerabilities(ctx context.Context, assetID int64, page, perPage int) ([]models.Vulnerability, error) {
	if c.cache != nil {
		if vulns, ok := c.cache.Get(ctx, assetID); ok {
			c.log.WithFunc().WithField("assetId", assetID).Debug("Vulnerabilities served from cache")
			return vulns, nil
		}
	}

	key := strconv.FormatInt(assetID, 10) + "/" + strconv.Itoa(page) + "/" + strconv.Itoa(perPage)
	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		var detail models.AssetDetail
		if err := c.getJSON(ctx, c.endpoints.AssetURL(assetID, page, perPage), &detail); err != nil {
			return nil, err
		}
		if detail.Vulnerabilities == nil {
			detail.Vulnerabilities = []models.Vulnerability{}
		}
		if c.cache != nil {
			if err := c.cache.Set(ctx, assetID, detail.Vulnerabilities); err != nil {
				c.log.WithFunc().WithError(err).WithField("assetId", assetID).Warn("Failed to cache vulnerabilities")
			}
		}
		return detail.Vulnerabilities, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get vulnerabilities of asset %d: %w", assetID, err)
	}

	vulns, ok := v.([]models.Vulnerability)
	if !ok {
		return nil, fmt.Errorf("unexpected response type when converting response")
	}
	if shared {
		// callers sharing one flight must not share a backing array
		vulns = append([]models.Vulnerability(nil), vulns...)
	}
	return vulns, nil
}

func (c *InventoryClient) getJSON(ctx context.Context, url string, out interface{}) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create http request: %w", err)
		}
		request.Header.Set("Accept", "application/json")
		request.Header.Set("User-Agent", version.UserAgent())
		if id := RequestIDFrom(ctx); id != "" {
			request.Header.Set("X-Request-ID", id)
		}

		start := time.Now()
		response, err := c.httpClient.Do(request)
		if err != nil {
			return nil, fmt.Errorf("client response error: %w", err)
		}
		defer response.Body.Close()

		c.log.WithFunc().WithFields(logrus.Fields{
			"url":       url,
			"status":    response.StatusCode,
			"duration":  time.Since(start).String(),
			"requestId": request.Header.Get("X-Request-ID"),
		}).Debug("Inventory API call")

		if response.StatusCode < 200 || response.StatusCode >= 300 {
			body, _ := io.ReadAll(io.LimitReader(response.Body, 512))
			return nil, &StatusError{StatusCode: response.StatusCode, Body: string(body)}
		}

		if err := json.NewDecoder(response.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("failed to decode inventory response: %w", err)
		}
		return nil, nil
	})
	return err
}
