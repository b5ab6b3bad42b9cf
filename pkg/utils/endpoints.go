// pkg/utils/endpoints.go
package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Endpoints builds inventory API URLs from a base URL
type Endpoints struct {
	base *url.URL
}

// NewEndpoints parses the inventory base URL
func NewEndpoints(baseURL string) (*Endpoints, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("inventory base url cannot be empty")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid inventory base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid inventory base url %q: scheme must be http or https", baseURL)
	}
	return &Endpoints{base: u}, nil
}

// Base returns the base URL without trailing slash
func (e *Endpoints) Base() string {
	return e.base.String()
}

// AssetsURL is GET /assets?page=&per_page=
func (e *Endpoints) AssetsURL(page, perPage int) string {
	return e.build("assets", page, perPage)
}

// AssetURL is GET /assets/{id}?page=&per_page=
func (e *Endpoints) AssetURL(id int64, page, perPage int) string {
	return e.build("assets/"+strconv.FormatInt(id, 10), page, perPage)
}

func (e *Endpoints) build(path string, page, perPage int) string {
	u := *e.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + path
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	u.RawQuery = q.Encode()
	return u.String()
}
