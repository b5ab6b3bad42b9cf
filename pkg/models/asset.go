// pkg/models/asset.go
package models

// Asset is a tracked software artifact as served by the inventory API
type Asset struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	Version              string  `json:"version"`
	Product              string  `json:"product"`
	PriorityScore        float64 `json:"priority_score"`
	VulnerabilitiesCount int     `json:"vulnerabilities_count"`
}

// PaginationMeta describes where a page sits in the full inventory
type PaginationMeta struct {
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// NewPaginationMeta builds a consistent PaginationMeta from page, page size and total count
func NewPaginationMeta(page, perPage, total int) PaginationMeta {
	meta := PaginationMeta{
		Page:    page,
		PerPage: perPage,
		Total:   total,
	}
	return meta.Normalize()
}

// Normalize recomputes pages, has_next and has_prev from page, per_page and total.
// A zero per_page leaves pages untouched since it cannot be derived.
func (p PaginationMeta) Normalize() PaginationMeta {
	if p.PerPage > 0 {
		p.Pages = (p.Total + p.PerPage - 1) / p.PerPage
	}
	p.HasPrev = p.Page > 1
	p.HasNext = p.Page < p.Pages
	return p
}

// AssetPage is the payload of GET /assets
type AssetPage struct {
	Assets     []Asset        `json:"assets"`
	Pagination PaginationMeta `json:"pagination"`
}
