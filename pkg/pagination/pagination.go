package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 10
	// MaxLimit caps how many rows any paged query can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Meta is the pagination envelope returned alongside listed rows.
type Meta struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalOrders int64 `json:"totalOrders"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// Normalize enforces the configured default and maximum limits and a
// one-based page number.
func Normalize(p Params) Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the row offset for the normalized page/limit pair.
func (p Params) Offset() int {
	n := Normalize(p)
	return (n.Page - 1) * n.Limit
}

// BuildMeta derives the page envelope for a total row count.
func BuildMeta(p Params, total int64) Meta {
	n := Normalize(p)
	totalPages := int((total + int64(n.Limit) - 1) / int64(n.Limit))
	if totalPages < 1 {
		totalPages = 1
	}
	return Meta{
		CurrentPage: n.Page,
		TotalPages:  totalPages,
		TotalOrders: total,
		HasNext:     n.Page < totalPages,
		HasPrev:     n.Page > 1,
	}
}
