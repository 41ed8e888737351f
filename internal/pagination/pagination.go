package pagination

import "restaurant-graphql-api/internal/apperr"

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is a skip/limit window over an ordered result set.
type Page struct {
	Skip  int
	Limit int
}

// Default returns the first page with the default size.
func Default() Page {
	return Page{Skip: 0, Limit: DefaultLimit}
}

// Validate rejects negative offsets and sizes outside 1..MaxLimit.
func (p Page) Validate() error {
	if p.Skip < 0 {
		return apperr.InvalidInput("skip must be at least 0")
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		return apperr.InvalidInput("limit must be between 1 and 100")
	}
	return nil
}
