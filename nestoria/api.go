package nestoria

import (
	"context"
)

// API defines the interface for Nestoria operations
type API interface {
	// Search searches property listings
	Search(ctx context.Context, params *Params) (Result, error)

	// SearchPages fetches several result pages concurrently
	SearchPages(ctx context.Context, params *Params, pages int) ([]Result, error)

	// Metadata returns average price data for a location
	Metadata(ctx context.Context, params *Params) (Result, error)

	// Keywords returns search keywords mapped to their labels
	Keywords(ctx context.Context) (map[string]string, error)

	// Echo returns the parameters it is given
	Echo(ctx context.Context, params *Params) (Result, error)
}

var _ API = (*Client)(nil)
