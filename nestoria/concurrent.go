package nestoria

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// MaxConcurrentPages limits parallel page requests in SearchPages
const MaxConcurrentPages = 4

// SearchPages runs Search for pages 1..pages concurrently and returns the
// results in page order. Any page error cancels the remaining requests.
func (c *Client) SearchPages(ctx context.Context, params *Params, pages int) ([]Result, error) {
	if pages <= 0 {
		return nil, nil
	}

	// validate once up front so a bad key fails without any request
	if err := ValidateParams(ActionSearchListings, params); err != nil {
		return nil, err
	}

	results := make([]Result, pages)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrentPages)

	for i := range pages {
		pageParams := params.Clone().Set(KeyPage, i+1)
		g.Go(func() error {
			result, err := c.Search(ctx, pageParams)
			if err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("pages", pages).Msg("Retrieved search pages from Nestoria")
	return results, nil
}
