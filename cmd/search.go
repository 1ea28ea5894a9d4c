package cmd

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/nestoria/filter"
	"github.com/s0up4200/nestoria/nestoria"
)

var (
	placeName     string
	listingType   string
	propertyType  string
	priceMin      int
	priceMax      int
	bedroomMin    int
	bedroomMax    int
	keywords      []string
	excludeWords  []string
	hasPhoto      bool
	updatedWithin time.Duration
	numResults    int
	sortOrder     string
	southWest     []float64
	northEast     []float64
	centrePoint   []float64
	radius        string
	extraParams   map[string]string
	pages         int
	filterExpr    string
	preset        string
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search property listings",
	Long: `Search Nestoria property listings by place name or coordinates.

Any search parameter without a dedicated flag can be passed with
--param key=value. Results can be narrowed further on the client with
--filter or a --preset from the config file, e.g.

  nestoria search --place soho --listing-type rent --filter 'Bedrooms >= 2 and hasKeyword("garden")'`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	f := searchCmd.Flags()
	f.StringVarP(&placeName, "place", "p", "", "place name to search")
	f.StringVar(&listingType, "listing-type", "", "buy, rent or share")
	f.StringVar(&propertyType, "property-type", "", "all, house, flat or land")
	f.IntVar(&priceMin, "price-min", 0, "minimum price")
	f.IntVar(&priceMax, "price-max", 0, "maximum price")
	f.IntVar(&bedroomMin, "bedroom-min", 0, "minimum number of bedrooms")
	f.IntVar(&bedroomMax, "bedroom-max", 0, "maximum number of bedrooms")
	f.StringSliceVar(&keywords, "keyword", nil, "required keyword (repeatable)")
	f.StringSliceVar(&excludeWords, "exclude-keyword", nil, "excluded keyword (repeatable)")
	f.BoolVar(&hasPhoto, "has-photo", false, "only listings with photos")
	f.DurationVar(&updatedWithin, "updated-within", 0, "only listings updated within this duration")
	f.IntVar(&numResults, "results", 0, "results per page")
	f.StringVar(&sortOrder, "sort", "", "sort order, e.g. price_lowhigh or newest")
	f.Float64SliceVar(&southWest, "south-west", nil, "south west corner as lat,lon")
	f.Float64SliceVar(&northEast, "north-east", nil, "north east corner as lat,lon")
	f.Float64SliceVar(&centrePoint, "centre-point", nil, "centre point as lat,lon")
	f.StringVar(&radius, "radius", "", "radius around the centre point, e.g. 2km")
	f.StringToStringVar(&extraParams, "param", nil, "additional search parameter key=value")
	f.IntVar(&pages, "pages", 1, "number of result pages to fetch concurrently")
	f.StringVarP(&filterExpr, "filter", "f", "", "client-side filter expression")
	f.StringVar(&preset, "preset", "", "use a filter preset from config")
}

func runSearch(cmd *cobra.Command, args []string) error {
	params := searchParams(cmd)

	listingFilter, err := getListingFilter()
	if err != nil {
		return err
	}

	logger.Info().Str("url", client.URL(nestoria.ActionSearchListings, params)).Msg("Searching listings")

	ctx := context.Background()
	results, err := client.SearchPages(ctx, params, pages)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	var listings []nestoria.Listing
	for _, result := range results {
		listings = append(listings, nestoria.Listings(result)...)
	}

	if listingFilter != nil {
		listings, err = filter.Apply(ctx, listingFilter, listings)
		if err != nil {
			return err
		}
		logger.Debug().Str("filter", listingFilter.Expression()).Int("matches", len(listings)).Msg("Applied filter")
	}

	if jsonOutput {
		return printJSON(listings)
	}

	total := 0
	if len(results) > 0 {
		total = nestoria.TotalResults(results[0])
	}
	printListings(listings, total)
	return nil
}

// searchParams builds parameters from the flags that were set, in flag order
func searchParams(cmd *cobra.Command) *nestoria.Params {
	params := &nestoria.Params{}
	changed := cmd.Flags().Changed

	if changed("place") {
		params.Set(nestoria.KeyPlaceName, placeName)
	}
	if changed("south-west") {
		params.Set(nestoria.KeySouthWest, southWest)
	}
	if changed("north-east") {
		params.Set(nestoria.KeyNorthEast, northEast)
	}
	if changed("centre-point") {
		params.Set(nestoria.KeyCentrePoint, centrePoint)
	}
	if changed("radius") {
		params.Set(nestoria.KeyRadius, radius)
	}
	if changed("listing-type") {
		params.Set(nestoria.KeyListingType, listingType)
	}
	if changed("property-type") {
		params.Set(nestoria.KeyPropertyType, propertyType)
	}
	if changed("price-min") {
		params.Set(nestoria.KeyPriceMin, priceMin)
	}
	if changed("price-max") {
		params.Set(nestoria.KeyPriceMax, priceMax)
	}
	if changed("bedroom-min") {
		params.Set(nestoria.KeyBedroomMin, bedroomMin)
	}
	if changed("bedroom-max") {
		params.Set(nestoria.KeyBedroomMax, bedroomMax)
	}
	if changed("keyword") {
		params.Set(nestoria.KeyKeywords, keywords)
	}
	if changed("exclude-keyword") {
		params.Set(nestoria.KeyKeywordsExclude, excludeWords)
	}
	if changed("has-photo") {
		params.Set(nestoria.KeyHasPhoto, hasPhoto)
	}
	if changed("updated-within") {
		params.Set(nestoria.KeyUpdatedMin, time.Now().Add(-updatedWithin))
	}
	if changed("results") {
		params.Set(nestoria.KeyNumberOfResults, numResults)
	}
	if changed("sort") {
		params.Set(nestoria.KeySort, sortOrder)
	}
	for _, key := range slices.Sorted(maps.Keys(extraParams)) {
		params.Set(key, extraParams[key])
	}

	return params
}

// getListingFilter determines the filter to apply, if any
func getListingFilter() (filter.CompiledFilter, error) {
	// Priority: command line filter > preset > default
	if filterExpr != "" {
		f, err := filters.Compile(filterExpr)
		if err != nil {
			return nil, fmt.Errorf("invalid filter expression: %w", err)
		}
		return f, nil
	}

	if preset != "" {
		return filters.GetFilter(preset)
	}

	if cfg.Filter.DefaultExpression != "" {
		return filters.Compile(cfg.Filter.DefaultExpression)
	}

	return nil, nil
}
