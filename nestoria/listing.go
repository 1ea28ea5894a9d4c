package nestoria

import (
	"strings"

	"github.com/spf13/cast"
)

// Listing is a typed view of one entry in a search result's listings.
// Numeric fields accept JSON numbers or numeric strings.
type Listing struct {
	Title          string
	Summary        string
	Price          float64
	PriceType      string
	PriceFormatted string
	PriceCurrency  string
	Bedrooms       int
	Bathrooms      int
	Rooms          int
	PropertyType   string
	ListingType    string
	Keywords       []string
	Latitude       float64
	Longitude      float64
	ListerURL      string
	ThumbURL       string
	UpdatedInDays  float64
	DatasourceName string
	Size           float64
	SizeType       string
}

// HasKeyword reports whether the listing carries keyword (case-insensitive)
func (l Listing) HasKeyword(keyword string) bool {
	for _, k := range l.Keywords {
		if strings.EqualFold(k, keyword) {
			return true
		}
	}
	return false
}

// Listings decodes the listings array of a search result
func Listings(result Result) []Listing {
	raw, ok := result["listings"].([]any)
	if !ok {
		return nil
	}

	listings := make([]Listing, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		listings = append(listings, listingFromMap(m))
	}
	return listings
}

// TotalResults returns the total number of matches reported by a search
func TotalResults(result Result) int {
	return cast.ToInt(result["total_results"])
}

// TotalPages returns the number of result pages reported by a search
func TotalPages(result Result) int {
	return cast.ToInt(result["total_pages"])
}

func listingFromMap(m map[string]any) Listing {
	return Listing{
		Title:          cast.ToString(m["title"]),
		Summary:        cast.ToString(m["summary"]),
		Price:          cast.ToFloat64(m["price"]),
		PriceType:      cast.ToString(m["price_type"]),
		PriceFormatted: cast.ToString(m["price_formatted"]),
		PriceCurrency:  cast.ToString(m["price_currency"]),
		Bedrooms:       cast.ToInt(m["bedroom_number"]),
		Bathrooms:      cast.ToInt(m["bathroom_number"]),
		Rooms:          cast.ToInt(m["room_number"]),
		PropertyType:   cast.ToString(m["property_type"]),
		ListingType:    cast.ToString(m["listing_type"]),
		Keywords:       splitKeywords(cast.ToString(m["keywords"])),
		Latitude:       cast.ToFloat64(m["latitude"]),
		Longitude:      cast.ToFloat64(m["longitude"]),
		ListerURL:      cast.ToString(m["lister_url"]),
		ThumbURL:       cast.ToString(m["thumb_url"]),
		UpdatedInDays:  cast.ToFloat64(m["updated_in_days"]),
		DatasourceName: cast.ToString(m["datasource_name"]),
		Size:           cast.ToFloat64(m["size"]),
		SizeType:       cast.ToString(m["size_type"]),
	}
}

func splitKeywords(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
