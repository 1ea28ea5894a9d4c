package cmd

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/s0up4200/nestoria/nestoria"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printListings(listings []nestoria.Listing, total int) {
	if len(listings) == 0 {
		fmt.Println("No listings found matching the search criteria.")
		return
	}

	fmt.Printf("\nShowing %d of %d listings:\n", len(listings), total)
	fmt.Println(strings.Repeat("-", 80))

	for _, listing := range listings {
		fmt.Printf("• %s", truncate(listing.Title, 60))
		if listing.PriceFormatted != "" {
			fmt.Printf(" [%s]", listing.PriceFormatted)
		}
		fmt.Println()

		if details := listingDetails(listing); details != "" {
			fmt.Printf("  %s\n", details)
		}
		if len(listing.Keywords) > 0 {
			fmt.Printf("  Keywords: %s\n", strings.Join(listing.Keywords, ", "))
		}
		if listing.ListerURL != "" {
			fmt.Printf("  %s\n", listing.ListerURL)
		}
	}
	fmt.Println(strings.Repeat("-", 80))
}

func listingDetails(listing nestoria.Listing) string {
	var parts []string
	if listing.Bedrooms > 0 {
		parts = append(parts, plural(listing.Bedrooms, "bedroom"))
	}
	if listing.Bathrooms > 0 {
		parts = append(parts, plural(listing.Bathrooms, "bathroom"))
	}
	if listing.PropertyType != "" {
		parts = append(parts, listing.PropertyType)
	}
	if listing.DatasourceName != "" {
		parts = append(parts, "via "+listing.DatasourceName)
	}
	return strings.Join(parts, ", ")
}

// printResult prints a decoded response as sorted key/value lines
func printResult(result nestoria.Result) {
	for _, key := range slices.Sorted(maps.Keys(result)) {
		fmt.Printf("%-28s %v\n", key+":", result[key])
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}
