package nestoria

import (
	"fmt"
	"strings"
)

// Country selects the regional Nestoria API host
type Country string

const (
	CountryAU Country = "au"
	CountryBR Country = "br"
	CountryDE Country = "de"
	CountryES Country = "es"
	CountryFR Country = "fr"
	CountryIN Country = "in"
	CountryIT Country = "it"
	CountryUK Country = "uk"
)

var countryHosts = map[Country]string{
	CountryAU: "api.nestoria.com.au",
	CountryBR: "api.nestoria.com.br",
	CountryDE: "api.nestoria.de",
	CountryES: "api.nestoria.es",
	CountryFR: "api.nestoria.fr",
	CountryIN: "api.nestoria.in",
	CountryIT: "api.nestoria.it",
	CountryUK: "api.nestoria.co.uk",
}

// Countries returns every supported country code
func Countries() []Country {
	return []Country{CountryAU, CountryBR, CountryDE, CountryES, CountryFR, CountryIN, CountryIT, CountryUK}
}

// ParseCountry converts a case-insensitive country code into a Country
func ParseCountry(code string) (Country, error) {
	c := Country(strings.ToLower(strings.TrimSpace(code)))
	if _, ok := countryHosts[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCountry, code)
	}
	return c, nil
}

// Host returns the API hostname for the country
func (c Country) Host() (string, error) {
	host, ok := countryHosts[c]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCountry, string(c))
	}
	return host, nil
}

// String returns the country code
func (c Country) String() string {
	return string(c)
}
