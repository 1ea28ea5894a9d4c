package nestoria

import (
	"net/url"
	"strings"
)

// APIVersion is the Nestoria API version requested by this client
const APIVersion = "1.21"

// BuildURL composes the request URL for action against baseURL
// (scheme and host, no trailing slash). Parameters are rendered in
// insertion order and percent-encoded.
func BuildURL(baseURL string, action Action, params *Params) string {
	var b strings.Builder
	b.WriteString(baseURL)
	b.WriteString("/api?version=")
	b.WriteString(APIVersion)
	b.WriteString("&action=")
	b.WriteString(action.String())
	b.WriteString("&encoding=json")

	for _, key := range params.Keys() {
		value, _ := params.Get(key)
		b.WriteByte('&')
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(renderValue(value)))
	}

	return b.String()
}

// countryBaseURL returns the plain-HTTP endpoint for a country
func countryBaseURL(country Country) (string, error) {
	host, err := country.Host()
	if err != nil {
		return "", err
	}
	return "http://" + host, nil
}
