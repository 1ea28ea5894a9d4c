package nestoria

import (
	"net/http"
	"strings"
	"time"
)

// DefaultUserAgent is sent with every request unless overridden
const DefaultUserAgent = "nestoria-go/" + APIVersion

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout     time.Duration
	httpClient  *http.Client
	userAgent   string
	transport   Transport
	endpoint    string
	useCache    bool
	maxAge      time.Duration
	cache       *Cache
	metrics     *Metrics
	classifyAll bool
}

func defaultOptions() clientOptions {
	return clientOptions{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		maxAge:    DefaultMaxAge,
	}
}

// WithTimeout sets the HTTP client timeout.
// Ignored when WithHTTPClient or WithTransport is used.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient uses a custom http.Client for the default transport.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithTransport replaces the HTTP transport entirely.
func WithTransport(t Transport) Option {
	return func(o *clientOptions) {
		o.transport = t
	}
}

// WithEndpoint overrides the scheme and host derived from the country,
// e.g. "https://proxy.internal". Useful for tests and proxies.
func WithEndpoint(baseURL string) Option {
	return func(o *clientOptions) {
		o.endpoint = strings.TrimRight(baseURL, "/")
	}
}

// WithCache enables response caching with the given max age.
// A max age of zero or less disables caching.
func WithCache(maxAge time.Duration) Option {
	return func(o *clientOptions) {
		o.useCache = true
		o.maxAge = maxAge
	}
}

// WithSharedCache enables caching backed by an existing Cache, so several
// clients can share entries. The max age defaults to DefaultMaxAge.
func WithSharedCache(cache *Cache) Option {
	return func(o *clientOptions) {
		o.useCache = cache != nil
		o.cache = cache
	}
}

// WithMetrics records request and cache metrics on m.
func WithMetrics(m *Metrics) Option {
	return func(o *clientOptions) {
		o.metrics = m
	}
}

// WithClassifyAllActions checks the application response code of every
// action, not only search_listings.
func WithClassifyAllActions() Option {
	return func(o *clientOptions) {
		o.classifyAll = true
	}
}
