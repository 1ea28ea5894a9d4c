package nestoria

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"
)

// Result is the "response" object of a decoded API reply
type Result map[string]any

// Client is a Nestoria API client for one country
type Client struct {
	country     Country
	baseURL     string
	transport   Transport
	cache       *Cache
	maxAge      time.Duration
	classifyAll bool
	metrics     *Metrics
	logger      zerolog.Logger
}

// NewClient creates a new Nestoria client.
// It fails fast when the country has no known API host.
func NewClient(country Country, logger zerolog.Logger, opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	baseURL := o.endpoint
	if baseURL == "" {
		var err error
		baseURL, err = countryBaseURL(country)
		if err != nil {
			return nil, fmt.Errorf("invalid client configuration: %w", err)
		}
	}

	transport := o.transport
	if transport == nil {
		httpClient := o.httpClient
		if httpClient == nil {
			httpClient = newHTTPClient(o.timeout)
		}
		transport = NewHTTPTransport(httpClient, o.userAgent)
	}

	client := &Client{
		country:     country,
		baseURL:     baseURL,
		transport:   transport,
		maxAge:      o.maxAge,
		classifyAll: o.classifyAll,
		metrics:     o.metrics,
		logger:      logger,
	}

	if o.useCache && o.maxAge > 0 {
		client.cache = o.cache
		if client.cache == nil {
			client.cache = NewCache(WithCacheLogger(logger), WithCacheMetrics(o.metrics))
		}
	}

	return client, nil
}

// Country returns the country the client was created for
func (c *Client) Country() Country {
	return c.country
}

// Cache returns the response cache, or nil when caching is disabled
func (c *Client) Cache() *Cache {
	return c.cache
}

// TestConnection performs an echo round trip
func (c *Client) TestConnection(ctx context.Context) error {
	if _, err := c.Echo(ctx, nil); err != nil {
		return fmt.Errorf("failed to connect to Nestoria: %w", err)
	}
	return nil
}

// Search searches property listings
func (c *Client) Search(ctx context.Context, params *Params) (Result, error) {
	var result Result
	err := c.observe(ActionSearchListings, func() error {
		if err := ValidateParams(ActionSearchListings, params); err != nil {
			return err
		}

		normalized := NormalizeLocationParams(NormalizeSearchParams(params))

		var err error
		result, err = c.request(ctx, ActionSearchListings, normalized)
		return err
	})
	return result, err
}

// Metadata returns average price data for a location
func (c *Client) Metadata(ctx context.Context, params *Params) (Result, error) {
	var result Result
	err := c.observe(ActionMetadata, func() error {
		if err := ValidateParams(ActionMetadata, params); err != nil {
			return err
		}

		var err error
		result, err = c.request(ctx, ActionMetadata, NormalizeLocationParams(params))
		return err
	})
	return result, err
}

// Keywords returns the keywords usable in searches, mapped to their labels
func (c *Client) Keywords(ctx context.Context) (map[string]string, error) {
	var keywords map[string]string
	err := c.observe(ActionKeywords, func() error {
		result, err := c.request(ctx, ActionKeywords, nil)
		if err != nil {
			return err
		}
		keywords, err = c.keywordLabels(result)
		return err
	})
	return keywords, err
}

// Echo returns whatever parameters it is given. Nil or empty params send foo=bar.
func (c *Client) Echo(ctx context.Context, params *Params) (Result, error) {
	if params.Len() == 0 {
		params = NewParams("foo", "bar")
	}

	var result Result
	err := c.observe(ActionEcho, func() error {
		var err error
		result, err = c.request(ctx, ActionEcho, params)
		return err
	})
	return result, err
}

// Request sends params as-is for action, without validation or normalization
func (c *Client) Request(ctx context.Context, action Action, params *Params) (Result, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("%w: unsupported action %d", ErrInvalidRequest, int(action))
	}

	var result Result
	err := c.observe(action, func() error {
		var err error
		result, err = c.request(ctx, action, params)
		return err
	})
	return result, err
}

// URL returns the request URL for action and params
func (c *Client) URL(action Action, params *Params) string {
	return BuildURL(c.baseURL, action, params)
}

// InvalidateCache marks the cached response for url stale
func (c *Client) InvalidateCache(url string) {
	if c.cache != nil {
		c.cache.Invalidate(url)
	}
}

// InvalidateAllCache discards every cached response
func (c *Client) InvalidateAllCache() {
	if c.cache != nil {
		c.cache.InvalidateAll()
	}
}

func (c *Client) observe(action Action, fn func() error) error {
	start := time.Now()
	err := fn()
	c.metrics.observeRequest(action, outcomeOf(err), time.Since(start))
	return err
}

// request builds the URL, fetches, decodes and classifies
func (c *Client) request(ctx context.Context, action Action, params *Params) (Result, error) {
	url := c.URL(action, params)
	c.logger.Debug().Str("action", action.String()).Str("url", url).Msg("Making Nestoria API request")

	body, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	response, err := decodeResponse(url, body)
	if err != nil {
		return nil, err
	}

	if action == ActionSearchListings || c.classifyAll {
		if err := Classify(response); err != nil {
			c.logger.Debug().Err(err).Str("action", action.String()).Msg("API reported an error")
			return nil, err
		}
	}

	return response, nil
}

// fetch goes through the cache when enabled
func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	if c.cache == nil {
		return c.get(ctx, url)
	}
	return c.cache.Fetch(ctx, url, c.maxAge, func(ctx context.Context) ([]byte, error) {
		return c.get(ctx, url)
	})
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	status, body, err := c.transport.Get(ctx, url)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	if status < 200 || status > 299 {
		return nil, &TransportError{URL: url, StatusCode: status}
	}
	return body, nil
}

func decodeResponse(url string, body []byte) (Result, error) {
	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &DecodeError{URL: url, Reason: "invalid JSON", Err: err}
	}

	response, ok := envelope["response"].(map[string]any)
	if !ok {
		return nil, &DecodeError{URL: url, Reason: "missing response object"}
	}

	return response, nil
}

// keywordLabels reshapes labels[] into keyword -> content
func (c *Client) keywordLabels(result Result) (map[string]string, error) {
	keywords := make(map[string]string)

	raw, ok := result["labels"]
	if !ok || raw == nil {
		return keywords, nil
	}

	labels, ok := raw.([]any)
	if !ok {
		return nil, &DecodeError{URL: c.URL(ActionKeywords, nil), Reason: "labels is not a list"}
	}

	for _, item := range labels {
		label, ok := item.(map[string]any)
		if !ok {
			continue
		}
		// a label without a keyword is kept under ""
		keywords[cast.ToString(label["keyword"])] = cast.ToString(label["content"])
	}

	c.logger.Debug().Int("count", len(keywords)).Msg("Retrieved keywords from Nestoria")
	return keywords, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
