package nestoria

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListings(t *testing.T) {
	var envelope struct {
		Response Result `json:"response"`
	}
	require.NoError(t, json.Unmarshal([]byte(searchOK), &envelope))

	listings := Listings(envelope.Response)
	require.Len(t, listings, 2)

	assert.Equal(t, "Flat A", listings[0].Title)
	assert.Equal(t, 1200.0, listings[0].Price)
	assert.Equal(t, 2, listings[0].Bedrooms)
	assert.Equal(t, []string{"Garden", "Parking"}, listings[0].Keywords)
	assert.True(t, listings[0].HasKeyword("garden"))
	assert.False(t, listings[0].HasKeyword("pool"))

	assert.Equal(t, 950.5, listings[1].Price)
	assert.Equal(t, 1, listings[1].Bedrooms)
	assert.Empty(t, listings[1].Keywords)

	assert.Equal(t, 2, TotalResults(envelope.Response))
	assert.Equal(t, 1, TotalPages(envelope.Response))
	assert.Nil(t, Listings(Result{}))
}

func TestClient_SearchPages(t *testing.T) {
	var mu sync.Mutex
	var pages []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		mu.Lock()
		pages = append(pages, page)
		mu.Unlock()

		resp := map[string]any{
			"response": map[string]any{
				"application_response_code": "100",
				"page":                      page,
				"listings":                  []any{map[string]any{"title": "listing on page " + page}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client, err := NewClient(CountryUK, zerolog.Nop(), WithEndpoint(server.URL))
	require.NoError(t, err)

	results, err := client.SearchPages(context.Background(), NewParams(KeyPlaceName, "leeds"), 5)
	require.NoError(t, err)
	require.Len(t, results, 5)

	for i, result := range results {
		assert.Equal(t, strconv.Itoa(i+1), result["page"])
	}

	sort.Strings(pages)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, pages)
}

func TestClient_SearchPagesErrors(t *testing.T) {
	transport := &fakeTransport{body: `{"response":{"application_response_code":"905","application_response_text":"bad"}}`}
	client := newTestClient(t, transport)
	ctx := context.Background()

	_, err := client.SearchPages(ctx, NewParams(KeyPlaceName, "x"), 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRequest))

	before := transport.calls()
	_, err = client.SearchPages(ctx, NewParams("bogus", 1), 3)
	require.Error(t, err)
	assert.Equal(t, before, transport.calls())

	results, err := client.SearchPages(ctx, NewParams(KeyPlaceName, "x"), 0)
	require.NoError(t, err)
	assert.Nil(t, results)
}
