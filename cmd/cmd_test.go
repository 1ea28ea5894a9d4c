package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/blang/semver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/nestoria/config"
	"github.com/s0up4200/nestoria/filter"
	"github.com/s0up4200/nestoria/nestoria"
)

func TestSearchParams(t *testing.T) {
	flags := searchCmd.Flags()
	require.NoError(t, flags.Set("param", "room_min=2"))
	require.NoError(t, flags.Set("keyword", "garden"))
	require.NoError(t, flags.Set("keyword", "parking"))
	require.NoError(t, flags.Set("place", "soho"))
	require.NoError(t, flags.Set("has-photo", "true"))
	require.NoError(t, flags.Set("updated-within", "48h"))

	before := time.Now()
	params := searchParams(searchCmd)

	// flag order, not the order they were set in
	assert.Equal(t, []string{
		nestoria.KeyPlaceName,
		nestoria.KeyKeywords,
		nestoria.KeyHasPhoto,
		nestoria.KeyUpdatedMin,
		"room_min",
	}, params.Keys())

	v, _ := params.Get(nestoria.KeyKeywords)
	assert.Equal(t, []string{"garden", "parking"}, v)

	v, _ = params.Get(nestoria.KeyHasPhoto)
	assert.Equal(t, true, v)

	v, _ = params.Get(nestoria.KeyUpdatedMin)
	updated, ok := v.(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, before.Add(-48*time.Hour), updated, time.Minute)

	assert.NoError(t, nestoria.ValidateParams(nestoria.ActionSearchListings, params))
}

func TestGetListingFilter(t *testing.T) {
	oldFilters, oldCfg, oldExpr, oldPreset := filters, cfg, filterExpr, preset
	t.Cleanup(func() {
		filters, cfg, filterExpr, preset = oldFilters, oldCfg, oldExpr, oldPreset
	})

	filters = filter.NewManager()
	require.NoError(t, filters.RegisterFilter("family", "Bedrooms >= 3"))
	cfg = &config.Config{Filter: config.FilterConfig{DefaultExpression: "Price < 500000"}}

	tests := []struct {
		name       string
		expression string
		preset     string
		want       string
		wantErr    bool
	}{
		{name: "none set uses default", want: "Price < 500000"},
		{name: "preset", preset: "family", want: "Bedrooms >= 3"},
		{name: "expression beats preset", expression: "Bathrooms > 1", preset: "family", want: "Bathrooms > 1"},
		{name: "unknown preset", preset: "nope", wantErr: true},
		{name: "invalid expression", expression: "Bedrooms >=", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filterExpr, preset = tt.expression, tt.preset

			f, err := getListingFilter()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Expression())
		})
	}

	t.Run("no default", func(t *testing.T) {
		filterExpr, preset = "", ""
		cfg = &config.Config{}

		f, err := getListingFilter()
		require.NoError(t, err)
		assert.Nil(t, f)
	})
}

func TestWriteMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := nestoria.NewMetrics(reg)
	m.CacheHits.Add(2)
	m.RequestsTotal.WithLabelValues("search_listings", nestoria.OutcomeSuccess).Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	var buf bytes.Buffer
	writeMetrics(&buf, families)

	out := buf.String()
	assert.Contains(t, out, "nestoria_cache_hits_total 2\n")
	assert.Contains(t, out, "nestoria_cache_misses_total 0\n")
	assert.Contains(t, out, `nestoria_requests_total{action="search_listings",outcome="success"} 1`)
}

func TestNewerRelease(t *testing.T) {
	current := semver.MustParse("1.2.0")

	assert.True(t, newerRelease(current, "1.3.0"))
	assert.True(t, newerRelease(current, "v1.2.1"))
	assert.False(t, newerRelease(current, "1.2.0"))
	assert.False(t, newerRelease(current, "1.1.9"))
	assert.False(t, newerRelease(current, "not-a-version"))
}

func TestListingDetails(t *testing.T) {
	listing := nestoria.Listing{
		Bedrooms:       1,
		Bathrooms:      2,
		PropertyType:   "flat",
		DatasourceName: "Rightmove",
	}
	assert.Equal(t, "1 bedroom, 2 bathrooms, flat, via Rightmove", listingDetails(listing))
	assert.Empty(t, listingDetails(nestoria.Listing{}))

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
