package nestoria

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsOrder(t *testing.T) {
	p := NewParams("b", 1, "a", 2, "c", 3)
	assert.Equal(t, []string{"b", "a", "c"}, p.Keys())

	p.Set("a", 20)
	assert.Equal(t, []string{"b", "a", "c"}, p.Keys(), "replacing keeps position")
	v, ok := p.Get("a")
	require.True(t, ok)
	assert.Equal(t, 20, v)

	p.Delete("b")
	assert.Equal(t, []string{"a", "c"}, p.Keys())
	assert.Equal(t, 2, p.Len())

	var zero Params
	zero.Set("x", "y")
	assert.Equal(t, 1, zero.Len())

	var nilParams *Params
	assert.Equal(t, 0, nilParams.Len())
	assert.Nil(t, nilParams.Keys())
}

func TestValidateParams(t *testing.T) {
	tests := []struct {
		name    string
		action  Action
		params  *Params
		wantErr bool
		keys    []string
	}{
		{
			name:   "search with all allowed keys",
			action: ActionSearchListings,
			params: NewParams(KeyPlaceName, "leeds", KeyPriceMin, 100, KeySort, "newest", KeyRadius, "1km"),
		},
		{
			name:    "search with unknown keys in order",
			action:  ActionSearchListings,
			params:  NewParams("zeta", 1, KeyPlaceName, "leeds", "alpha", 2),
			wantErr: true,
			keys:    []string{"zeta", "alpha"},
		},
		{
			name:   "metadata with location keys",
			action: ActionMetadata,
			params: NewParams(KeyPlaceName, "leeds", KeyCentrePoint, []float64{1, 2}),
		},
		{
			name:    "metadata rejects search keys",
			action:  ActionMetadata,
			params:  NewParams(KeyPlaceName, "leeds", KeyPriceMin, 1, KeyBedroomMax, 3),
			wantErr: true,
			keys:    []string{KeyPriceMin, KeyBedroomMax},
		},
		{
			name:   "echo is not validated",
			action: ActionEcho,
			params: NewParams("anything", "goes"),
		},
		{
			name:   "keywords is not validated",
			action: ActionKeywords,
			params: NewParams("anything", "goes"),
		},
		{
			name:   "nil params",
			action: ActionSearchListings,
			params: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParams(tt.action, tt.params)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRequest))

			var keysErr *InvalidKeysError
			require.True(t, errors.As(err, &keysErr))
			assert.Equal(t, tt.keys, keysErr.Keys)
		})
	}
}

func TestInvalidKeysErrorMessage(t *testing.T) {
	err := ValidateParams(ActionSearchListings, NewParams("foo", 1, "bar", 2))
	require.Error(t, err)
	assert.Equal(t, "invalid keys: foo, bar", err.Error())
}

func TestSearchAllowList(t *testing.T) {
	allowed := allowedKeys(ActionSearchListings)
	assert.Len(t, allowed, 25)
	assert.Len(t, SearchKeys, 20)
	assert.Len(t, LocationKeys, 5)
	assert.Equal(t, LocationKeys, allowedKeys(ActionMetadata))
	assert.Nil(t, allowedKeys(ActionEcho))
}

func TestNormalizeSearchParams(t *testing.T) {
	updated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	in := NewParams(
		KeyKeywords, []string{"a", "b"},
		KeyKeywordsExclude, []any{"cellar", 3},
		KeyUpdatedMin, updated,
		KeySouthWest, []float64{51.5, -0.2},
		KeyPriceMin, 100000,
	)

	out := NormalizeSearchParams(in)

	v, _ := out.Get(KeyKeywords)
	assert.Equal(t, "a,b", v)
	v, _ = out.Get(KeyKeywordsExclude)
	assert.Equal(t, "cellar,3", v)
	v, _ = out.Get(KeyUpdatedMin)
	assert.Equal(t, updated.Unix(), v)
	v, _ = out.Get(KeyPriceMin)
	assert.Equal(t, 100000, v)

	// location fields are left for NormalizeLocationParams
	v, _ = out.Get(KeySouthWest)
	assert.Equal(t, []float64{51.5, -0.2}, v)

	// input is untouched
	v, _ = in.Get(KeyKeywords)
	assert.Equal(t, []string{"a", "b"}, v)
	assert.Equal(t, in.Keys(), out.Keys())
}

func TestNormalizeIsIdempotent(t *testing.T) {
	in := NewParams(KeyKeywords, "a,b", KeyUpdatedMin, int64(1700000000))

	once := NormalizeSearchParams(in)
	twice := NormalizeSearchParams(once)

	v, _ := twice.Get(KeyKeywords)
	assert.Equal(t, "a,b", v)
	v, _ = twice.Get(KeyUpdatedMin)
	assert.Equal(t, int64(1700000000), v)
}

func TestNormalizeUpdatedMinPointer(t *testing.T) {
	updated := time.Unix(1234567890, 0)
	out := NormalizeSearchParams(NewParams(KeyUpdatedMin, &updated))

	v, _ := out.Get(KeyUpdatedMin)
	assert.Equal(t, int64(1234567890), v)
}

func TestNormalizeLocationParams(t *testing.T) {
	in := NewParams(
		KeySouthWest, []float64{51.5, -0.25},
		KeyNorthEast, [2]float64{51.6, -0.1},
		KeyCentrePoint, "51.55,-0.15",
		KeyPlaceName, "london",
	)

	out := NormalizeLocationParams(in)

	v, _ := out.Get(KeySouthWest)
	assert.Equal(t, "51.5,-0.25", v)
	v, _ = out.Get(KeyNorthEast)
	assert.Equal(t, "51.6,-0.1", v)
	v, _ = out.Get(KeyCentrePoint)
	assert.Equal(t, "51.55,-0.15", v)
	v, _ = out.Get(KeyPlaceName)
	assert.Equal(t, "london", v)
}

func TestRenderValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"soho", "soho"},
		{100000, "100000"},
		{int64(42), "42"},
		{51.5, "51.5"},
		{true, "1"},
		{false, "0"},
		{nil, ""},
		{[]string{"x", "y"}, "x,y"},
		{time.Unix(10, 0), "10"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, renderValue(tt.in), "renderValue(%#v)", tt.in)
	}
}
