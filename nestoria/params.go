package nestoria

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Parameter keys accepted by the API
const (
	KeyPlaceName   = "place_name"
	KeySouthWest   = "south_west"
	KeyNorthEast   = "north_east"
	KeyCentrePoint = "centre_point"
	KeyRadius      = "radius"

	KeyGUID            = "guid"
	KeyListingType     = "listing_type"
	KeyPropertyType    = "property_type"
	KeyPriceMin        = "price_min"
	KeyPriceMax        = "price_max"
	KeyBedroomMin      = "bedroom_min"
	KeyBedroomMax      = "bedroom_max"
	KeyRoomMin         = "room_min"
	KeyRoomMax         = "room_max"
	KeyBathroomMin     = "bathroom_min"
	KeyBathroomMax     = "bathroom_max"
	KeySizeMin         = "size_min"
	KeySizeMax         = "size_max"
	KeyKeywords        = "keywords"
	KeyKeywordsExclude = "keywords_exclude"
	KeyHasPhoto        = "has_photo"
	KeyUpdatedMin      = "updated_min"
	KeyNumberOfResults = "number_of_results"
	KeyPage            = "page"
	KeySort            = "sort"
)

// LocationKeys are accepted by both search and metadata
var LocationKeys = []string{
	KeyPlaceName, KeySouthWest, KeyNorthEast, KeyCentrePoint, KeyRadius,
}

// SearchKeys are accepted by search, in addition to LocationKeys
var SearchKeys = []string{
	KeyGUID, KeyListingType, KeyPropertyType, KeyPriceMin, KeyPriceMax,
	KeyBedroomMin, KeyBedroomMax, KeyRoomMin, KeyRoomMax, KeyBathroomMin, KeyBathroomMax,
	KeySizeMin, KeySizeMax, KeyKeywords, KeyKeywordsExclude, KeyHasPhoto, KeyUpdatedMin,
	KeyNumberOfResults, KeyPage, KeySort,
}

// Params is an insertion-ordered set of query parameters.
// The zero value is ready to use.
type Params struct {
	keys   []string
	values map[string]any
}

// NewParams creates Params from alternating key/value arguments
func NewParams(kv ...any) *Params {
	p := &Params{}
	for i := 0; i+1 < len(kv); i += 2 {
		p.Set(cast.ToString(kv[i]), kv[i+1])
	}
	return p
}

// Set adds or replaces a parameter. Replacing keeps the original position.
func (p *Params) Set(key string, value any) *Params {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	return p
}

// Get returns the value stored for key
func (p *Params) Get(key string) (any, bool) {
	if p == nil || p.values == nil {
		return nil, false
	}
	v, ok := p.values[key]
	return v, ok
}

// Delete removes a parameter
func (p *Params) Delete(key string) {
	if p == nil || p.values == nil {
		return
	}
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	p.keys = slices.DeleteFunc(p.keys, func(k string) bool { return k == key })
}

// Keys returns parameter keys in insertion order
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.keys)
}

// Len returns the number of parameters
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Clone returns a shallow copy preserving key order
func (p *Params) Clone() *Params {
	out := &Params{}
	if p == nil {
		return out
	}
	out.keys = slices.Clone(p.keys)
	out.values = make(map[string]any, len(p.values))
	for k, v := range p.values {
		out.values[k] = v
	}
	return out
}

// allowedKeys returns the allow-list for an action, or nil when the
// action performs no validation.
func allowedKeys(action Action) []string {
	switch action {
	case ActionSearchListings:
		return append(slices.Clone(SearchKeys), LocationKeys...)
	case ActionMetadata:
		return LocationKeys
	default:
		return nil
	}
}

// ValidateParams rejects keys outside the allow-list of action.
// Offending keys are reported in their original order.
func ValidateParams(action Action, params *Params) error {
	allowed := allowedKeys(action)
	if allowed == nil {
		return nil
	}

	var invalid []string
	for _, key := range params.Keys() {
		if !slices.Contains(allowed, key) {
			invalid = append(invalid, key)
		}
	}
	if len(invalid) > 0 {
		return &InvalidKeysError{Action: action, Keys: invalid}
	}
	return nil
}

// NormalizeSearchParams returns a copy with keyword lists joined and
// updated_min converted to epoch seconds. Location fields are untouched.
func NormalizeSearchParams(params *Params) *Params {
	out := params.Clone()
	for _, key := range []string{KeyKeywords, KeyKeywordsExclude} {
		if v, ok := out.Get(key); ok {
			out.Set(key, joinSequence(v))
		}
	}
	if v, ok := out.Get(KeyUpdatedMin); ok {
		out.Set(KeyUpdatedMin, epochSeconds(v))
	}
	return out
}

// NormalizeLocationParams returns a copy with coordinate pairs joined by commas
func NormalizeLocationParams(params *Params) *Params {
	out := params.Clone()
	for _, key := range []string{KeySouthWest, KeyNorthEast, KeyCentrePoint} {
		if v, ok := out.Get(key); ok {
			out.Set(key, joinSequence(v))
		}
	}
	return out
}

// joinSequence joins slice or array values with commas. Other values,
// including strings, are returned as is.
func joinSequence(v any) any {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return v
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return v
	}
	// []byte is a scalar for our purposes
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return v
	}

	parts := make([]string, 0, rv.Len())
	for i := range rv.Len() {
		parts = append(parts, renderValue(rv.Index(i).Interface()))
	}
	return strings.Join(parts, ",")
}

func epochSeconds(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.Unix()
	case *time.Time:
		if t == nil {
			return v
		}
		return t.Unix()
	default:
		return v
	}
}

// renderValue renders a scalar in wire form
func renderValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		if t {
			return "1"
		}
		return "0"
	case time.Time:
		return cast.ToString(t.Unix())
	}
	s, err := cast.ToStringE(v)
	if err == nil {
		return s
	}
	if joined, ok := joinSequence(v).(string); ok {
		return joined
	}
	return fmt.Sprint(v)
}
