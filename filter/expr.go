package filter

import (
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/s0up4200/nestoria/nestoria"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*ExprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *ExprCompiler) {
		if size > 0 {
			c.cache = newProgramCache(size)
		}
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) *ExprCompiler {
	c := &ExprCompiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ExprCompiler compiles expr-language filters against listing fields
type ExprCompiler struct {
	cache *programCache
}

// Compile compiles an expression into an executable filter.
// Unknown identifiers are compile errors.
func (c *ExprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// a zero listing gives the checker every field and helper type
	program, err := expr.Compile(expression,
		expr.Env(createRuntimeEnvironment(nestoria.Listing{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// CacheSize returns the number of cached filters
func (c *ExprCompiler) CacheSize() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// ClearCache removes all cached filters
func (c *ExprCompiler) ClearCache() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Evaluate evaluates the filter against a listing.
// Runtime errors count as no match.
func (f *exprFilter) Evaluate(listing nestoria.Listing) bool {
	result, err := expr.Run(f.program, createRuntimeEnvironment(listing))
	if err != nil {
		return false
	}
	matched, _ := result.(bool)
	return matched
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createRuntimeEnvironment exposes listing fields and helpers to expressions
func createRuntimeEnvironment(listing nestoria.Listing) map[string]any {
	env := make(map[string]any, 32)

	addHelperFunctions(env)

	env["Listing"] = listing
	env["hasKeyword"] = createHasKeywordFunc(listing.Keywords)
	env["pricePerBedroom"] = func() float64 {
		if listing.Bedrooms <= 0 {
			return listing.Price
		}
		return listing.Price / float64(listing.Bedrooms)
	}

	env["Title"] = listing.Title
	env["Summary"] = listing.Summary
	env["Price"] = listing.Price
	env["PriceType"] = listing.PriceType
	env["Bedrooms"] = listing.Bedrooms
	env["Bathrooms"] = listing.Bathrooms
	env["Rooms"] = listing.Rooms
	env["PropertyType"] = listing.PropertyType
	env["ListingType"] = listing.ListingType
	env["Keywords"] = listing.Keywords
	env["Latitude"] = listing.Latitude
	env["Longitude"] = listing.Longitude
	env["UpdatedInDays"] = listing.UpdatedInDays
	env["Datasource"] = listing.DatasourceName
	env["Size"] = listing.Size

	return env
}

func addHelperFunctions(env map[string]any) {
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
}

func createHasKeywordFunc(keywords []string) func(string) bool {
	lower := make([]string, len(keywords))
	for i, k := range keywords {
		lower[i] = strings.ToLower(k)
	}
	return func(keyword string) bool {
		return slices.Contains(lower, strings.ToLower(keyword))
	}
}
