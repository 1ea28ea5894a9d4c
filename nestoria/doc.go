// Package nestoria provides a client for the Nestoria property listings API.
//
// Nestoria aggregates property listings for several countries, each served
// from its own API host. This package validates and normalizes query
// parameters, builds request URLs, optionally caches raw responses and maps
// application response codes to typed errors.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := nestoria.NewClient(nestoria.CountryUK, logger,
//		nestoria.WithCache(5*time.Minute),
//		nestoria.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	params := nestoria.NewParams(
//		nestoria.KeyPlaceName, "soho",
//		nestoria.KeyListingType, "rent",
//		nestoria.KeyKeywords, []string{"garden", "parking"},
//	)
//	result, err := client.Search(ctx, params)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, l := range nestoria.Listings(result) {
//		fmt.Println(l.Title, l.PriceFormatted)
//	}
//
// # Caching
//
// Responses are cached by exact request URL. An entry is reused while it is
// younger than the configured max age and is replaced wholesale on refetch.
// The cache belongs to the client unless one is injected with
// WithSharedCache.
//
// # Error Handling
//
// Kinds are exposed as sentinel errors for use with errors.Is:
//
//   - ErrInvalidRequest: rejected parameter keys, or a 9xx search code
//   - ErrBadLocation: a 2xx search code other than 200
//   - ErrInternalError: search code 500
//   - ErrInvalidVersion: search code 910
//   - ErrTransport: network failure or non-2xx HTTP status
//   - ErrDecode: body is not a JSON object with a response key
//
// Details are available through *InvalidKeysError, *APIError,
// *TransportError and *DecodeError with errors.As. Nothing is retried.
package nestoria
