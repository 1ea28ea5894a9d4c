package nestoria

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Response keys carrying the application-level status
const (
	responseCodeKey = "application_response_code"
	responseTextKey = "application_response_text"
)

// Classify inspects the response subtree of a decoded body and returns an
// *APIError when its application response code signals a failure.
// Codes are matched first-wins:
//
//	200      success
//	201-298  ErrBadLocation
//	500      ErrInternalError
//	910      ErrInvalidVersion
//	900-998  ErrInvalidRequest
//
// Anything else, including a missing or non-numeric code, is not an error.
func Classify(response map[string]any) error {
	raw, ok := response[responseCodeKey]
	if !ok || raw == nil {
		return nil
	}

	code := responseCode(raw)
	kind := classifyCode(code)
	if kind == nil {
		return nil
	}

	return &APIError{
		Kind:    kind,
		Code:    code,
		RawCode: cast.ToString(raw),
		Text:    cast.ToString(response[responseTextKey]),
	}
}

// responseCode reads a code as a base 10 integer. Strings may carry
// surrounding whitespace and leading zeros ("0910" is 910).
func responseCode(raw any) int {
	s, ok := raw.(string)
	if !ok {
		return cast.ToInt(raw)
	}
	code, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return code
}

func classifyCode(code int) error {
	switch {
	case code == 200:
		return nil
	case code >= 200 && code < 299:
		return ErrBadLocation
	case code == 500:
		return ErrInternalError
	case code == 910:
		return ErrInvalidVersion
	case code >= 900 && code < 999:
		return ErrInvalidRequest
	default:
		return nil
	}
}

// outcomeOf maps an operation error to a metrics outcome label
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrBadLocation):
		return OutcomeBadLocation
	case errors.Is(err, ErrInternalError):
		return OutcomeInternalError
	case errors.Is(err, ErrInvalidVersion):
		return OutcomeInvalidVersion
	case errors.Is(err, ErrInvalidRequest):
		return OutcomeInvalidRequest
	case errors.Is(err, ErrDecode):
		return OutcomeDecodeError
	default:
		return OutcomeTransportError
	}
}
