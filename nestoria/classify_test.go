package nestoria

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		code any
		want error
	}{
		{"canonical success", "200", nil},
		{"unambiguous location", "100", nil},
		{"ambiguous location", "201", ErrBadLocation},
		{"bad location upper bound", 298, ErrBadLocation},
		{"299 is not matched", 299, nil},
		{"internal error", "500", ErrInternalError},
		{"invalid version", "910", ErrInvalidVersion},
		{"invalid request", "905", ErrInvalidRequest},
		{"invalid request lower bound", float64(900), ErrInvalidRequest},
		{"invalid request upper bound", "998", ErrInvalidRequest},
		{"999 is not matched", "999", nil},
		{"404 falls through", "404", nil},
		{"non numeric code", "abc", nil},
		{"leading zero is decimal", "0910", ErrInvalidVersion},
		{"leading zero location", "0201", ErrBadLocation},
		{"surrounding whitespace", " 500\n", ErrInternalError},
		{"integer code", 910, ErrInvalidVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := map[string]any{
				"application_response_code": tt.code,
				"application_response_text": "some text",
			}

			err := Classify(response)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, "some text", apiErr.Text)
		})
	}
}

func TestClassifyMessage(t *testing.T) {
	err := Classify(map[string]any{
		"application_response_code": "201",
		"application_response_text": "unknown location",
	})
	require.Error(t, err)
	assert.Equal(t, "201, unknown location", err.Error())

	err = Classify(map[string]any{
		"application_response_code": float64(910),
		"application_response_text": "bad version",
	})
	require.Error(t, err)
	assert.Equal(t, "910, bad version", err.Error())
}

func TestClassifyMissingCode(t *testing.T) {
	assert.NoError(t, Classify(map[string]any{}))
	assert.NoError(t, Classify(map[string]any{"application_response_code": nil}))
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, outcomeOf(nil))
	assert.Equal(t, OutcomeBadLocation, outcomeOf(&APIError{Kind: ErrBadLocation}))
	assert.Equal(t, OutcomeInvalidVersion, outcomeOf(&APIError{Kind: ErrInvalidVersion}))
	assert.Equal(t, OutcomeInvalidRequest, outcomeOf(&InvalidKeysError{}))
	assert.Equal(t, OutcomeDecodeError, outcomeOf(&DecodeError{}))
	assert.Equal(t, OutcomeTransportError, outcomeOf(&TransportError{StatusCode: 502}))
}
