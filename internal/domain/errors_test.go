package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkError_IsMatchesKind(t *testing.T) {
	err := fmt.Errorf("fetch weather: %w", NewNetworkError(KindNotFound, nil))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrServerError)
}

func TestNetworkError_UnwrapsCause(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := NewNetworkError(KindJSONDecoding, cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrJSONDecoding)
	assert.Contains(t, err.Error(), "json_decoding_error")
	assert.Contains(t, err.Error(), cause.Error())
}

func TestAsNetworkError(t *testing.T) {
	assert.Nil(t, AsNetworkError(nil))

	ne := AsNetworkError(fmt.Errorf("wrapped: %w", ErrTimeout))
	require.NotNil(t, ne)
	assert.Equal(t, KindTimeout, ne.Kind)

	foreign := AsNetworkError(errors.New("boom"))
	require.NotNil(t, foreign)
	assert.Equal(t, KindUnknown, foreign.Kind)
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "rate_limited", KindRateLimited.String())
	assert.Equal(t, "kind(99)", ErrorKind(99).String())
}
