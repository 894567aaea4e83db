package usecase

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_Formatting(t *testing.T) {
	require.Equal(t, "usecase: INVALID_INPUT (empty_message)", newError(ErrorInvalidInput, "empty_message", nil).Error())

	cause := errors.New("timeout")
	err := newError(ErrorUpstream, "ssm_load_error", cause)
	require.Equal(t, "usecase: UPSTREAM_ERROR (ssm_load_error): timeout", err.Error())
	require.ErrorIs(t, err, cause)

	var nilErr *Error
	require.Empty(t, nilErr.Error())
	require.NoError(t, nilErr.Unwrap())
}

func TestCodeOf(t *testing.T) {
	require.Equal(t, ErrorInvalidInput, CodeOf(newError(ErrorInvalidInput, "x", nil)))
	require.Equal(t, ErrorUpstream, CodeOf(fmt.Errorf("wrapped: %w", newError(ErrorUpstream, "x", nil))))
	require.Equal(t, ErrorInternal, CodeOf(newError(ErrorInternal, "x", nil)))
	require.Equal(t, ErrorInternal, CodeOf(errors.New("boom")))
	require.Equal(t, ErrorInternal, CodeOf(&Error{Code: "SOMETHING_ELSE"}))
}

func TestErrorCode_HTTPStatus(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, ErrorInvalidInput.HTTPStatus())
	require.Equal(t, http.StatusBadGateway, ErrorUpstream.HTTPStatus())
	require.Equal(t, http.StatusInternalServerError, ErrorInternal.HTTPStatus())
}
