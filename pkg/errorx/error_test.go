package errorx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(BadRequest, "Exceed the maximum of limit (%d)", 50)
	require.Equal(t, BadRequest, err.Code)
	require.Equal(t, "Exceed the maximum of limit (50)", err.Error())
}

func TestErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", New(AlreadyExists, "Duplicated"))

	var errx Error
	require.True(t, errors.As(wrapped, &errx))
	require.Equal(t, AlreadyExists, errx.Code)
}

func TestHTTPStatus(t *testing.T) {
	require.Equal(t, http.StatusNotFound, NotFound.HTTPStatus())
	require.Equal(t, http.StatusConflict, AlreadyExists.HTTPStatus())
	require.Equal(t, http.StatusServiceUnavailable, Aborted.HTTPStatus())
	require.Equal(t, http.StatusInternalServerError, Unknown.Code.HTTPStatus())
}
