// FilePath: internal/errors/errors_test.go
package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusCodeMapping(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, StatusCode(NewValidationError("bad", nil)))
	require.Equal(t, http.StatusUnauthorized, StatusCode(NewAuthError("no", nil)))
	require.Equal(t, http.StatusNotFound, StatusCode(NewNotFoundError("gone", nil)))
	require.Equal(t, http.StatusConflict, StatusCode(NewConflictError("dupe", nil)))
	require.Equal(t, http.StatusInternalServerError, StatusCode(NewInternalError("boom", nil)))
	require.Equal(t, http.StatusInternalServerError, StatusCode(stderrors.New("plain")))
}

func TestUnwrapChains(t *testing.T) {
	inner := stderrors.New("disk full")
	err := NewStorageError("write failed", inner)
	require.ErrorIs(t, err, inner)
	require.Contains(t, err.Error(), "disk full")
	require.Contains(t, err.Error(), "write failed")
}

func TestTypePredicates(t *testing.T) {
	require.True(t, IsNotFound(NewNotFoundError("gone", nil)))
	require.False(t, IsNotFound(NewValidationError("bad", nil)))
	require.True(t, IsValidation(NewValidationError("bad", nil)))
	require.True(t, IsConflict(NewConflictError("dupe", nil)))
	require.False(t, IsConflict(stderrors.New("plain")))
}
