package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIsMatchesKind(t *testing.T) {
	err := NotFound("person p9 not found")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))

	wrapped := fmt.Errorf("approve: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

func TestStore(t *testing.T) {
	t.Run("nil cause", func(t *testing.T) {
		assert.NoError(t, Store("update", nil))
	})

	t.Run("wraps raw cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := Store("update person", cause)

		assert.Equal(t, KindStore, KindOf(err))
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("keeps tagged error", func(t *testing.T) {
		tagged := NotFound("gone")
		assert.Same(t, tagged, Store("update person", tagged))
	})
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{Unauthorized("x"), http.StatusUnauthorized},
		{Forbidden("x"), http.StatusForbidden},
		{BadRequest("x"), http.StatusBadRequest},
		{NotFound("x"), http.StatusNotFound},
		{Conflict("x"), http.StatusConflict},
		{Store("x", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("untagged"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestPublicMessageHidesCause(t *testing.T) {
	err := Store("failed to update person", errors.New("pq: password authentication failed"))
	assert.Equal(t, "failed to update person", PublicMessage(err))
	assert.Equal(t, "internal error", PublicMessage(errors.New("raw")))
}
