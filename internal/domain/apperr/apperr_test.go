package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Conflict("duplicate"), http.StatusBadRequest},
		{Auth("nope"), http.StatusUnauthorized},
		{Forbidden("not yours"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{Internal(errors.New("db down")), http.StatusInternalServerError},
		{errors.New("untyped"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, HTTPStatus(c.err), "error: %v", c.err)
	}
}

func TestPublicMessageRedactsInternal(t *testing.T) {
	err := Internal(errors.New("pq: connection refused"))

	assert.Equal(t, "Internal server error", PublicMessage(err))
	assert.NotContains(t, PublicMessage(err), "connection refused")
}

func TestPublicMessagePassesDomainMessages(t *testing.T) {
	assert.Equal(t, "User not found", PublicMessage(NotFound("User not found")))
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("raw")))
}

func TestKindOfUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("while following: %w", Conflict("You are already following"))

	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.Equal(t, "You are already following", PublicMessage(wrapped))
}

func TestInternalPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "boom")
}
