package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Status(New(Validation, "bad input")))
	assert.Equal(t, http.StatusBadRequest, Status(New(IllegalTransition, "no")))
	assert.Equal(t, http.StatusNotFound, Status(New(NotFound, "missing")))
	assert.Equal(t, http.StatusForbidden, Status(New(Forbidden, "nope")))
	assert.Equal(t, http.StatusConflict, Status(New(Conflict, "taken")))
	assert.Equal(t, http.StatusInternalServerError, Status(New(Storage, "db down")))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("plain error")))
}

func TestMessageScrubsStorageErrors(t *testing.T) {
	assert.Equal(t, "taken", Message(New(Conflict, "taken")))
	assert.Equal(t, "Internal server error", Message(Wrap(Storage, "socket reset by peer", errors.New("raw"))))
	assert.Equal(t, "Internal server error", Message(errors.New("plain error")))
}

func TestWrapPreservesKindThroughWrapping(t *testing.T) {
	inner := New(Conflict, "taken")
	outer := fmt.Errorf("admission: %w", inner)

	assert.Equal(t, Conflict, KindOf(outer))
	assert.Equal(t, http.StatusConflict, Status(outer))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap(Conflict, "taken", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "taken")
	assert.Contains(t, err.Error(), "duplicate key")
}
