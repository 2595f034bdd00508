package common

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, NewValidationError("qty", "must be positive").HTTPStatus())
	assert.Equal(t, http.StatusNotFound, NewNotFoundError("tare").HTTPStatus())
	assert.Equal(t, http.StatusConflict, NewConflictError("code taken").HTTPStatus())
	assert.Equal(t, http.StatusConflict, NewInvalidStateError("order is cancelled").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, (&DomainError{Kind: KindInternal, Message: "boom"}).HTTPStatus())
}

func TestKindHelpers(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError("f", "m")))
	assert.True(t, IsNotFound(NewNotFoundError("r")))
	assert.True(t, IsConflict(NewConflictError("m")))
	assert.True(t, IsInvalidState(NewInvalidStateError("m")))

	assert.False(t, IsConflict(NewNotFoundError("r")))
	assert.False(t, IsNotFound(fmt.Errorf("plain error")))
}

func TestKindHelpersUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("saving tare: %w", NewConflictError("code taken"))
	assert.True(t, IsConflict(wrapped))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t,
		"ValidationError: must be positive (qty)",
		NewValidationError("qty", "must be positive").Error())
	assert.Equal(t, "NotFoundError: tare not found", NewNotFoundError("tare").Error())
}

func TestValidatePaginationParams(t *testing.T) {
	limit, offset := ValidatePaginationParams(0, 0)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 0, offset)

	limit, offset = ValidatePaginationParams(10000, -3)
	assert.Equal(t, 500, limit)
	assert.Equal(t, 0, offset)

	limit, offset = ValidatePaginationParams(25, 100)
	assert.Equal(t, 25, limit)
	assert.Equal(t, 100, offset)
}
