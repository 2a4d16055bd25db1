package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusCode(nil))
	assert.Equal(t, http.StatusForbidden, StatusCode(NewOriginRejected("x")))
	assert.Equal(t, http.StatusTooManyRequests, StatusCode(NewRateLimited("x")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(NewBackingStoreUnavailable("x", errors.New("dial"))))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusCode(NewValidation("x")))
	assert.Equal(t, http.StatusBadRequest, StatusCode(NewInvalidInput("x")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("plain")))
}

func TestTypeOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("catalog: %w", NewRateLimited("slow down"))
	assert.Equal(t, TypeRateLimited, TypeOf(err))
	assert.Equal(t, "slow down", PublicMessage(err))
}

func TestCauseMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewBackingStoreUnavailable("Erro ao buscar procedimentos do banco de dados", cause)

	assert.Equal(t, "connection refused", CauseMessage(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "", CauseMessage(nil))
	assert.Equal(t, "Erro desconhecido", CauseMessage(errors.New("x")))
}
