package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusByKind(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewValidationError("bad")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(NewConflictError("dup")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NewNotFoundError("missing")))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(NewForbiddenError("no")))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(NewBusinessRuleError("over budget")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("driver: bad connection")))
}

func TestHTTPStatusUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("posting expenditure: %w", NewBusinessRuleError("over budget"))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(wrapped))
	assert.Equal(t, ErrorKindBusinessRule, KindOf(wrapped))
}

func TestMapStorageError(t *testing.T) {
	err := MapStorageError(errors.New("Error 1062 (23000): Duplicate entry 'x' for key 'idx_activity_date'"))
	assert.Equal(t, ErrorKindConflict, KindOf(err))

	err = MapStorageError(errors.New("Error 1452 (23000): Cannot add or update a child row: a foreign key constraint fails"))
	assert.Equal(t, ErrorKindValidation, KindOf(err))

	plain := errors.New("driver: bad connection")
	assert.Equal(t, plain, MapStorageError(plain))
	assert.NoError(t, MapStorageError(nil))
}
