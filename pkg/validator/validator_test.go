package validator

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestValidate_Passes(t *testing.T) {
	require.NoError(t, Validate(addItemRequest{ProductID: "p1", Quantity: 2}))
}

func TestValidate_RequiredFields(t *testing.T) {
	err := Validate(addItemRequest{})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))

	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["ProductID"])
	assert.Contains(t, fields, "Quantity")
}

func TestValidate_EmailTag(t *testing.T) {
	err := Validate(loginRequest{Email: "not-an-email", Password: "longenough"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "must be a valid email address", valErr.Fields()["Email"])
}

func TestValidate_MinTag(t *testing.T) {
	err := Validate(loginRequest{Email: "a@b.co", Password: "short"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "must be at least 8 characters", valErr.Fields()["Password"])
}

func TestValidationError_ErrorMessage(t *testing.T) {
	err := Validate(addItemRequest{Quantity: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ProductID")
	assert.Contains(t, err.Error(), "is required")
}

func TestDecodeAndValidate(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"productId":"p1","quantity":2}`))

	var dst addItemRequest
	require.NoError(t, DecodeAndValidate(req, &dst))
	assert.Equal(t, "p1", dst.ProductID)
}

func TestDecodeAndValidate_BadJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{broken`))

	var dst addItemRequest
	require.Error(t, DecodeAndValidate(req, &dst))
}

func TestDecodeAndValidate_FailsValidation(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"productId":"p1","quantity":0}`))

	var dst addItemRequest
	err := DecodeAndValidate(req, &dst)
	require.Error(t, err)

	var valErr *ValidationError
	assert.True(t, errors.As(err, &valErr))
}
