package validator

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=10"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

func TestValidate_Valid(t *testing.T) {
	err := Validate(sample{Email: "ada@example.com", Name: "Ada", Role: "user"})
	assert.NoError(t, err)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	err := Validate(sample{Email: "not-an-email", Name: "", Role: "root", Quantity: -1})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))

	fields := valErr.Fields()
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "must be one of: admin user", fields["role"])
	assert.Equal(t, "must be greater than or equal to 0", fields["quantity"])
}

func TestValidate_MaxMessage(t *testing.T) {
	err := Validate(sample{Email: "ada@example.com", Name: "a name that is far too long"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "must be at most 10 characters", valErr.Fields()["name"])
}

func TestValidationError_ErrorJoinsMessages(t *testing.T) {
	err := Validate(sample{})
	require.Error(t, err)

	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "name")
}

func TestDecodeAndValidate(t *testing.T) {
	body := bytes.NewReader([]byte(`{"email":"ada@example.com","name":"Ada"}`))
	r := httptest.NewRequest("POST", "/", body)

	var dst sample
	require.NoError(t, DecodeAndValidate(r, &dst))
	assert.Equal(t, "ada@example.com", dst.Email)
}

func TestDecodeAndValidate_BadJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", bytes.NewReader([]byte(`{broken`)))

	var dst sample
	err := DecodeAndValidate(r, &dst)
	require.Error(t, err)

	var valErr *ValidationError
	assert.False(t, errors.As(err, &valErr))
}

func TestDecodeAndValidate_InvalidPayload(t *testing.T) {
	r := httptest.NewRequest("POST", "/", bytes.NewReader([]byte(`{"email":"nope"}`)))

	var dst sample
	err := DecodeAndValidate(r, &dst)
	require.Error(t, err)

	var valErr *ValidationError
	assert.True(t, errors.As(err, &valErr))
}
