package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeOrganizationNotFound, http.StatusNotFound},
		{CodeTagNotFound, http.StatusNotFound},
		{CodeTagNotInOrganization, http.StatusForbidden},
		{CodePermissionDenied, http.StatusForbidden},
		{CodeValidation, http.StatusBadRequest},
		{CodeAlreadyExists, http.StatusConflict},
		{CodeInvalidCredentials, http.StatusUnauthorized},
		{CodeTokenExpired, http.StatusUnauthorized},
		{CodeSubscriptionError, http.StatusBadGateway},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_NEW"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.HTTPStatus(), string(tt.code))
	}
}

func TestErrorCarriesContextPayload(t *testing.T) {
	err := TagNotInOrganization("tag1", "org1")

	details, ok := err.Details.(map[string]string)
	assert.True(t, ok)
	assert.Equal(t, "tag1", details["tagId"])
	assert.Equal(t, "org1", details["organizationId"])
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("delete tag: %w", TagNotInOrganization("t", "o"))

	assert.True(t, errors.Is(err, TagNotInOrganization("", "")))
	assert.False(t, errors.Is(err, TagNotFound("")))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodePermissionDenied, CodeOf(PermissionDenied("tag:create")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func TestInternalWrapsCause(t *testing.T) {
	cause := errors.New("mongo: no reachable servers")
	err := Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "no reachable servers")
}
