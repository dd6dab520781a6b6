// Package apperror provides typed domain errors with machine-readable
// codes that map onto HTTP statuses at the handler boundary.
//
// Services return named errors carrying a context payload:
//
//	return apperror.TagNotInOrganization(tagID, orgID)
//
// Handlers never inspect messages; they hand the error to the shared
// responder which switches on the code.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeOrganizationNotFound     Code = "ORGANIZATION_NOT_FOUND"
	CodeProjectNotFound          Code = "PROJECT_NOT_FOUND"
	CodeTagNotFound              Code = "TAG_NOT_FOUND"
	CodeUserNotFound             Code = "USER_NOT_FOUND"
	CodeAPIKeyNotFound           Code = "API_KEY_NOT_FOUND"
	CodeTagNotInOrganization     Code = "TAG_NOT_IN_ORGANIZATION"
	CodeProjectNotInOrganization Code = "PROJECT_NOT_IN_ORGANIZATION"
	CodePermissionDenied         Code = "PERMISSION_DENIED"
	CodeValidation               Code = "VALIDATION"
	CodeAlreadyExists            Code = "ALREADY_EXISTS"
	CodeInvalidCredentials       Code = "INVALID_CREDENTIALS"
	CodeTokenExpired             Code = "TOKEN_EXPIRED"
	CodeSubscriptionError        Code = "SUBSCRIPTION_ERROR"
	CodeInternal                 Code = "INTERNAL"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeOrganizationNotFound, CodeProjectNotFound, CodeTagNotFound,
		CodeUserNotFound, CodeAPIKeyNotFound:
		return http.StatusNotFound
	case CodeTagNotInOrganization, CodeProjectNotInOrganization, CodePermissionDenied:
		return http.StatusForbidden
	case CodeValidation:
		return http.StatusBadRequest
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeInvalidCredentials, CodeTokenExpired:
		return http.StatusUnauthorized
	case CodeSubscriptionError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional context payload.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error. Two *Errors match when
// their codes are equal, so sentinel comparison works through wrapping.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// CodeOf extracts the code from err, or CodeInternal for foreign errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// OrganizationNotFound reports a missing organization.
func OrganizationNotFound(organizationID string) *Error {
	return &Error{
		Code:    CodeOrganizationNotFound,
		Message: "organization not found",
		Details: map[string]string{"organizationId": organizationID},
	}
}

// ProjectNotFound reports a missing project.
func ProjectNotFound(projectID string) *Error {
	return &Error{
		Code:    CodeProjectNotFound,
		Message: "project not found",
		Details: map[string]string{"projectId": projectID},
	}
}

// TagNotFound reports a missing tag.
func TagNotFound(tagID string) *Error {
	return &Error{
		Code:    CodeTagNotFound,
		Message: "tag not found",
		Details: map[string]string{"tagId": tagID},
	}
}

// UserNotFound reports a missing user.
func UserNotFound(userID string) *Error {
	return &Error{
		Code:    CodeUserNotFound,
		Message: "user not found",
		Details: map[string]string{"userId": userID},
	}
}

// APIKeyNotFound reports a missing API key.
func APIKeyNotFound(keyID string) *Error {
	return &Error{
		Code:    CodeAPIKeyNotFound,
		Message: "api key not found",
		Details: map[string]string{"keyId": keyID},
	}
}

// TagNotInOrganization reports a tag that belongs to a different tenant.
func TagNotInOrganization(tagID, organizationID string) *Error {
	return &Error{
		Code:    CodeTagNotInOrganization,
		Message: "tag does not belong to this organization",
		Details: map[string]string{"tagId": tagID, "organizationId": organizationID},
	}
}

// ProjectNotInOrganization reports a project that belongs to a different tenant.
func ProjectNotInOrganization(projectID, organizationID string) *Error {
	return &Error{
		Code:    CodeProjectNotInOrganization,
		Message: "project does not belong to this organization",
		Details: map[string]string{"projectId": projectID, "organizationId": organizationID},
	}
}

// PermissionDenied reports a failed permission check for an action.
func PermissionDenied(action string) *Error {
	return &Error{
		Code:    CodePermissionDenied,
		Message: "permission denied",
		Details: map[string]string{"action": action},
	}
}

// Validation reports invalid input.
func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// AlreadyExists reports a uniqueness conflict.
func AlreadyExists(message string) *Error {
	return &Error{Code: CodeAlreadyExists, Message: message}
}

// InvalidCredentials reports a failed login.
func InvalidCredentials() *Error {
	return &Error{Code: CodeInvalidCredentials, Message: "invalid credentials"}
}

// TokenExpired reports an expired or no longer valid token.
func TokenExpired() *Error {
	return &Error{Code: CodeTokenExpired, Message: "token expired"}
}

// SubscriptionError wraps a billing provider failure.
func SubscriptionError(message string, cause error) *Error {
	return &Error{Code: CodeSubscriptionError, Message: message, cause: cause}
}

// Internal wraps an unexpected failure.
func Internal(cause error) *Error {
	return &Error{Code: CodeInternal, Message: "internal error", cause: cause}
}
