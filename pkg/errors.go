package pkg

import (
	"fmt"

	"github.com/gestionpro/lib-license-go/constant"
)

// ForbiddenError indicates an operation refused because no valid license covers it.
type ForbiddenError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Err        error  `json:"err,omitempty"`
}

func (e ForbiddenError) Error() string {
	return fmt.Sprintf("%s - %s", e.Code, e.Message)
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e ForbiddenError) Unwrap() error {
	return e.Err
}

// InternalServerError indicates an unexpected failure in the license gate.
type InternalServerError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Err        error  `json:"err,omitempty"`
}

func (e InternalServerError) Error() string {
	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e InternalServerError) Unwrap() error {
	return e.Err
}

// ResponseError is a struct used to return errors to the client.
type ResponseError struct {
	Code    string `json:"code,omitempty"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

// Error returns the message of the ResponseError.
func (r ResponseError) Error() string {
	return r.Message
}

// ValidateInternalError validates the error and returns an appropriate InternalServerError.
//
// Parameters:
// - err: The error to be validated.
// - entityType: The type of the entity associated with the error.
//
// Returns:
// - An InternalServerError with the appropriate code, title, message.
func ValidateInternalError(err error, entityType string) error {
	return InternalServerError{
		EntityType: entityType,
		Code:       constant.ErrInternalServer.Error(),
		Title:      "Internal Server Error",
		Message:    "The server encountered an unexpected error. Please try again later or contact support.",
		Err:        err,
	}
}

// ValidateBusinessError validates the error and returns the appropriate business error code, title, and message.
// The optional argument is the server message or reason attached to the failure.
func ValidateBusinessError(err error, entityType string, args ...any) error {
	detail := ""
	if len(args) > 0 {
		detail = fmt.Sprint(args...)
	}

	errorMap := map[error]error{
		constant.ErrNoActiveLicense: ForbiddenError{
			EntityType: entityType,
			Code:       constant.ErrNoActiveLicense.Error(),
			Title:      "No active license",
			Message:    "This application has no active license. Activate a license key before using this feature.",
		},
		constant.ErrLicenseInvalid: ForbiddenError{
			EntityType: entityType,
			Code:       constant.ErrLicenseInvalid.Error(),
			Title:      "License is invalid",
			Message:    fmt.Sprintf("The license of this application is not valid: %s. Please renew your license or contact support for assistance.", detail),
		},
		constant.ErrLicenseValidationFail: ForbiddenError{
			EntityType: entityType,
			Code:       constant.ErrLicenseValidationFail.Error(),
			Title:      "Failed to validate license",
			Message:    fmt.Sprintf("License validation failed: %s. Please verify your license key and that the license server is reachable.", detail),
		},
	}

	if mappedError, found := errorMap[err]; found {
		return mappedError
	}

	return err
}
