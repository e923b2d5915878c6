package constant

import "errors"

// Structured error codes for license gate responses
var (
	ErrNoActiveLicense       = errors.New("LCS-0001")
	ErrLicenseInvalid        = errors.New("LCS-0002")
	ErrLicenseValidationFail = errors.New("LCS-0003")
	ErrInternalServer        = errors.New("LCS-0004")
)
