package constant

// Messages returned by license operations when the server gives none
const (
	NoLicenseToValidateMessage     = "no license to validate"
	NoActiveLicenseMessage         = "no active license"
	ConnectionFailedMessage        = "unable to reach the license server"
	DefaultActivationFailedMessage = "license activation failed"
	DefaultValidationFailedMessage = "license validation failed"
	EmptyLicenseKeyMessage         = "license key is required"
)

// Identity derivation constants
const (
	// MachineIDLength is the number of hex characters kept from the machine id hash
	MachineIDLength = 16
	// FingerprintLength is the number of hex characters kept from the hardware fingerprint hash
	FingerprintLength = 32
	// UnknownHostValue replaces OS facts that cannot be read
	UnknownHostValue = "unknown"
	// BytesPerGigabyte is used to round total memory for machine info
	BytesPerGigabyte = 1 << 30
)
