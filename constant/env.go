package constant

// Environment variable names
const (
	// License server base URL
	EnvLicenseServerURL = "GESTIONPRO_LICENSE_SERVER_URL"

	// Path of the file the activated license key is persisted to
	EnvLicenseFile = "GESTIONPRO_LICENSE_FILE"

	// Application name environment variable
	EnvApplicationName = "APPLICATION_NAME"

	// Request timeout, as a Go duration string
	EnvLicenseTimeout = "GESTIONPRO_LICENSE_TIMEOUT"

	// Periodic validation interval, as a Go duration string
	EnvRefreshInterval = "GESTIONPRO_LICENSE_REFRESH_INTERVAL"
)

// DefaultApplicationName is used when APPLICATION_NAME is not set
const DefaultApplicationName = "gestionpro"

// DefaultLicenseFile is the default key file name, relative to the working directory
const DefaultLicenseFile = "license.yaml"
