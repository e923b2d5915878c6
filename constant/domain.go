package constant

// URLConstants defines license server endpoint URLs
const (
	// DefaultLicenseServerBaseURL is the production license server URL
	DefaultLicenseServerBaseURL = "https://licence.gestionpro.fr/api"
)

// Endpoint paths appended to the license server base URL
const (
	ActivatePath = "/activate"
	ValidatePath = "/validate"
	HealthPath   = "/health"
)

// HealthStatusOK is the status field value the license server reports when healthy
const HealthStatusOK = "OK"
