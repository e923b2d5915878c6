package model

// HostFacts is the snapshot of OS-reported values the machine identity is derived from
type HostFacts struct {
	Hostname    string
	Platform    string
	Arch        string
	CPUModel    string
	CPUCount    int
	TotalMemory uint64
}

// MachineIdentity binds a license to one host
type MachineIdentity struct {
	MachineID           string `json:"machineId"`
	HardwareFingerprint string `json:"hardwareFingerprint"`
}

// MachineInfo is the diagnostic view of the current host
type MachineInfo struct {
	MachineID           string `json:"machineId"`
	HardwareFingerprint string `json:"hardwareFingerprint"`
	Hostname            string `json:"hostname"`
	Platform            string `json:"platform"`
	Arch                string `json:"arch"`
	CPUs                int    `json:"cpus"`
	TotalMemoryGB       uint64 `json:"totalMemoryGb"`
	ProtectedOSID       string `json:"protectedOsId,omitempty"`
}
