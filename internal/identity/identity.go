// Package identity derives the machine identity a license is bound to.
package identity

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/LerianStudio/lib-commons/commons"
	cn "github.com/gestionpro/lib-license-go/constant"
	"github.com/gestionpro/lib-license-go/model"
)

// fingerprintFacts fixes the key order of the hashed JSON document
type fingerprintFacts struct {
	CPU      string `json:"cpu"`
	CPUs     int    `json:"cpus"`
	Memory   uint64 `json:"memory"`
	Platform string `json:"platform"`
	Arch     string `json:"arch"`
	Hostname string `json:"hostname"`
}

// GenerateMachineID returns the first 16 hex characters, upper-cased, of the
// MD5 of hostname, platform and architecture.
func GenerateMachineID(facts model.HostFacts) string {
	sum := md5.Sum([]byte(facts.Hostname + facts.Platform + facts.Arch))

	return strings.ToUpper(hex.EncodeToString(sum[:])[:cn.MachineIDLength])
}

// GenerateHardwareFingerprint returns the first 32 lower-case hex characters
// of the SHA-256 of the host facts serialized as JSON.
func GenerateHardwareFingerprint(facts model.HostFacts) string {
	var payload bytes.Buffer

	enc := json.NewEncoder(&payload)
	enc.SetEscapeHTML(false)

	// Encoding a struct of strings and integers cannot fail.
	_ = enc.Encode(fingerprintFacts{
		CPU:      facts.CPUModel,
		CPUs:     facts.CPUCount,
		Memory:   facts.TotalMemory,
		Platform: facts.Platform,
		Arch:     facts.Arch,
		Hostname: facts.Hostname,
	})

	doc := strings.TrimSuffix(payload.String(), "\n")

	return strings.ToLower(commons.HashSHA256(doc))[:cn.FingerprintLength]
}

// Generate computes both halves of the machine identity
func Generate(facts model.HostFacts) model.MachineIdentity {
	return model.MachineIdentity{
		MachineID:           GenerateMachineID(facts),
		HardwareFingerprint: GenerateHardwareFingerprint(facts),
	}
}
