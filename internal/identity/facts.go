package identity

import (
	"os"
	"runtime"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/denisbrodbeck/machineid"
	cn "github.com/gestionpro/lib-license-go/constant"
	"github.com/gestionpro/lib-license-go/model"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// FactsSource reports the OS values the identity is derived from
type FactsSource interface {
	Facts() model.HostFacts
	ProtectedOSID(appName string) string
}

// SystemSource reads host facts from the running OS.
// Values the OS does not report are replaced, never returned as errors.
type SystemSource struct {
	logger log.Logger
}

// NewSystemSource creates a FactsSource backed by the running OS
func NewSystemSource(logger log.Logger) *SystemSource {
	return &SystemSource{logger: logger}
}

// Facts implements FactsSource
func (s *SystemSource) Facts() model.HostFacts {
	facts := model.HostFacts{
		Hostname: cn.UnknownHostValue,
		Platform: runtime.GOOS,
		Arch:     runtime.GOARCH,
		CPUModel: cn.UnknownHostValue,
		CPUCount: runtime.NumCPU(),
	}

	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		facts.Hostname = hostname
	} else {
		s.logger.Debugf("Hostname unavailable, using %q: %v", cn.UnknownHostValue, err)
	}

	if infos, err := cpu.Info(); err == nil && len(infos) > 0 && infos[0].ModelName != "" {
		facts.CPUModel = infos[0].ModelName
	} else {
		s.logger.Debugf("CPU model unavailable, using %q: %v", cn.UnknownHostValue, err)
	}

	if count, err := cpu.Counts(true); err == nil && count > 0 {
		facts.CPUCount = count
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		facts.TotalMemory = vm.Total
	} else {
		s.logger.Debugf("Total memory unavailable: %v", err)
	}

	return facts
}

// ProtectedOSID implements FactsSource. It returns the OS installation id
// hashed with appName, or an empty string when the OS exposes none.
func (s *SystemSource) ProtectedOSID(appName string) string {
	id, err := machineid.ProtectedID(appName)
	if err != nil {
		s.logger.Debugf("OS machine id unavailable: %v", err)

		return ""
	}

	return id
}

// StaticSource is a FactsSource returning fixed values
type StaticSource struct {
	HostFacts model.HostFacts
	OSID      string
}

// Facts implements FactsSource
func (s StaticSource) Facts() model.HostFacts {
	return s.HostFacts
}

// ProtectedOSID implements FactsSource
func (s StaticSource) ProtectedOSID(string) string {
	return s.OSID
}
