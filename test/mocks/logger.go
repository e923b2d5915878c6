package mocks

import "github.com/gestionpro/lib-license-go/test/helper/testlogger"

// NewLogger returns a license client logger that drops every entry
func NewLogger() *testlogger.TestLogger {
	return testlogger.Discard()
}
