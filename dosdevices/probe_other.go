//go:build !linux && !freebsd && !dragonfly
// +build !linux,!freebsd,!dragonfly

package dosdevices

var (
	SerialTemplates   []string
	ParallelTemplates []string
)
