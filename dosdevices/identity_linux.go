//go:build linux
// +build linux

package dosdevices

// HostIdentity treats block devices as disks.
func HostIdentity() DeviceIdentity {
	return hostIdentity{diskType: "b"}
}
