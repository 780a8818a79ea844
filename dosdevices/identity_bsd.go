//go:build darwin || freebsd || dragonfly || netbsd || openbsd
// +build darwin freebsd dragonfly netbsd openbsd

package dosdevices

// HostIdentity treats character devices as disks, the BSDs have no block
// device nodes for them.
func HostIdentity() DeviceIdentity {
	return hostIdentity{diskType: "c"}
}
