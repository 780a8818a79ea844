package device

import "github.com/YLonely/dosdev-manager/api/types"

const (
	MethodRead         string = "Read"
	MethodWrite        string = "Write"
	MethodScanPorts    string = "ScanPorts"
	MethodInstallPorts string = "InstallPorts"
)

type ReadRequest struct {
	Name string
	// Capacity is the room the caller has for the target, terminator included.
	// Zero means unbounded.
	Capacity int
}

type ReadResponse struct {
	Target string
	Error  types.Error
}

type WriteRequest struct {
	Name string
	// An empty Target removes the mapping
	Target string
}

type WriteResponse struct {
	Error types.Error
}

type PortsRequest struct {
	Kind string
}

type PortsResponse struct {
	Ports []types.Port
	Error types.Error
}
