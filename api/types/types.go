package types

// Drive is one letter as listed by the drive service
type Drive struct {
	Letter     string `json:"letter"`
	Device     string `json:"device,omitempty"`
	MountPoint string `json:"mount_point,omitempty"`
	State      string `json:"state"`
	Class      string `json:"class"`
}

// Port is a serial or parallel port mapping
type Port struct {
	Name   string `json:"name"`
	Target string `json:"target"`
}
