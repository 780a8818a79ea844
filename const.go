package dosdevmgr

import "math"

type ServiceType uint16

const (
	ServiceTypePrefixLen int    = 2
	ServiceTypeMax       uint16 = math.MaxUint16
)

const (
	MainService ServiceType = iota + 10
	DriveService
	DeviceService
	HttpService
)

var Type2Services = map[ServiceType]string{
	MainService:   "main",
	DriveService:  "drive",
	DeviceService: "device",
	HttpService:   "http",
}

func (t ServiceType) String() string {
	if name, exists := Type2Services[t]; exists {
		return name
	}
	return "unknown"
}
