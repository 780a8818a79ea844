package dosdevices

var (
	SerialTemplates   = []string{"/dev/ttyS%d", "/dev/ttyUSB%d", "/dev/ttyACM%d"}
	ParallelTemplates = []string{"/dev/lp%d"}
)
