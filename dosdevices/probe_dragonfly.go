package dosdevices

var (
	SerialTemplates   = []string{"/dev/cuaa%d"}
	ParallelTemplates []string
)
