package dosdevices

var (
	SerialTemplates   = []string{"/dev/cuau%d"}
	ParallelTemplates []string
)
