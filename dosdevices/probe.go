package dosdevices

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ProbeSequential probes every template with the indexes 0, 1, 2, ... and
// returns the nodes found as NUL terminated strings followed by one more NUL.
// A template is abandoned at the first missing node, or when the next name
// would not fit in what is left of capacity.
func ProbeSequential(templates []string, capacity int) ([]byte, error) {
	for _, t := range templates {
		if strings.Count(t, "%d") != 1 || strings.Count(t, "%") != 1 {
			return nil, errors.Wrapf(ErrBadTemplate, "%q", t)
		}
	}
	if capacity < 1 {
		return nil, &BufferTooSmallError{Required: 1}
	}
	out := make([]byte, 0, capacity)
	// keep room for the list terminator
	remaining := capacity - 1
	for _, t := range templates {
		for i := 0; ; i++ {
			name := fmt.Sprintf(t, i)
			if len(name)+1 > remaining {
				break
			}
			if !nodeExists(name) {
				break
			}
			out = append(out, name...)
			out = append(out, 0)
			remaining -= len(name) + 1
		}
	}
	return append(out, 0), nil
}

// Probe is ProbeSequential decoded into a slice.
func Probe(templates []string, capacity int) ([]string, error) {
	b, err := ProbeSequential(templates, capacity)
	if err != nil {
		return nil, err
	}
	return SplitMultiString(b), nil
}

// SplitMultiString decodes a list of NUL terminated strings ended by an empty
// string.
func SplitMultiString(b []byte) []string {
	var list []string
	for len(b) > 0 {
		i := bytes.IndexByte(b, 0)
		if i < 0 {
			list = append(list, string(b))
			break
		}
		if i == 0 {
			break
		}
		list = append(list, string(b[:i]))
		b = b[i+1:]
	}
	return list
}
