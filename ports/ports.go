package ports

import (
	"sort"
	"strconv"
	"strings"

	dosdevmgr "github.com/YLonely/dosdev-manager"
	"github.com/YLonely/dosdev-manager/dosdevices"
	"github.com/YLonely/dosdev-manager/log"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// MaxPorts bounds the port numbers of each kind, COM1 to COM256.
const MaxPorts = 256

// probeCapacity is large enough for every node of a full set of ports.
const probeCapacity = MaxPorts * 64

type Kind string

const (
	Serial   Kind = "serial"
	Parallel Kind = "parallel"
)

// Prefix is the lower-case device name prefix used for the kind.
func (k Kind) Prefix() string {
	if k == Parallel {
		return "lpt"
	}
	return "com"
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "serial", "com":
		return Serial, nil
	case "parallel", "lpt":
		return Parallel, nil
	}
	return "", errors.Errorf("unknown port kind %q", s)
}

// Port is a device name mapped to a host node.
type Port struct {
	Name   string `json:"name"`
	Number int    `json:"number"`
	Target string `json:"target"`
}

// Manager maps ports of one kind into a namespace root.
type Manager struct {
	Root string
	Kind Kind
	// Templates are probed for host nodes, see dosdevices.ProbeSequential.
	Templates []string
	// UserDefined maps names like "COM3" to host nodes. They take their
	// number before any detected node is assigned one.
	UserDefined map[string]string
}

func NewManager(root string, kind Kind, userDefined map[string]string) *Manager {
	templates := dosdevices.SerialTemplates
	if kind == Parallel {
		templates = dosdevices.ParallelTemplates
	}
	return &Manager{
		Root:        root,
		Kind:        kind,
		Templates:   templates,
		UserDefined: userDefined,
	}
}

// Scan returns the host nodes found by probing the templates.
func (m *Manager) Scan() ([]string, error) {
	if len(m.Templates) == 0 {
		return nil, nil
	}
	return dosdevices.Probe(m.Templates, probeCapacity)
}

// Plan decides the port names without touching the namespace. User defined
// ports come first; detected nodes fill the lowest unused numbers.
func (m *Manager) Plan() ([]Port, error) {
	var (
		ports []Port
		used  [MaxPorts + 1]bool
	)
	names := make([]string, 0, len(m.UserDefined))
	for name := range m.UserDefined {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		target := m.UserDefined[name]
		n, ok := m.number(name)
		if !ok || target == "" {
			log.Logger(dosdevmgr.DeviceService, "Plan").WithField("port", name).Warn("ignoring user defined port")
			continue
		}
		// names are case insensitive, COM3 and com3 are the same port
		if used[n] {
			log.Logger(dosdevmgr.DeviceService, "Plan").WithField("port", name).Warn("ignoring duplicate user defined port")
			continue
		}
		used[n] = true
		ports = append(ports, Port{Name: m.name(n), Number: n, Target: target})
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i].Number < ports[j].Number })

	nodes, err := m.Scan()
	if err != nil {
		return nil, err
	}
	n := nextFree(&used, 1)
	for _, node := range nodes {
		if n > MaxPorts {
			break
		}
		used[n] = true
		ports = append(ports, Port{Name: m.name(n), Number: n, Target: node})
		n = nextFree(&used, n)
	}
	return ports, nil
}

// Install writes every planned port as a named mapping.
func (m *Manager) Install() ([]Port, error) {
	ports, err := m.Plan()
	if err != nil {
		return nil, err
	}
	logger := log.Logger(dosdevmgr.DeviceService, "Install")
	for _, p := range ports {
		if err := dosdevices.WriteMapping(m.Root, p.Name, p.Target); err != nil {
			return nil, errors.Wrapf(err, "failed to map %s", p.Name)
		}
		logger.WithFields(logrus.Fields{"port": p.Name, "target": p.Target}).Debug("port mapped")
	}
	return ports, nil
}

func (m *Manager) name(n int) string {
	return m.Kind.Prefix() + strconv.Itoa(n)
}

// number parses "COM3" style names of the manager's kind. Numbers run from 1
// to MaxPorts-1 for user defined ports.
func (m *Manager) number(name string) (int, bool) {
	prefix := m.Kind.Prefix()
	if len(name) <= len(prefix) || !strings.EqualFold(name[:len(prefix)], prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(name[len(prefix):])
	if err != nil || n < 1 || n >= MaxPorts {
		return 0, false
	}
	return n, true
}

func nextFree(used *[MaxPorts + 1]bool, n int) int {
	for n <= MaxPorts && used[n] {
		n++
	}
	return n
}
