package config

import (
	"io/ioutil"
	"os"
	"path"

	dosdevmgr "github.com/YLonely/dosdev-manager"
	"github.com/YLonely/dosdev-manager/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/dosdevmgr/config.yaml"
	DefaultSocketPath = "/var/run/dosdevmgr/daemon.socket"
	DefaultHTTPPort   = 0
)

type Ports struct {
	Serial   map[string]string `yaml:"serial,omitempty"`
	Parallel map[string]string `yaml:"parallel,omitempty"`
}

type Templates struct {
	Serial   []string `yaml:"serial,omitempty"`
	Parallel []string `yaml:"parallel,omitempty"`
}

type Config struct {
	// Root is the namespace root holding the drive and device symlinks
	Root        string    `yaml:"root,omitempty"`
	Socket      string    `yaml:"socket,omitempty"`
	HTTPPort    int       `yaml:"http_port,omitempty"`
	MaxAttempts int       `yaml:"max_attempts,omitempty"`
	Debug       bool      `yaml:"debug,omitempty"`
	Ports       Ports     `yaml:"ports,omitempty"`
	Templates   Templates `yaml:"templates,omitempty"`
}

// DefaultRoot is $WINEPREFIX/dosdevices, or ~/.wine/dosdevices without a prefix
func DefaultRoot() string {
	if prefix := os.Getenv("WINEPREFIX"); prefix != "" {
		return path.Join(prefix, "dosdevices")
	}
	return path.Join(os.Getenv("HOME"), ".wine", "dosdevices")
}

func Default() Config {
	return Config{
		Root:     DefaultRoot(),
		Socket:   DefaultSocketPath,
		HTTPPort: DefaultHTTPPort,
	}
}

// Load reads the config file at p over the defaults. A missing file leaves
// the defaults untouched.
func Load(p string) (Config, error) {
	config := Default()
	if _, err := os.Stat(p); err == nil {
		content, err := ioutil.ReadFile(p)
		if err != nil {
			return config, errors.Wrapf(err, "failed to read %s", p)
		}
		c := Config{}
		if err = yaml.Unmarshal(content, &c); err != nil {
			return config, errors.Wrapf(err, "failed to parse %s", p)
		}
		if err = mergeConfig(&config, &c); err != nil {
			return config, err
		}
	} else if !os.IsNotExist(err) {
		return config, err
	}
	log.WithInterface(log.Logger(dosdevmgr.MainService, "LoadConfig"), "config", config).Debug("config loaded")
	return config, nil
}

func mergeConfig(dst, src *Config) error {
	if src.Root != "" {
		if !path.IsAbs(src.Root) {
			return errors.Errorf("root %q is not an absolute path", src.Root)
		}
		dst.Root = src.Root
	}
	if src.Socket != "" {
		dst.Socket = src.Socket
	}
	if src.HTTPPort < 0 || src.HTTPPort > 65535 {
		return errors.Errorf("invalid http port %d", src.HTTPPort)
	}
	if src.HTTPPort != 0 {
		dst.HTTPPort = src.HTTPPort
	}
	if src.MaxAttempts < 0 {
		return errors.Errorf("invalid max_attempts %d", src.MaxAttempts)
	}
	if src.MaxAttempts != 0 {
		dst.MaxAttempts = src.MaxAttempts
	}
	dst.Debug = dst.Debug || src.Debug
	if len(src.Ports.Serial) > 0 {
		dst.Ports.Serial = src.Ports.Serial
	}
	if len(src.Ports.Parallel) > 0 {
		dst.Ports.Parallel = src.Ports.Parallel
	}
	if len(src.Templates.Serial) > 0 {
		dst.Templates.Serial = src.Templates.Serial
	}
	if len(src.Templates.Parallel) > 0 {
		dst.Templates.Parallel = src.Templates.Parallel
	}
	return nil
}
