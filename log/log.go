package log

import (
	"encoding/json"
	"sync"

	dosdevmgr "github.com/YLonely/dosdev-manager"
	"github.com/sirupsen/logrus"
)

type logItem struct {
	stype  dosdevmgr.ServiceType
	method string
}

var (
	loggers = map[logItem]*logrus.Entry{}
	mu      sync.Mutex
)

// Logger returns the shared entry tagged with the service and method names
func Logger(t dosdevmgr.ServiceType, method string) *logrus.Entry {
	mu.Lock()
	defer mu.Unlock()
	item := logItem{
		stype:  t,
		method: method,
	}
	logger, exists := loggers[item]
	if !exists {
		logger = logrus.WithFields(logrus.Fields{
			"service": t.String(),
			"method":  method,
		})
		loggers[item] = logger
	}
	return logger
}

// Raw returns the standard logger without any fields
func Raw() *logrus.Logger {
	return logrus.StandardLogger()
}

// SetDebug switches the standard logger between info and debug level
func SetDebug(debug bool) {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
		return
	}
	logrus.SetLevel(logrus.InfoLevel)
}

func WithInterface(entry *logrus.Entry, key string, value interface{}) *logrus.Entry {
	valueJSON, _ := json.Marshal(value)
	return entry.WithField(key, string(valueJSON))
}
