package signals

import (
	"os"
	"syscall"

	dosdevmgr "github.com/YLonely/dosdev-manager"
	"github.com/YLonely/dosdev-manager/log"
)

var HandledSignals = []os.Signal{
	syscall.SIGTERM,
	syscall.SIGINT,
}

// HandleSignals closes the returned channel on the first signal or error
func HandleSignals(signals chan os.Signal, errorC ...chan error) chan struct{} {
	done := make(chan struct{}, 1)
	merged := make(chan error, len(errorC))
	for _, c := range errorC {
		go func(c chan error) {
			if err, ok := <-c; ok {
				merged <- err
			}
		}(c)
	}
	go func() {
		select {
		case s := <-signals:
			log.Logger(dosdevmgr.MainService, "").WithField("signal", s).Info("Receive a signal")
		case err := <-merged:
			log.Logger(dosdevmgr.MainService, "").WithError(err).Error()
		}
		close(done)
	}()
	return done
}
