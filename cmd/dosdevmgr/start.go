package main

import (
	"context"
	"os"
	"os/signal"

	dosdevmgr "github.com/YLonely/dosdev-manager"
	"github.com/YLonely/dosdev-manager/http"
	"github.com/YLonely/dosdev-manager/log"
	"github.com/YLonely/dosdev-manager/manager"
	"github.com/YLonely/dosdev-manager/signals"
	"github.com/urfave/cli"
)

var startCommand = cli.Command{
	Name:  "start",
	Usage: "start the daemon",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "http-port",
			Usage: "serve the JSON gateway on this port, 0 disables it",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		if p := c.Int("http-port"); p != 0 {
			cfg.HTTPPort = p
		}
		signalC := make(chan os.Signal, 2048)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		s, err := manager.NewServer(cfg)
		if err != nil {
			return err
		}
		errorCs := []chan error{s.Start(ctx)}
		var gateway *http.Server
		if cfg.HTTPPort != 0 {
			gateway = http.NewServer(cfg.Socket, cfg.HTTPPort)
			errorCs = append(errorCs, gateway.Start())
		}
		signal.Notify(signalC, signals.HandledSignals...)
		done := signals.HandleSignals(signalC, errorCs...)
		log.Logger(dosdevmgr.MainService, "").WithField("root", cfg.Root).Info("Daemon started")
		<-done
		cancel()
		log.Logger(dosdevmgr.MainService, "").Info("Shutting down")
		if gateway != nil {
			if err := gateway.Shutdown(); err != nil {
				log.Logger(dosdevmgr.HttpService, "Shutdown").Error(err)
			}
		}
		s.Shutdown()
		return nil
	},
}
