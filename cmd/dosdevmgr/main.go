package main

import (
	"context"
	"fmt"
	"os"

	"github.com/YLonely/dosdev-manager/client"
	"github.com/YLonely/dosdev-manager/config"
	"github.com/YLonely/dosdev-manager/log"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "dosdevmgr"
	app.Usage = "dosdevmgr manages the drive letters and device links of a dosdevices directory"
	app.Version = "v0.1.0"
	app.Commands = []cli.Command{
		startCommand,
		driveCommand,
		deviceCommand,
		portsCommand,
		probeCommand,
	}
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "path to the config file",
			Value: config.DefaultConfigPath,
		},
		cli.StringFlag{
			Name:  "socket",
			Usage: "path to the daemon socket, overrides the config",
		},
		cli.StringFlag{
			Name:  "root",
			Usage: "dosdevices directory, overrides the config",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug output in logs",
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Raw().Error(err)
		os.Exit(1)
	}
}

func loadConfig(clictx *cli.Context) (config.Config, error) {
	c, err := config.Load(clictx.GlobalString("config"))
	if err != nil {
		return c, err
	}
	if s := clictx.GlobalString("socket"); s != "" {
		c.Socket = s
	}
	if r := clictx.GlobalString("root"); r != "" {
		c.Root = r
	}
	c.Debug = c.Debug || clictx.GlobalBool("debug")
	log.SetDebug(c.Debug)
	return c, nil
}

// withClient connects to the daemon for the duration of f
func withClient(clictx *cli.Context, f func(*client.Client) error) error {
	cfg, err := loadConfig(clictx)
	if err != nil {
		return err
	}
	c, err := client.NewDaemonClient(client.Config{SocketPath: cfg.Socket})
	if err != nil {
		return err
	}
	defer c.Close(context.Background())
	return f(c)
}

// requireArgs fails unless the command got exactly n arguments
func requireArgs(clictx *cli.Context, n int) error {
	if clictx.NArg() != n {
		return fmt.Errorf("%s needs %d argument(s): %s", clictx.Command.Name, n, clictx.Command.ArgsUsage)
	}
	return nil
}
