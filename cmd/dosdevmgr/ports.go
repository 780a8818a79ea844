package main

import (
	"fmt"

	"github.com/YLonely/dosdev-manager/api/types"
	"github.com/YLonely/dosdev-manager/client"
	"github.com/urfave/cli"
)

var portsCommand = cli.Command{
	Name:  "ports",
	Usage: "detect and map serial and parallel ports",
	Subcommands: []cli.Command{
		{
			Name:      "scan",
			Usage:     "print the ports that install would map",
			ArgsUsage: "KIND {serial|parallel}",
			Action: func(clictx *cli.Context) error {
				return portsAction(clictx, (*client.Client).ScanPorts)
			},
		},
		{
			Name:      "install",
			Usage:     "map the detected and configured ports",
			ArgsUsage: "KIND {serial|parallel}",
			Action: func(clictx *cli.Context) error {
				return portsAction(clictx, (*client.Client).InstallPorts)
			},
		},
	},
}

func portsAction(clictx *cli.Context, op func(*client.Client, string) ([]types.Port, error)) error {
	if err := requireArgs(clictx, 1); err != nil {
		return err
	}
	return withClient(clictx, func(c *client.Client) error {
		ports, err := op(c, clictx.Args().First())
		if err != nil {
			return err
		}
		for _, p := range ports {
			fmt.Printf("%s\t%s\n", p.Name, p.Target)
		}
		return nil
	})
}
