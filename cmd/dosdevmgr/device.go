package main

import (
	"fmt"

	"github.com/YLonely/dosdev-manager/client"
	"github.com/YLonely/dosdev-manager/dosdevices"
	"github.com/urfave/cli"
)

var deviceCommand = cli.Command{
	Name:  "device",
	Usage: "manage named device links such as com1 or aux",
	Subcommands: []cli.Command{
		{
			Name:      "get",
			Usage:     "print the target of a named device",
			ArgsUsage: "NAME",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "capacity",
					Usage: "fail when the target and its terminator need more bytes than this",
				},
			},
			Action: func(clictx *cli.Context) error {
				if err := requireName(clictx, 1); err != nil {
					return err
				}
				return withClient(clictx, func(c *client.Client) error {
					target, err := c.ReadMapping(clictx.Args().First(), clictx.Int("capacity"))
					if n, ok := dosdevices.RequiredLen(err); ok {
						return fmt.Errorf("target needs %d bytes", n)
					}
					if err != nil {
						return err
					}
					fmt.Println(target)
					return nil
				})
			},
		},
		{
			Name:      "set",
			Usage:     "point a named device at a host path",
			ArgsUsage: "NAME TARGET",
			Action: func(clictx *cli.Context) error {
				if err := requireName(clictx, 2); err != nil {
					return err
				}
				return withClient(clictx, func(c *client.Client) error {
					return c.WriteMapping(clictx.Args().Get(0), clictx.Args().Get(1))
				})
			},
		},
		{
			Name:      "rm",
			Usage:     "remove a named device",
			ArgsUsage: "NAME",
			Action: func(clictx *cli.Context) error {
				if err := requireName(clictx, 1); err != nil {
					return err
				}
				return withClient(clictx, func(c *client.Client) error {
					return c.WriteMapping(clictx.Args().First(), "")
				})
			},
		},
	},
}

// requireName checks the argument count and that the first argument is a
// device name inside the dosdevices directory
func requireName(clictx *cli.Context, n int) error {
	if err := requireArgs(clictx, n); err != nil {
		return err
	}
	return dosdevices.CheckName(clictx.Args().First())
}
