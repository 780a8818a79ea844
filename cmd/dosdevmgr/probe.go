package main

import (
	"fmt"

	"github.com/YLonely/dosdev-manager/dosdevices"
	"github.com/urfave/cli"
)

var probeCommand = cli.Command{
	Name:      "probe",
	Usage:     "list the host nodes found by sequential probing, without the daemon",
	ArgsUsage: "TEMPLATE...",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "capacity",
			Usage: "size of the result buffer in bytes",
			Value: 4096,
		},
	},
	Action: func(clictx *cli.Context) error {
		templates := []string(clictx.Args())
		if len(templates) == 0 {
			templates = dosdevices.SerialTemplates
		}
		nodes, err := dosdevices.Probe(templates, clictx.Int("capacity"))
		if n, ok := dosdevices.RequiredLen(err); ok {
			return fmt.Errorf("probe result needs more than %d bytes, %d required", clictx.Int("capacity"), n)
		}
		if err != nil {
			return err
		}
		for _, n := range nodes {
			fmt.Println(n)
		}
		return nil
	},
}
