package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/YLonely/dosdev-manager/api/types"
	"github.com/YLonely/dosdev-manager/client"
	"github.com/YLonely/dosdev-manager/mount"
	"github.com/containerd/console"
	"github.com/urfave/cli"
)

var driveCommand = cli.Command{
	Name:  "drive",
	Usage: "manage drive letters",
	Subcommands: []cli.Command{
		driveAllocateCommand,
		driveReleaseCommand,
		driveListCommand,
		driveMaskCommand,
	},
}

var driveAllocateCommand = cli.Command{
	Name:      "allocate",
	Usage:     "print the letter of a device, allocating one if needed",
	ArgsUsage: "[DEVICE]",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "class",
			Usage: "device class {floppy|cdrom|dvd|harddisk|hd|network|ramdisk}",
			Value: "hd",
		},
		cli.StringFlag{
			Name:  "mount",
			Usage: "drive root; without DEVICE the device backing this mount is used",
		},
	},
	Action: func(clictx *cli.Context) error {
		device, mountPoint := clictx.Args().First(), clictx.String("mount")
		if device == "" {
			if mountPoint == "" {
				return fmt.Errorf("either DEVICE or --mount must be provided")
			}
			info, err := mount.DeviceFor(mountPoint)
			if err != nil {
				return err
			}
			device, mountPoint = info.Source, info.Mountpoint
		}
		return withClient(clictx, func(c *client.Client) error {
			letter, err := c.Allocate(device, clictx.String("class"), mountPoint)
			if err != nil {
				return err
			}
			fmt.Printf("%s:\n", letter)
			return nil
		})
	},
}

var driveReleaseCommand = cli.Command{
	Name:      "release",
	Usage:     "remove the drive root of a letter",
	ArgsUsage: "LETTER",
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "purge",
			Usage: "remove the device link too",
		},
	},
	Action: func(clictx *cli.Context) error {
		if err := requireArgs(clictx, 1); err != nil {
			return err
		}
		return withClient(clictx, func(c *client.Client) error {
			return c.Release(clictx.Args().First(), clictx.Bool("purge"))
		})
	},
}

var driveListCommand = cli.Command{
	Name:  "list",
	Usage: "list letters with a drive root or a device link",
	Action: func(clictx *cli.Context) error {
		return withClient(clictx, func(c *client.Client) error {
			drives, err := c.ListDrives()
			if err != nil {
				return err
			}
			con, err := console.ConsoleFromFile(os.Stdout)
			if err != nil {
				// not a terminal, one json object per line
				enc := json.NewEncoder(os.Stdout)
				for _, d := range drives {
					if err := enc.Encode(d); err != nil {
						return err
					}
				}
				return nil
			}
			width := 0
			if size, err := con.Size(); err == nil {
				width = int(size.Width)
			}
			printDrives(drives, width)
			return nil
		})
	},
}

func printDrives(drives []types.Drive, width int) {
	w := tabwriter.NewWriter(os.Stdout, 4, 8, 2, ' ', 0)
	fmt.Fprintln(w, "LETTER\tCLASS\tSTATE\tDEVICE\tMOUNT")
	for _, d := range drives {
		fmt.Fprintf(w, "%s:\t%s\t%s\t%s\t%s\n", d.Letter, d.Class, d.State,
			shorten(d.Device, width/3), shorten(d.MountPoint, width/3))
	}
	w.Flush()
}

// shorten keeps the tail of s within n columns, n <= 3 means no limit
func shorten(s string, n int) string {
	if n <= 3 || len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n+3:]
}

var driveMaskCommand = cli.Command{
	Name:      "mask",
	Usage:     "print the letters whose device is the same as PATH",
	ArgsUsage: "PATH",
	Action: func(clictx *cli.Context) error {
		if err := requireArgs(clictx, 1); err != nil {
			return err
		}
		return withClient(clictx, func(c *client.Client) error {
			m, err := c.Mask(clictx.Args().First())
			if err != nil {
				return err
			}
			fmt.Printf("%#08x %s\n", uint32(m), m)
			return nil
		})
	},
}
