// Package app assembles the crawler's single cli.App.
package app

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/cli/crawl"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "znodes-crawler\nVersion: %s\nGoVersion: %s\n", Version, runtime.Version())
}

// New returns the crawler's cli.App with its single crawl command.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter

	app := cli.NewApp()
	app.Name = "znodes-crawler"
	app.Version = Version
	app.Usage = "Zcash peer-to-peer network crawler"
	app.Commands = []*cli.Command{
		crawl.NewCommand(),
	}
	return app
}
