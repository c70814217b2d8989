// Command znodes-crawler runs the Zcash peer-to-peer network crawler.
package main

import (
	"fmt"
	"os"

	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/cli/app"
)

func main() {
	if err := app.New().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
