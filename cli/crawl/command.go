// Package crawl wires the crawl command's CLI flags to pkg/crawl's
// Orchestrator, following the signal-handling and logging-setup style
// the teacher's own server command uses.
package crawl

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/internal/zwire"
	zcrawl "github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/crawl"
	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/logging"
)

const (
	flagSeedAddrs        = "seed-addrs"
	flagCrawlInterval    = "crawl-interval"
	flagRPCAddr          = "rpc-addr"
	flagNodeListenPort   = "node-listening-port"
	flagDebug            = "debug"
	flagLogPath          = "log-path"
	flagLogEncoding      = "log-encoding"
)

// envLogDirectives is the RUST_LOG-style environment variable consulted
// at startup.
const envLogDirectives = "ZNODES_LOG"

// NewCommand returns the crawl command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "crawl",
		Usage: "crawl the Zcash peer-to-peer network and serve the discovered view over JSON-RPC",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: flagSeedAddrs, Usage: "seed address (ip:port, bare ip, or dns name); repeatable", Required: true},
			&cli.DurationFlag{Name: flagCrawlInterval, Usage: "crawl scheduler tick period", Value: zcrawl.DefaultCrawlInterval},
			&cli.StringFlag{Name: flagRPCAddr, Usage: "JSON-RPC bind address; omit to disable the RPC server"},
			&cli.UintFlag{Name: flagNodeListenPort, Usage: "default port used to resolve seeds without one", Value: 8233},
			&cli.BoolFlag{Name: flagDebug, Usage: "enable debug-level logging"},
			&cli.StringFlag{Name: flagLogPath, Usage: "path to a rotating log file; omit to log to stderr only"},
			&cli.StringFlag{Name: flagLogEncoding, Usage: "console or json", Value: "console"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	directives := logging.ParseDirectives(os.Getenv(envLogDirectives))

	log, atomicLevel, err := logging.New(logging.Params{
		Debug:      c.Bool(flagDebug),
		LogPath:    c.String(flagLogPath),
		Encoding:   c.String(flagLogEncoding),
		Directives: directives,
	})
	if err != nil {
		return cli.Exit(fmt.Errorf("setting up logging: %w", err), 1)
	}
	defer log.Sync()

	seeds := flattenSeeds(c.StringSlice(flagSeedAddrs))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	orch, err := zcrawl.New(ctx, zcrawl.Config{
		SeedAddrs:         seeds,
		CrawlInterval:     c.Duration(flagCrawlInterval),
		RPCAddr:           c.String(flagRPCAddr),
		NodeListeningPort: uint16(c.Uint(flagNodeListenPort)),
		Magic:             zwire.MainNet,
	}, log)
	if err != nil {
		return cli.Exit(err, 1)
	}

	sigCh := make(chan os.Signal, 8)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, sighup, sigusr1)
	go watchSignals(sigCh, cancel, log, atomicLevel)

	runErr := orch.Run(ctx)
	signal.Stop(sigCh)
	if runErr != nil {
		return cli.Exit(runErr, 1)
	}
	return nil
}

func watchSignals(sigCh chan os.Signal, cancel context.CancelFunc, log *zap.Logger, level *zap.AtomicLevel) {
	for sig := range sigCh {
		switch sig {
		case os.Interrupt, syscall.SIGTERM:
			log.Info("signal received, shutting down", zap.Stringer("signal", sig))
			cancel()
			return
		case sighup:
			log.Info("SIGHUP received, no-op (no config file to reload)")
		case sigusr1:
			toggleDebug(level, log)
		}
	}
}

func toggleDebug(level *zap.AtomicLevel, log *zap.Logger) {
	if level.Level() <= zap.DebugLevel {
		level.SetLevel(zap.InfoLevel)
		log.Info("log level set to info")
	} else {
		level.SetLevel(zap.DebugLevel)
		log.Info("log level set to debug")
	}
}

func flattenSeeds(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, s := range strings.Split(r, ",") {
			s = strings.TrimSpace(s)
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
