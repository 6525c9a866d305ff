package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/ticketsys/internal/flagx"
)

// parseFlags overlays cfg with command-line flags; see the package doc for
// the list. Only the flags owned here are looked at, so -c/-config never
// reach this flag set.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-n", "-x", "-l", "-f", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.IntVar(&cfg.Capacity, "n", cfg.Capacity, "directory capacity (slots)")
	fs.StringVar(&cfg.Hash, "x", cfg.Hash, "slot hash (xxhash, fnv1a)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text, json)")
	slow := fs.Int("w", int(cfg.SlowCommandThreshold.Milliseconds()), "slow command threshold (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -w is whole milliseconds; leave a finer file value alone unless given.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "w" {
			cfg.SlowCommandThreshold = time.Duration(*slow) * time.Millisecond
		}
	})
}
