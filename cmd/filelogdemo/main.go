// main.go: Demo application writing sample records through a filelog sink
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

// filelogdemo writes a burst of sample records into a rotating log ring.
//
// Usage:
//
//	filelogdemo [--config filelog.yaml] [--name demo] [--folder ./log]
//	            [--max-bytes 1MB] [--max-count 4] [--min-level info]
//	            [--multiline] [--console] [--colors]
//	            [--count 100000] [--producers 4] [--metrics]
//
// FILELOGGER_* environment variables and .env files override the
// configuration file; explicit flags override both.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/agilira/filelog"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const category = "FileLoggerDemo.App"

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "filelogdemo",
		Usage: "write sample records into a rotating log ring",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML or JSON configuration file"},
			&cli.StringFlag{Name: "name", Usage: "log family name", Value: "FileLoggerDemo"},
			&cli.StringFlag{Name: "folder", Usage: "log folder (default: ./log)"},
			&cli.StringFlag{Name: "max-bytes", Usage: "slot size limit, e.g. 512KB or 50MB"},
			&cli.IntFlag{Name: "max-count", Usage: "number of slots in the ring"},
			&cli.StringFlag{Name: "min-level", Usage: "minimum level (trace, debug, info, warn, error, critical, none)"},
			&cli.BoolFlag{Name: "multiline", Usage: "bracketed header on its own line"},
			&cli.BoolFlag{Name: "indent", Usage: "align continuation lines under the message"},
			&cli.BoolFlag{Name: "console", Usage: "mirror records to stdout"},
			&cli.BoolFlag{Name: "colors", Usage: "color console output", Value: isatty.IsTerminal(os.Stdout.Fd())},
			&cli.IntFlag{Name: "count", Usage: "number of sample messages", Value: 100000},
			&cli.IntFlag{Name: "producers", Usage: "concurrent producer goroutines", Value: 1},
			&cli.BoolFlag{Name: "metrics", Usage: "print sink metrics before exit"},
		},
		Action: run,
	}
}

func loadConfig(cmd *cli.Command) (filelog.Config, error) {
	if err := filelog.LoadEnvFiles(); err != nil {
		return filelog.Config{}, err
	}

	cfg := filelog.Config{Name: cmd.String("name")}
	if path := cmd.String("config"); path != "" {
		loaded, err := filelog.LoadConfigFile(path)
		if err != nil {
			return filelog.Config{}, err
		}
		cfg = loaded
		if cmd.IsSet("name") {
			cfg.Name = cmd.String("name")
		}
	}

	if cmd.IsSet("folder") {
		cfg.Folder = cmd.String("folder")
	}
	if cmd.IsSet("max-bytes") {
		size, err := filelog.ParseSize(cmd.String("max-bytes"))
		if err != nil {
			return filelog.Config{}, err
		}
		cfg.MaxBytes = size
	}
	if cmd.IsSet("max-count") {
		cfg.MaxCount = cmd.Int("max-count")
	}
	if cmd.IsSet("min-level") {
		level, err := filelog.ParseLevel(cmd.String("min-level"))
		if err != nil {
			return filelog.Config{}, err
		}
		cfg.MinLevel = level
	}
	if cmd.IsSet("multiline") {
		cfg.Multiline = cmd.Bool("multiline")
	}
	if cmd.IsSet("indent") {
		cfg.IndentMultiline = cmd.Bool("indent")
	}
	if cmd.IsSet("console") {
		cfg.Console = cmd.Bool("console")
	}
	if cmd.IsSet("colors") || (cfg.Console && !cfg.ConsoleColors) {
		cfg.ConsoleColors = cmd.Bool("colors")
	}
	cfg.ErrorCallback = func(op string, err error) {
		fmt.Fprintf(os.Stderr, "filelog %s: %v\n", op, err)
	}
	return cfg, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sink, err := filelog.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()

	logger := zap.New(filelog.NewZapCore(sink, category))
	app := sink.Logger(category)

	app.Critical("Hello, Critical!")
	app.Debug("Hello, Debug!")
	app.Error("Hello, Error!")
	app.Info("Hello, World!")
	app.Trace("Hello, Trace!")
	app.Warn("Hello, Warning!")
	app.LogException(filelog.LevelCritical, 0, errors.New("Meltdown imminent!!"), "Hello, Critical!")

	count := cmd.Int("count")
	producers := max(cmd.Int("producers"), 1)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for p := 0; p < producers; p++ {
		share := count / producers
		if p < count%producers {
			share++
		}
		g.Go(func() error {
			for i := 0; i < share; i++ {
				if i%1024 == 0 && gctx.Err() != nil {
					return gctx.Err()
				}
				app.Info(loremIpsum(6, 20, 4, 8))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("Elapsed time",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("messages", count),
		zap.Int("producers", producers),
	)
	if err := logger.Sync(); err != nil {
		return err
	}

	if cmd.Bool("metrics") {
		return printMetrics(sink)
	}
	return nil
}

func printMetrics(sink *filelog.Sink) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(filelog.NewCollector(sink, "filelogdemo")); err != nil {
		return err
	}
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			value := m.GetGauge().GetValue()
			if c := m.GetCounter(); c != nil {
				value = c.GetValue()
			}
			fmt.Printf("%s %v\n", mf.GetName(), value)
		}
	}
	return nil
}
