package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lintang-b-s/osm-places/pkg/backend/warehouse"
	"github.com/lintang-b-s/osm-places/pkg/kvdb"
	"github.com/lintang-b-s/osm-places/pkg/logger/config"
	myZap "github.com/lintang-b-s/osm-places/pkg/logger/zap"
	"github.com/lintang-b-s/osm-places/pkg/osmimport"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	app := &cli.Command{
		Name:  "importer",
		Usage: "Load named OpenStreetMap features from a PBF extract into a local place store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "OpenStreetMap PBF extract",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Store to load into: warehouse or kv",
				Value: "warehouse",
			},
			&cli.StringFlag{
				Name:  "path",
				Usage: "Store file path (default places.db for warehouse, places_store.db for kv)",
			},
			&cli.IntFlag{
				Name:  "batch",
				Usage: "Features per store write",
				Value: 1000,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent store writers",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: run,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

type store interface {
	osmimport.FeatureSink
	Close() error
}

func run(ctx context.Context, c *cli.Command) error {
	level := config.INFO_LEVEL
	if c.Bool("debug") {
		level = config.DEBUG_LEVEL
	}
	logger, err := myZap.New(config.Configuration{Level: level, TimeFormat: time.RFC3339})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	s, err := openStore(c.String("backend"), c.String("path"), logger)
	if err != nil {
		return err
	}
	defer s.Close()

	im := osmimport.NewImporter(s, osmimport.Config{
		BatchSize:    int(c.Int("batch")),
		Workers:      int(c.Int("workers")),
		ShowProgress: true,
	}, logger)

	start := time.Now()
	stats, err := im.ImportFile(ctx, c.String("file"))
	if err != nil {
		return fmt.Errorf("importing %s: %w", c.String("file"), err)
	}
	logger.Info("import complete",
		zap.Int("features", stats.Total()),
		zap.Duration("took", time.Since(start)))
	return nil
}

func openStore(backend, path string, logger *zap.Logger) (store, error) {
	switch backend {
	case "warehouse":
		if path == "" {
			path = "places.db"
		}
		return warehouse.Open(path, logger)
	case "kv":
		if path == "" {
			path = "places_store.db"
		}
		return kvdb.Open(path, logger)
	}
	return nil, fmt.Errorf("unknown backend %q: must be warehouse or kv", backend)
}
