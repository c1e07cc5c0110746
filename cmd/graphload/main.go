// Command graphload writes a project's nodes, edges and badges from a YAML
// graph file into the database. Loading is idempotent: existing rows are
// replaced by id.
//
// Flags:
//
//	--file     path to the graph YAML file (required)
//	--dry-run  validate the file without writing to the database
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/pathgraph/internal/adapter/postgres"
	"github.com/heartmarshall/pathgraph/internal/adapter/postgres/graph"
	"github.com/heartmarshall/pathgraph/internal/app"
	"github.com/heartmarshall/pathgraph/internal/app/graphload"
	"github.com/heartmarshall/pathgraph/internal/config"
)

func main() {
	fileFlag := flag.String("file", "", "path to the graph YAML file")
	dryRunFlag := flag.Bool("dry-run", false, "validate without writing to DB")
	flag.Parse()

	if *fileFlag == "" {
		log.Fatal("--file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	loader := graphload.NewLoader(logger, graph.New(pool), postgres.NewTxManager(pool), cfg)

	stats, err := loader.LoadFile(ctx, *fileFlag, *dryRunFlag)
	if err != nil {
		logger.Error("graph load failed",
			slog.String("file", *fileFlag),
			slog.String("error", err.Error()),
		)
		pool.Close()
		os.Exit(1)
	}

	logger.Info("graph load completed",
		slog.String("file", *fileFlag),
		slog.Bool("dry_run", *dryRunFlag),
		slog.Int("nodes", stats.Nodes),
		slog.Int("edges", stats.Edges),
		slog.Int("badges", stats.Badges),
	)
}
