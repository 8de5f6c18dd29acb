package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/leengari/chronosql/internal/config"
	"github.com/leengari/chronosql/internal/logging"
	"github.com/leengari/chronosql/internal/plan"
	"github.com/leengari/chronosql/internal/planner"
	"github.com/leengari/chronosql/internal/serde"
	"github.com/leengari/chronosql/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "path to planner config YAML (optional)")
	catalogPath := flag.String("catalog", "catalog", "path to the catalog directory")
	tableName := flag.String("table", "", "explain a single table (default: all)")
	schemaName := flag.String("schema", "chronosql", "schema name used in scan digests")
	flag.Parse()

	// Load config
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to load config:", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger, closeFn := logging.Setup(cfg.Logging.SeqURL)
	defer closeFn()

	slog.SetDefault(logger)
	slog.Info("Starting chronosql planner...")

	// Load catalog
	serializer := serde.NewJSONSerializer()
	catalog, err := storage.LoadCatalog(*catalogPath, cfg, serializer, logger)
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		closeFn()
		os.Exit(1)
	}

	// Plan and explain
	ctx := planner.NewContext(logger)
	ctx.TimeColumn = cfg.Planner.TimeColumn

	names := catalog.Names()
	if *tableName != "" {
		names = []string{*tableName}
	}

	for _, name := range names {
		node, err := planner.PlanScan(ctx, catalog, *schemaName, name)
		if err != nil {
			slog.Error("planning failed", "table", name, "error", err)
			closeFn()
			os.Exit(1)
		}

		table, err := catalog.Resolve(name)
		if err != nil {
			slog.Error("resolve failed", "table", name, "error", err)
			closeFn()
			os.Exit(1)
		}

		fmt.Printf("-- %s\n", table)
		fmt.Printf("   row type: %s\n", table.RowTypeWithTimeColumn(ctx.TypeFactory, ctx.TimeColumn))
		fmt.Print(plan.PrintTree(node))
	}

	slog.Info("Explain complete", "table_count", len(names))
}
