// Copyright 2025 Pedalworks Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/pedalworks/velosearch"
	badgersource "github.com/pedalworks/velosearch/catalog/badger"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "velosearch",
		Usage: "Product catalog embedding cache and similarity search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				Value:   "velosearch.yaml",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Encode the catalog and persist the embedding cache",
				Action: buildCommand,
			},
			{
				Name:      "search",
				Usage:     "Run a similarity query against the catalog",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
				},
			},
			{
				Name:   "products",
				Usage:  "List the loaded catalog in ranking order",
				Action: productsCommand,
			},
			{
				Name:      "import",
				Usage:     "Store a catalog JSON file into the configured BadgerDB source",
				ArgsUsage: "<catalog.json>",
				Action:    importCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openEngine(c *cli.Context) (*velosearch.Engine, error) {
	cfg, err := velosearch.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	engine, err := velosearch.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open engine: %w", err)
	}

	if err := engine.Initialize(c.Context); err != nil {
		engine.Close()
		return nil, fmt.Errorf("initialization failed: %w", err)
	}
	return engine, nil
}

func buildCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	fmt.Fprintf(os.Stderr, "Catalog fingerprint: %s\n", engine.Fingerprint())
	fmt.Fprintf(os.Stderr, "Products indexed: %d\n", len(engine.Products()))
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a search query is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	results, err := engine.Search(c.Context, query, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: %s %q €%.2f [%0.3f]\n",
			i+1, hit.Product.ID, hit.Product.Name, hit.Product.PriceEUR, hit.Score)
	}
	return nil
}

func productsCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	for _, p := range engine.Products() {
		fmt.Printf("%s\t%s\t%s\t€%.2f\n", p.ID, p.Name, p.Category, p.PriceEUR)
	}
	return nil
}

func importCommand(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("exactly one catalog file is required")
	}

	cfg, err := velosearch.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.CatalogDB == "" {
		return fmt.Errorf("catalog_db is not configured")
	}

	raw, err := os.ReadFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}

	source, err := badgersource.OpenBlobSource(cfg.CatalogDB, false)
	if err != nil {
		return fmt.Errorf("failed to open catalog store: %w", err)
	}
	defer source.Close()

	if err := source.Put(c.Context, raw); err != nil {
		return fmt.Errorf("failed to store catalog: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Stored %d catalog bytes in %s\n", len(raw), cfg.CatalogDB)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
