// Copyright 2026 Nexusworks
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	matchpoint "github.com/nexusworks/matchpoint"
	"github.com/nexusworks/matchpoint/ai"
	"github.com/nexusworks/matchpoint/batch"
	"github.com/nexusworks/matchpoint/core"
	"github.com/nexusworks/matchpoint/ingestion"
	"github.com/nexusworks/matchpoint/match"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "matchpoint",
		Usage: "Semantic matching engine for project opportunities",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Ingest entity documents and build their embeddings",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "individuals",
						Usage: "Path to a JSON file of individual documents",
					},
					&cli.StringFlag{
						Name:  "organizations",
						Usage: "Path to a JSON file of organization documents",
					},
					&cli.StringFlag{
						Name:  "projects",
						Usage: "Path to a JSON file of project call documents",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Worker pool size for embedding",
						Value: 4,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents to embed per call",
						Value: 32,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed embedding calls",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:   "match",
				Usage:  "Print ranked recommendations for one entity as JSON",
				Action: matchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Entity identifier to match",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "type",
						Usage:    "Entity type (individual, organization, project_call)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of recommendations to return",
						Value: 5,
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Similarity index lookup timeout",
						Value: 5 * time.Second,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL (used when the entity has no stored vector)",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "all-minilm",
					},
				},
			},
			{
				Name:   "batch",
				Usage:  "Generate recommendations for all individuals and organizations",
				Action: batchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of recommendations per entity",
						Value: 5,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size",
						Value: 4,
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Write the JSON report to this file instead of stdout",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N entities",
						Value: 10,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "all-minilm",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDatabase(c *cli.Context) (*matchpoint.Database, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := matchpoint.NewDatabase(c.String("db"), matchpoint.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	inputs := []struct {
		flag       string
		entityType core.EntityType
	}{
		{"individuals", core.EntityTypeIndividual},
		{"organizations", core.EntityTypeOrganization},
		{"projects", core.EntityTypeProjectCall},
	}

	haveInput := false
	for _, input := range inputs {
		if c.String(input.flag) != "" {
			haveInput = true
		}
	}
	if !haveInput {
		return fmt.Errorf("at least one of --individuals, --organizations or --projects is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline(
		ingestion.WithPoolSize(c.Int("pool-size")),
		ingestion.WithBatchSize(c.Int("batch-size")),
		ingestion.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
	)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	for _, input := range inputs {
		path := c.String(input.flag)
		if path == "" {
			continue
		}

		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}

		result, err := pipeline.IngestReader(ctx, input.entityType, file)
		file.Close()
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", path, err)
		}

		fmt.Fprintf(os.Stderr, "%s: ingested %d, skipped %d\n",
			input.entityType, result.Ingested, result.Skipped)
		for _, failure := range result.Failures {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", failure.Id, failure.Err)
		}
	}

	return nil
}

func matchCommand(c *cli.Context) error {
	ctx := context.Background()

	entityType, err := core.ParseEntityType(c.String("type"))
	if err != nil {
		return fmt.Errorf("invalid entity type %q", c.String("type"))
	}

	topK := c.Int("top-k")
	if topK < 1 {
		return fmt.Errorf("top-k must be at least 1")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	matchConfig := match.DefaultConfig()
	matchConfig.SearchTimeout = c.Duration("timeout")
	if entityType == core.EntityTypeProjectCall {
		// Reverse matching: recommend individuals for a project call.
		matchConfig.TargetType = core.EntityTypeIndividual
	}

	engine, err := db.NewEngine(match.WithConfig(matchConfig))
	if err != nil {
		return fmt.Errorf("failed to create matching engine: %w", err)
	}

	recommendations, err := engine.Match(ctx, entityType, core.EntityID(c.String("id")), topK)
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(recommendations)
}

func batchCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	engine, err := db.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to create matching engine: %w", err)
	}

	runner, err := db.NewBatchRunner(engine,
		batch.WithTopK(c.Int("top-k")),
		batch.WithPoolSize(c.Int("workers")),
		batch.WithProgress(os.Stderr, c.Int("report-interval")),
	)
	if err != nil {
		return fmt.Errorf("failed to create batch runner: %w", err)
	}
	defer runner.Release()

	report, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("batch run failed: %w", err)
	}

	out := os.Stdout
	if path := c.String("out"); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer file.Close()
		out = file
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
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
