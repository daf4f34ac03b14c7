package main

import (
	"flag"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newTestContext(t *testing.T, logLevel string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("log-level", logLevel, "")
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestSetupLogger(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	t.Run("accepts valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
			err := setupLogger(newTestContext(t, level))
			assert.NoError(t, err, "level %q", level)
		}
	})

	t.Run("rejects invalid level", func(t *testing.T) {
		err := setupLogger(newTestContext(t, "verbose"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestIngestCommandRequiresInput(t *testing.T) {
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Required: true},
					&cli.StringFlag{Name: "individuals"},
					&cli.StringFlag{Name: "organizations"},
					&cli.StringFlag{Name: "projects"},
				},
			},
		},
	}

	err := app.Run([]string{"matchpoint", "ingest", "--db", t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one of")
}

func TestMatchCommandRejectsUnknownType(t *testing.T) {
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "match",
				Action: matchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Required: true},
					&cli.StringFlag{Name: "id", Required: true},
					&cli.StringFlag{Name: "type", Required: true},
					&cli.IntFlag{Name: "top-k", Value: 5},
				},
			},
		},
	}

	err := app.Run([]string{"matchpoint", "match",
		"--db", t.TempDir(), "--id", "x", "--type", "committee"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid entity type")
}
