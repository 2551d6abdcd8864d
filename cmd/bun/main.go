package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"

	eventmigrations "github.com/open-mic-club/encore/app/modules/event/infrastructure/repositories/migrations"
	queuemigrations "github.com/open-mic-club/encore/app/modules/queue/infrastructure/repositories/migrations"
	"github.com/open-mic-club/encore/config"
)

// moduleMigrator pairs a module name with its migration set. Order matters:
// the signups table carries a foreign key to events, so the event module
// migrates first and rolls back last.
type moduleMigrator struct {
	name     string
	migrator *migrate.Migrator
}

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(pgdb, pgdialect.New())
	defer db.Close()

	migrators := []moduleMigrator{
		{"event", migrate.NewMigrator(db, eventmigrations.Migrations)},
		{"queue", migrate.NewMigrator(db, queuemigrations.Migrations)},
	}

	cliApp := &cli.App{
		Name: "bun",
		Commands: []*cli.Command{
			newMigrateCommand(migrators),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newMigrateCommand(migrators []moduleMigrator) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return forEach(c.Context, migrators, func(ctx context.Context, m moduleMigrator) error {
						fmt.Printf("Initializing migrations for module: %s\n", m.name)
						return m.migrator.Init(ctx)
					})
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					return forEach(c.Context, migrators, func(ctx context.Context, m moduleMigrator) error {
						group, err := m.migrator.Migrate(ctx)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("No new migrations to run for module: %s\n", m.name)
						} else {
							fmt.Printf("Migrated module: %s to %s\n", m.name, group)
						}
						return nil
					})
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					reversed := make([]moduleMigrator, 0, len(migrators))
					for i := len(migrators) - 1; i >= 0; i-- {
						reversed = append(reversed, migrators[i])
					}
					return forEach(c.Context, reversed, func(ctx context.Context, m moduleMigrator) error {
						group, err := m.migrator.Rollback(ctx)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("No groups to roll back for module: %s\n", m.name)
						} else {
							fmt.Printf("Rolled back module: %s to %s\n", m.name, group)
						}
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "print migration status",
				Action: func(c *cli.Context) error {
					return forEach(c.Context, migrators, func(ctx context.Context, m moduleMigrator) error {
						ms, err := m.migrator.MigrationsWithStatus(ctx)
						if err != nil {
							return err
						}
						fmt.Printf("module %s: %s (unapplied: %s)\n", m.name, ms, ms.Unapplied())
						return nil
					})
				},
			},
		},
	}
}

func forEach(ctx context.Context, migrators []moduleMigrator, fn func(context.Context, moduleMigrator) error) error {
	for _, m := range migrators {
		if err := fn(ctx, m); err != nil {
			return fmt.Errorf("module %s: %w", m.name, err)
		}
	}
	return nil
}
