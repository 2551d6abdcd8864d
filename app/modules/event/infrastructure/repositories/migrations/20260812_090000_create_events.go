package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating events table...")
			return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
				if _, err := tx.ExecContext(ctx, `
					CREATE TABLE IF NOT EXISTS events (
						id         UUID PRIMARY KEY,
						name       VARCHAR(200) NOT NULL,
						join_code  VARCHAR(6) NOT NULL UNIQUE,
						host_id    VARCHAR(64) NOT NULL,
						status     VARCHAR(8) NOT NULL DEFAULT 'OPEN',
						created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
						updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
					);
					CREATE INDEX IF NOT EXISTS idx_events_host_id ON events(host_id);
				`); err != nil {
					return fmt.Errorf("failed to create events table: %w", err)
				}
				return nil
			})
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping events table...")
			return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
				if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS events;`); err != nil {
					return fmt.Errorf("failed to drop events table: %w", err)
				}
				return nil
			})
		},
	)
}
