package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating signups table...")
			return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
				if _, err := tx.ExecContext(ctx, `
					CREATE TABLE IF NOT EXISTS signups (
						id               UUID PRIMARY KEY,
						event_id         UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
						singer_name      VARCHAR(200) NOT NULL,
						song_title       VARCHAR(300) NOT NULL,
						artist           VARCHAR(200) NOT NULL,
						performance_type VARCHAR(10) NOT NULL,
						status           VARCHAR(12) NOT NULL DEFAULT 'QUEUED',
						position         INT NOT NULL DEFAULT 0,
						created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
						performing_at    TIMESTAMPTZ
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_signups_event_position
						ON signups(event_id, position) WHERE status = 'QUEUED';
					CREATE INDEX IF NOT EXISTS idx_signups_event_created_at
						ON signups(event_id, created_at);
					CREATE INDEX IF NOT EXISTS idx_signups_event_status
						ON signups(event_id, status);
				`); err != nil {
					return fmt.Errorf("failed to create signups table: %w", err)
				}
				return nil
			})
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping signups table...")
			return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
				if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS signups;`); err != nil {
					return fmt.Errorf("failed to drop signups table: %w", err)
				}
				return nil
			})
		},
	)
}
