package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS patients (
	id            UUID PRIMARY KEY,
	first_name    TEXT NOT NULL,
	middle_name   TEXT NOT NULL DEFAULT '',
	last_name     TEXT NOT NULL,
	title         TEXT NOT NULL DEFAULT '',
	gender        TEXT NOT NULL,
	date_of_birth TIMESTAMPTZ NOT NULL,
	phone_number  TEXT NOT NULL DEFAULT '',
	picture       TEXT NOT NULL DEFAULT '',
	is_new        BOOLEAN NOT NULL DEFAULT FALSE,
	hospital_id   TEXT NOT NULL UNIQUE,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS appointments (
	id               UUID PRIMARY KEY,
	patient_id       UUID NOT NULL REFERENCES patients(id),
	clinic           TEXT NOT NULL,
	title            TEXT NOT NULL,
	scheduled_time   TIMESTAMPTZ NOT NULL,
	appointment_type TEXT NOT NULL,
	does_not_repeat  BOOLEAN NOT NULL DEFAULT FALSE,
	status           TEXT NOT NULL,
	amount           BIGINT NOT NULL,
	patient_snapshot TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMPTZ NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_appointments_patient_id ON appointments(patient_id);
CREATE INDEX IF NOT EXISTS idx_appointments_scheduled_time ON appointments(scheduled_time);

CREATE TABLE IF NOT EXISTS outbox_events (
	id            UUID PRIMARY KEY,
	event_type    TEXT NOT NULL,
	payload       JSONB NOT NULL,
	status        TEXT NOT NULL DEFAULT 'PENDING',
	error_message TEXT,
	retry_count   INT NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL,
	processed_at  TIMESTAMPTZ,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_outbox_events_status ON outbox_events(status);
`

// EnsureSchema creates the tables if they do not exist. Used by the seeder
// and by local tooling; production databases are expected to be provisioned
// ahead of time.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
