package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

// Statements contém o schema completo, aplicado em ordem.
// Todos os comandos são idempotentes (IF NOT EXISTS), então Apply
// pode rodar em todo boot do serviço.
var Statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		first_name TEXT,
		last_name TEXT,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS circles (
		circle_id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		icon TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS circle_members (
		circle_id UUID NOT NULL REFERENCES circles(circle_id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status TEXT NOT NULL,
		joined_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (circle_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS circle_invites (
		invite_id UUID PRIMARY KEY,
		circle_id UUID NOT NULL REFERENCES circles(circle_id) ON DELETE CASCADE,
		inviter_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		invitee_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	// no máximo um convite pendente por (circle, invitee)
	`CREATE UNIQUE INDEX IF NOT EXISTS circle_invites_pending_uniq
		ON circle_invites (circle_id, invitee_id) WHERE status = 'pending'`,

	`CREATE TABLE IF NOT EXISTS notifications (
		notification_id UUID PRIMARY KEY,
		recipient_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		actor_id UUID REFERENCES users(id),
		type TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id UUID NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS bets (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		stake_amount NUMERIC(12,2) NOT NULL,
		closes_at TIMESTAMPTZ,
		creator_user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status TEXT NOT NULL DEFAULT 'PENDING',
		post_to TEXT NOT NULL,
		target_id UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS bet_targets (
		bet_id UUID PRIMARY KEY REFERENCES bets(id) ON DELETE CASCADE,
		target_type TEXT NOT NULL,
		target_id UUID NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS bet_options (
		id UUID PRIMARY KEY,
		bet_id UUID NOT NULL REFERENCES bets(id) ON DELETE CASCADE,
		label TEXT NOT NULL,
		option_text TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS bet_responses (
		bet_id UUID NOT NULL REFERENCES bets(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status TEXT NOT NULL,
		selected_option_id UUID,
		responded_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (bet_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS follows (
		follower_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		following_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (follower_id, following_id)
	)`,
}

// Apply executa todos os statements do schema em ordem
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range Statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
