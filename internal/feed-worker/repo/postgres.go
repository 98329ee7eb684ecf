package repo

import (
	"context"
	"database/sql"
)

// Postgres resolve destinatários de eventos de feed e fecha apostas vencidas
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// CircleRecipients retorna os membros accepted do círculo, sem o autor do evento
func (p *Postgres) CircleRecipients(ctx context.Context, circleID, actorID string) ([]string, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT user_id FROM circle_members
		WHERE circle_id = $1
		AND status = 'accepted'
		AND user_id <> $2`,
		circleID, actorID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipients []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		recipients = append(recipients, id)
	}
	return recipients, rows.Err()
}

// CloseExpiredBets marca como CLOSED as apostas cujo closes_at já passou
func (p *Postgres) CloseExpiredBets(ctx context.Context) (int64, error) {
	res, err := p.db.ExecContext(ctx, `
		UPDATE bets
		SET status = 'CLOSED'
		WHERE closes_at IS NOT NULL
		AND closes_at <= now()
		AND status = 'PENDING'`,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
