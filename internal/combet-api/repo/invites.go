package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/combet/combet-server/internal/combet-api/dto"
)

// CreateInvite cria o convite e a notificação pareada numa transação só.
// Convite pendente repetido para o mesmo (circle, invitee) vira ErrDuplicateInvite
func (p *Postgres) CreateInvite(ctx context.Context, circleID, inviterID, inviteeID string) (string, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `
		SELECT 1 FROM circle_invites
		WHERE circle_id = $1
		AND invitee_id = $2
		AND status = 'pending'`,
		circleID, inviteeID,
	).Scan(&exists)
	if err == nil {
		return "", ErrDuplicateInvite
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	inviteID := uuid.NewString()
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO circle_invites (invite_id, circle_id, inviter_id, invitee_id, status)
		VALUES ($1, $2, $3, $4, 'pending')`,
		inviteID, circleID, inviterID, inviteeID,
	); err != nil {
		return "", err
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO notifications (notification_id, recipient_id, actor_id, type, entity_type, entity_id)
		VALUES ($1, $2, $3, 'circle_invite', 'circle_invite', $4)`,
		uuid.NewString(), inviteeID, inviterID, inviteID,
	); err != nil {
		return "", err
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return inviteID, nil
}

// RetractInvite remove convite + notificação, restrito ao inviter original.
// Sem convite pendente correspondente retorna ErrNotFound
func (p *Postgres) RetractInvite(ctx context.Context, circleID, inviteeID, inviterID string) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var inviteID string
	err = tx.QueryRowContext(ctx, `
		SELECT invite_id
		FROM circle_invites
		WHERE circle_id = $1
		AND invitee_id = $2
		AND inviter_id = $3
		AND status = 'pending'`,
		circleID, inviteeID, inviterID,
	).Scan(&inviteID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
		DELETE FROM circle_invites WHERE invite_id = $1`,
		inviteID,
	); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
		DELETE FROM notifications
		WHERE recipient_id = $1
		AND entity_id = $2
		AND entity_type = 'circle_invite'`,
		inviteeID, inviteID,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// AcceptInvite efetiva o convite numa única transação: marca accepted,
// insere a associação e marca a notificação como lida
func (p *Postgres) AcceptInvite(ctx context.Context, inviteID, userID string) (string, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var circleID string
	err = tx.QueryRowContext(ctx, `
		SELECT circle_id FROM circle_invites
		WHERE invite_id = $1
		AND invitee_id = $2
		AND status = 'pending'
		FOR UPDATE`,
		inviteID, userID,
	).Scan(&circleID)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE circle_invites SET status = 'accepted' WHERE invite_id = $1`,
		inviteID,
	); err != nil {
		return "", err
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO circle_members (circle_id, user_id, status, joined_at)
		VALUES ($1, $2, 'accepted', now())
		ON CONFLICT (circle_id, user_id) DO UPDATE SET status = 'accepted'`,
		circleID, userID,
	); err != nil {
		return "", err
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE notifications
		SET is_read = true
		WHERE recipient_id = $1
		AND entity_id = $2
		AND entity_type = 'circle_invite'`,
		userID, inviteID,
	); err != nil {
		return "", err
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return circleID, nil
}

// DeclineInvite apaga convite + notificação do invitee
func (p *Postgres) DeclineInvite(ctx context.Context, inviteID, userID string) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `
		DELETE FROM circle_invites
		WHERE invite_id = $1
		AND invitee_id = $2`,
		inviteID, userID,
	); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
		DELETE FROM notifications
		WHERE recipient_id = $1
		AND entity_id = $2
		AND entity_type = 'circle_invite'`,
		userID, inviteID,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// Inbox lista as notificações de convite do usuário, mais recentes primeiro
func (p *Postgres) Inbox(ctx context.Context, userID string) ([]dto.InboxItem, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT
			n.notification_id,
			n.type,
			n.entity_id,
			n.is_read,
			n.created_at,
			u.username AS actor_username,
			c.name AS circle_name,
			ci.invite_id,
			ci.status
		FROM notifications n
		JOIN circle_invites ci
			ON ci.invite_id = n.entity_id
		LEFT JOIN users u ON n.actor_id = u.id
		LEFT JOIN circles c ON ci.circle_id = c.circle_id
		WHERE n.recipient_id = $1
		AND n.entity_type = 'circle_invite'
		ORDER BY n.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []dto.InboxItem{}
	for rows.Next() {
		var item dto.InboxItem
		var actor, circle sql.NullString
		if err := rows.Scan(
			&item.NotificationID, &item.Type, &item.EntityID, &item.IsRead,
			&item.CreatedAt, &actor, &circle, &item.InviteID, &item.Status,
		); err != nil {
			return nil, err
		}
		if actor.Valid {
			item.ActorUsername = &actor.String
		}
		if circle.Valid {
			item.CircleName = &circle.String
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
