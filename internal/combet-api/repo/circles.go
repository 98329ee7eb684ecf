package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/combet/combet-server/internal/combet-api/dto"
)

// CreateCircle insere o círculo e o criador como membro accepted
// na mesma transação
func (p *Postgres) CreateCircle(ctx context.Context, name, description, icon, creatorID string) (string, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	circleID := uuid.NewString()
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO circles (circle_id, name, description, icon)
		VALUES ($1, $2, $3, $4)`,
		circleID, name, nullIfEmpty(description), nullIfEmpty(icon),
	); err != nil {
		return "", err
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO circle_members (circle_id, user_id, status)
		VALUES ($1, $2, 'accepted')`,
		circleID, creatorID,
	); err != nil {
		return "", err
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return circleID, nil
}

// GetCircle retorna um círculo pelo id
func (p *Postgres) GetCircle(ctx context.Context, circleID string) (*dto.Circle, error) {
	var c dto.Circle
	var description, icon sql.NullString
	err := p.db.QueryRowContext(ctx, `
		SELECT circle_id, name, description, icon, created_at
		FROM circles
		WHERE circle_id = $1`,
		circleID,
	).Scan(&c.CircleID, &c.Name, &description, &icon, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if description.Valid {
		c.Description = &description.String
	}
	if icon.Valid {
		c.Icon = &icon.String
	}
	return &c, nil
}

// UpdateCircle atualiza nome/descrição/ícone e devolve a linha atualizada
func (p *Postgres) UpdateCircle(ctx context.Context, circleID, name, description, icon string) (*dto.Circle, error) {
	var c dto.Circle
	var desc, ic sql.NullString
	err := p.db.QueryRowContext(ctx, `
		UPDATE circles
		SET name = $1,
			description = $2,
			icon = $3
		WHERE circle_id = $4
		RETURNING circle_id, name, description, icon, created_at`,
		name, nullIfEmpty(description), nullIfEmpty(icon), circleID,
	).Scan(&c.CircleID, &c.Name, &desc, &ic, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		c.Description = &desc.String
	}
	if ic.Valid {
		c.Icon = &ic.String
	}
	return &c, nil
}

// MyCircles lista os círculos onde o usuário é membro
func (p *Postgres) MyCircles(ctx context.Context, userID string) ([]dto.CircleSummary, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT c.circle_id, c.name, c.icon
		FROM circles c
		JOIN circle_members m ON m.circle_id = c.circle_id
		WHERE m.user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	circles := []dto.CircleSummary{}
	for rows.Next() {
		var c dto.CircleSummary
		var icon sql.NullString
		if err := rows.Scan(&c.CircleID, &c.Name, &icon); err != nil {
			return nil, err
		}
		if icon.Valid {
			c.Icon = &icon.String
		}
		circles = append(circles, c)
	}
	return circles, rows.Err()
}

// Members lista os membros accepted de um círculo
func (p *Postgres) Members(ctx context.Context, circleID string) ([]dto.Member, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT u.id, u.username
		FROM circle_members cm
		JOIN users u ON cm.user_id = u.id
		WHERE cm.circle_id = $1
		AND cm.status = 'accepted'`,
		circleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []dto.Member{}
	for rows.Next() {
		var m dto.Member
		if err := rows.Scan(&m.ID, &m.Username); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// SearchFriends lista os amigos do usuário com o estado deles no círculo
// (membro accepted, convite pendente ou nada)
func (p *Postgres) SearchFriends(ctx context.Context, currentUserID, circleID, q string) ([]dto.FriendCandidate, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT
			u.id,
			u.username,
			cm.status AS member_status,
			ci.status AS invite_status,
			ci.inviter_id
		FROM follows f
		JOIN users u ON u.id = f.following_id
		LEFT JOIN circle_members cm
			ON cm.user_id = u.id
			AND cm.circle_id = $2
		LEFT JOIN circle_invites ci
			ON ci.invitee_id = u.id
			AND ci.circle_id = $2
			AND ci.status = 'pending'
		WHERE f.follower_id = $1
		AND u.username ILIKE $3`,
		currentUserID, circleID, "%"+q+"%",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []dto.FriendCandidate{}
	for rows.Next() {
		var c dto.FriendCandidate
		var memberStatus, inviteStatus, inviterID sql.NullString
		if err := rows.Scan(&c.ID, &c.Username, &memberStatus, &inviteStatus, &inviterID); err != nil {
			return nil, err
		}
		switch {
		case memberStatus.Valid && memberStatus.String == "accepted":
			s := "accepted"
			c.Status = &s
		case inviteStatus.Valid && inviteStatus.String == "pending":
			s := "pending"
			c.Status = &s
			c.InvitedByMe = inviterID.Valid && inviterID.String == currentUserID
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// LeaveCircle remove a associação; se o círculo ficar vazio, remove o círculo.
// Tudo na mesma transação
func (p *Postgres) LeaveCircle(ctx context.Context, circleID, userID string) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `
		DELETE FROM circle_members
		WHERE circle_id = $1
		AND user_id = $2`,
		circleID, userID,
	); err != nil {
		return err
	}

	var remaining int
	if err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM circle_members WHERE circle_id = $1`,
		circleID,
	).Scan(&remaining); err != nil {
		return err
	}

	if remaining == 0 {
		if _, err = tx.ExecContext(ctx, `
			DELETE FROM circles WHERE circle_id = $1`,
			circleID,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
