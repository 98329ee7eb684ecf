package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/combet/combet-server/internal/combet-api/dto"
)

// pgUniqueViolation é o código SQLSTATE de violação de constraint UNIQUE
const pgUniqueViolation = "23505"

// CreateUser insere um usuário novo; username/email duplicado vira ErrDuplicateUser
func (p *Postgres) CreateUser(ctx context.Context, username, email string, firstName, lastName *string, passwordHash string) (*User, error) {
	u := &User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if firstName != nil {
		u.FirstName = sql.NullString{String: *firstName, Valid: true}
	}
	if lastName != nil {
		u.LastName = sql.NullString{String: *lastName, Valid: true}
	}

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, first_name, last_name, password_hash)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.PasswordHash,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return u, nil
}

// GetUserByEmailOrUsername busca por email (case-insensitive) ou username exato
func (p *Postgres) GetUserByEmailOrUsername(ctx context.Context, emailOrUsername string) (*User, error) {
	var u User
	err := p.db.QueryRowContext(ctx, `
		SELECT id, username, email, first_name, last_name, password_hash
		FROM users
		WHERE lower(email) = lower($1) OR username = $1
		LIMIT 1`,
		emailOrUsername,
	).Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByID retorna o perfil do usuário
func (p *Postgres) GetUserByID(ctx context.Context, userID string) (*User, error) {
	var u User
	err := p.db.QueryRowContext(ctx, `
		SELECT id, username, email, first_name, last_name, password_hash
		FROM users
		WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SearchUsersAndCircles retorna o resultado misto de busca (usuários + círculos)
// Usuários vêm anotados com isFriend; círculos com isFriend null
func (p *Postgres) SearchUsersAndCircles(ctx context.Context, userID, q string) ([]dto.SearchResult, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT
			'user' AS type,
			u.id::text AS id,
			COALESCE(NULLIF(TRIM(CONCAT_WS(' ', u.first_name, u.last_name)), ''), u.username) AS label,
			u.username AS subtitle,
			CASE WHEN f.follower_id IS NULL THEN false ELSE true END AS is_friend
		FROM users u
		LEFT JOIN follows f
			ON f.following_id = u.id
			AND f.follower_id = $1
		WHERE u.id <> $1
			AND (
				u.username ILIKE '%' || $2 || '%'
				OR COALESCE(u.first_name, '') ILIKE '%' || $2 || '%'
				OR COALESCE(u.last_name, '') ILIKE '%' || $2 || '%'
			)

		UNION ALL

		SELECT
			'circle' AS type,
			c.circle_id::text AS id,
			c.name AS label,
			COALESCE(c.description, '') AS subtitle,
			NULL::boolean AS is_friend
		FROM circles c
		WHERE c.name ILIKE '%' || $2 || '%'

		ORDER BY label
		LIMIT 50`,
		userID, q,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []dto.SearchResult{}
	for rows.Next() {
		var r dto.SearchResult
		var isFriend sql.NullBool
		if err := rows.Scan(&r.Type, &r.ID, &r.Label, &r.Subtitle, &isFriend); err != nil {
			return nil, err
		}
		if isFriend.Valid {
			r.IsFriend = &isFriend.Bool
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Follow cria o follow; repetido é no-op
func (p *Postgres) Follow(ctx context.Context, followerID, followingID string) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO follows (follower_id, following_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		followerID, followingID,
	)
	return err
}

// Friends lista os usuários que o caller segue
func (p *Postgres) Friends(ctx context.Context, userID string) ([]dto.Friend, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT u.id, u.username AS name
		FROM follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	friends := []dto.Friend{}
	for rows.Next() {
		var f dto.Friend
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, err
		}
		friends = append(friends, f)
	}
	return friends, rows.Err()
}
