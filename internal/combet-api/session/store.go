package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
)

var ErrNotFound = errors.New("session not found")

// Store mapeia um token opaco para o id do usuário autenticado.
// Sessões não expiram; o token some apenas no logout.
type Store interface {
	Create(ctx context.Context, userID string) (token string, err error)
	Resolve(ctx context.Context, token string) (userID string, err error)
	Delete(ctx context.Context, token string) error
}

// newToken gera 32 bytes aleatórios em base64url
func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
