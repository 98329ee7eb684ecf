package repo

import (
	"context"

	"github.com/google/uuid"
)

// CreateBet insere aposta, alvo e opções numa única transação.
// Labels saem da posição: A, B, C, D
func (p *Postgres) CreateBet(ctx context.Context, b *NewBet) (string, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	betID := uuid.NewString()
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO bets (id, title, description, stake_amount, closes_at, creator_user_id, status, post_to, target_id)
		VALUES ($1, $2, $3, $4, $5, $6, 'PENDING', $7, $8)`,
		betID, b.Title, b.Description, b.Stake, b.ClosesAt, b.CreatorID, b.TargetType, b.TargetID,
	); err != nil {
		return "", err
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO bet_targets (bet_id, target_type, target_id)
		VALUES ($1, $2, $3)`,
		betID, b.TargetType, b.TargetID,
	); err != nil {
		return "", err
	}

	for i, text := range b.Options {
		label := string(rune('A' + i))
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO bet_options (id, bet_id, label, option_text)
			VALUES ($1, $2, $3, $4)`,
			uuid.NewString(), betID, label, text,
		); err != nil {
			return "", err
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return betID, nil
}

// AcceptBet grava (ou sobrescreve) a resposta accepted do usuário
func (p *Postgres) AcceptBet(ctx context.Context, betID, userID, selectedOptionID string) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO bet_responses (bet_id, user_id, status, selected_option_id)
		VALUES ($1, $2, 'accepted', $3)
		ON CONFLICT (bet_id, user_id) DO UPDATE SET
			status = 'accepted',
			selected_option_id = EXCLUDED.selected_option_id,
			responded_at = now()`,
		betID, userID, selectedOptionID,
	)
	return err
}

// DeclineBet grava (ou sobrescreve) a resposta declined; a opção
// selecionada anterior é limpa pra resposta final não ficar ambígua
func (p *Postgres) DeclineBet(ctx context.Context, betID, userID string) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO bet_responses (bet_id, user_id, status)
		VALUES ($1, $2, 'declined')
		ON CONFLICT (bet_id, user_id) DO UPDATE SET
			status = 'declined',
			selected_option_id = NULL,
			responded_at = now()`,
		betID, userID,
	)
	return err
}
