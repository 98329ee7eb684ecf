package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"

	"github.com/combet/combet-server/internal/combet-api/dto"
)

// HomeFeed retorna as apostas visíveis pro usuário: alvo direto nele
// ou alvo em círculo onde ele é membro accepted. As opções de cada
// aposta vêm agregadas em JSON pelo próprio Postgres
func (p *Postgres) HomeFeed(ctx context.Context, userID string) ([]dto.FeedBet, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT
			b.id,
			b.title,
			COALESCE(b.description, '') AS description,
			b.created_at,
			b.stake_amount,
			b.status,
			CASE
				WHEN bt.target_type = 'circle' THEN COALESCE(c.icon, 'ellipse-outline')
				WHEN bt.target_type = 'user'   THEN 'people-outline'
				ELSE 'ellipse-outline'
			END AS icon,
			creator.username AS creator_username,
			bt.target_type,
			CASE
				WHEN bt.target_type = 'circle' THEN c.name
				WHEN bt.target_type = 'user'   THEN target_user.username
			END AS target_name,
			json_agg(
				DISTINCT jsonb_build_object(
					'id',    bo.id,
					'label', bo.label,
					'text',  bo.option_text
				)
			) FILTER (WHERE bo.id IS NOT NULL) AS options
		FROM bets b
		JOIN bet_targets bt       ON bt.bet_id = b.id
		LEFT JOIN users creator   ON creator.id = b.creator_user_id
		LEFT JOIN users target_user
			ON bt.target_type = 'user'
			AND target_user.id = bt.target_id
		LEFT JOIN circles c
			ON bt.target_type = 'circle'
			AND c.circle_id = bt.target_id
		LEFT JOIN bet_options bo  ON bo.bet_id = b.id
		LEFT JOIN circle_members cm
			ON bt.target_type = 'circle'
			AND cm.circle_id = bt.target_id
			AND cm.user_id = $1
			AND cm.status = 'accepted'
		WHERE
			(bt.target_type = 'user'   AND bt.target_id = $1)
			OR
			(bt.target_type = 'circle' AND cm.user_id IS NOT NULL)
		GROUP BY
			b.id,
			creator.username,
			bt.target_type,
			c.name,
			c.icon,
			target_user.username
		ORDER BY b.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feed := []dto.FeedBet{}
	for rows.Next() {
		var fb dto.FeedBet
		var creator, targetName sql.NullString
		var optionsJSON []byte
		if err := rows.Scan(
			&fb.ID, &fb.Title, &fb.Description, &fb.CreatedAt, &fb.StakeAmount,
			&fb.Status, &fb.Icon, &creator, &fb.TargetType, &targetName, &optionsJSON,
		); err != nil {
			return nil, err
		}
		if creator.Valid {
			fb.CreatorUsername = &creator.String
		}
		if targetName.Valid {
			fb.TargetName = &targetName.String
		}
		fb.Options = []dto.FeedOption{}
		if len(optionsJSON) > 0 {
			if err := json.Unmarshal(optionsJSON, &fb.Options); err != nil {
				return nil, err
			}
			// json_agg DISTINCT não garante ordem; labels são A..D
			sort.Slice(fb.Options, func(i, j int) bool {
				return fb.Options[i].Label < fb.Options[j].Label
			})
		}
		feed = append(feed, fb)
	}
	return feed, rows.Err()
}
