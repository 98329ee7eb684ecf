package consumer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/combet/combet-server/pkg/contracts/events"
)

type stubRecipients struct {
	recipients []string
	gotCircle  string
	gotActor   string
}

func (s *stubRecipients) CircleRecipients(_ context.Context, circleID, actorID string) ([]string, error) {
	s.gotCircle = circleID
	s.gotActor = actorID
	return s.recipients, nil
}

func TestResolveBetOnCircleFansOutToMembers(t *testing.T) {
	repo := &stubRecipients{recipients: []string{"u-2", "u-3"}}
	p := &Processor{Repo: repo}

	got, payload, err := p.resolve(context.Background(), events.FeedEvent{
		Kind: events.KindBetCreated,
		Bet: &events.BetCreated{
			BetID:      "bet-1",
			CreatorID:  "u-1",
			TargetType: "circle",
			TargetID:   "circle-1",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"u-2", "u-3"}, got)
	assert.Equal(t, "circle-1", repo.gotCircle)
	assert.Equal(t, "u-1", repo.gotActor)

	var bet events.BetCreated
	require.NoError(t, json.Unmarshal(payload, &bet))
	assert.Equal(t, "bet-1", bet.BetID)
}

func TestResolveBetOnUserTargetsOnlyThatUser(t *testing.T) {
	repo := &stubRecipients{}
	p := &Processor{Repo: repo}

	got, _, err := p.resolve(context.Background(), events.FeedEvent{
		Kind: events.KindBetCreated,
		Bet: &events.BetCreated{
			BetID:      "bet-1",
			CreatorID:  "u-1",
			TargetType: "user",
			TargetID:   "u-9",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"u-9"}, got)
	assert.Empty(t, repo.gotCircle)
}

func TestResolveInviteTargetsInvitee(t *testing.T) {
	p := &Processor{Repo: &stubRecipients{}}

	got, payload, err := p.resolve(context.Background(), events.FeedEvent{
		Kind: events.KindInviteCreated,
		Invite: &events.InviteCreated{
			InviteID:  "inv-1",
			CircleID:  "circle-1",
			InviterID: "u-1",
			InviteeID: "u-2",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"u-2"}, got)

	var inv events.InviteCreated
	require.NoError(t, json.Unmarshal(payload, &inv))
	assert.Equal(t, "inv-1", inv.InviteID)
}

func TestResolveUnknownKindIsNoop(t *testing.T) {
	p := &Processor{Repo: &stubRecipients{}}

	got, payload, err := p.resolve(context.Background(), events.FeedEvent{Kind: "unknown"})
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Nil(t, payload)
}

func TestResolveBetWithoutBodyIsNoop(t *testing.T) {
	p := &Processor{Repo: &stubRecipients{}}

	got, _, err := p.resolve(context.Background(), events.FeedEvent{Kind: events.KindBetCreated})
	require.NoError(t, err)
	assert.Nil(t, got)
}
