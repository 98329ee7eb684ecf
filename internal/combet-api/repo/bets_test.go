package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBetAssignsLabelsInOrder(t *testing.T) {
	p, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bets").
		WithArgs(sqlmock.AnyArg(), "Quem ganha?", "", 25.0, nil, "user-1", "circle", "circle-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bet_targets").
		WithArgs(sqlmock.AnyArg(), "circle", "circle-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bet_options").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "A", "Flamengo").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bet_options").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "B", "Vasco").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bet_options").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "C", "Empate").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	betID, err := p.CreateBet(context.Background(), &NewBet{
		Title:      "Quem ganha?",
		Stake:      25.0,
		CreatorID:  "user-1",
		TargetType: "circle",
		TargetID:   "circle-1",
		Options:    []string{"Flamengo", "Vasco", "Empate"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, betID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBetRollsBackOnOptionFailure(t *testing.T) {
	p, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bets").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bet_targets").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bet_options").
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	_, err := p.CreateBet(context.Background(), &NewBet{
		Title:      "Quem ganha?",
		CreatorID:  "user-1",
		TargetType: "user",
		TargetID:   "user-2",
		Options:    []string{"Sim", "Não"},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptBetUpsertsResponse(t *testing.T) {
	p, mock := newMock(t)

	mock.ExpectExec("INSERT INTO bet_responses").
		WithArgs("bet-1", "user-1", "opt-a").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, p.AcceptBet(context.Background(), "bet-1", "user-1", "opt-a"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeclineBetClearsSelectedOption(t *testing.T) {
	p, mock := newMock(t)

	mock.ExpectExec("selected_option_id = NULL").
		WithArgs("bet-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, p.DeclineBet(context.Background(), "bet-1", "user-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
