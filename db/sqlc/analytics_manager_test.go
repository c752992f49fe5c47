package sqlc_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sqlc-dev/pqtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saeidalz13/battleship-solo/db/sqlc"
)

var testIpNet = net.IPNet{IP: net.IPv4(10, 0, 0, 7).To4(), Mask: net.CIDRMask(32, 32)}

func newTestDbManager(t *testing.T) (sqlc.DbManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlc.NewDbManager(sqlc.New(db), testIpNet), mock
}

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)
	return ctx
}

func TestIncrementCounters(t *testing.T) {
	dbm, mock := newTestDbManager(t)
	inet := pqtype.Inet{IPNet: testIpNet, Valid: true}

	mock.ExpectExec(`INSERT INTO game_server_analytics \(server_ip, games_created\)`).
		WithArgs(inet).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO game_server_analytics \(server_ip, human_wins\)`).
		WithArgs(inet).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO game_server_analytics \(server_ip, computer_wins\)`).
		WithArgs(inet).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := testCtx(t)
	require.NoError(t, dbm.Analytics.IncrementGamesCreatedCount(ctx))
	require.NoError(t, dbm.Analytics.IncrementHumanWinsCount(ctx))
	require.NoError(t, dbm.Analytics.IncrementComputerWinsCount(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCounters(t *testing.T) {
	dbm, mock := newTestDbManager(t)
	inet := pqtype.Inet{IPNet: testIpNet, Valid: true}

	mock.ExpectQuery(`SELECT games_created FROM game_server_analytics WHERE server_ip = \$1`).
		WithArgs(inet).
		WillReturnRows(sqlmock.NewRows([]string{"games_created"}).AddRow(3))
	mock.ExpectQuery(`SELECT human_wins FROM game_server_analytics WHERE server_ip = \$1`).
		WithArgs(inet).
		WillReturnRows(sqlmock.NewRows([]string{"human_wins"}).AddRow(2))
	mock.ExpectQuery(`SELECT computer_wins FROM game_server_analytics WHERE server_ip = \$1`).
		WithArgs(inet).
		WillReturnRows(sqlmock.NewRows([]string{"computer_wins"}).AddRow(1))

	ctx := testCtx(t)
	gamesCreated, err := dbm.Analytics.GetGamesCreatedCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), gamesCreated)

	humanWins, err := dbm.Analytics.GetHumanWinsCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), humanWins)

	computerWins, err := dbm.Analytics.GetComputerWinsCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), computerWins)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementFailure(t *testing.T) {
	dbm, mock := newTestDbManager(t)
	boom := errors.New("connection reset")

	mock.ExpectExec(`INSERT INTO game_server_analytics`).WillReturnError(boom)

	err := dbm.Analytics.IncrementGamesCreatedCount(testCtx(t))
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsDisabledWithoutQuerier(t *testing.T) {
	dbm := sqlc.NewDbManager(nil, testIpNet)
	assert.False(t, dbm.Analytics.Enabled())

	ctx := testCtx(t)
	assert.NoError(t, dbm.Analytics.IncrementGamesCreatedCount(ctx))
	count, err := dbm.Analytics.GetHumanWinsCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	serverIp := dbm.Analytics.ServerIpNet()
	assert.Equal(t, testIpNet.String(), serverIp.IPNet.String())
}
