package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

const getComputerWinsCount = `-- name: GetComputerWinsCount :one
SELECT computer_wins FROM game_server_analytics WHERE server_ip = $1
`

func (q *Queries) GetComputerWinsCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	row := q.db.QueryRowContext(ctx, getComputerWinsCount, serverIp)
	var computer_wins int64
	err := row.Scan(&computer_wins)
	return computer_wins, err
}

const getGamesCreatedCount = `-- name: GetGamesCreatedCount :one
SELECT games_created FROM game_server_analytics WHERE server_ip = $1
`

func (q *Queries) GetGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	row := q.db.QueryRowContext(ctx, getGamesCreatedCount, serverIp)
	var games_created int64
	err := row.Scan(&games_created)
	return games_created, err
}

const getHumanWinsCount = `-- name: GetHumanWinsCount :one
SELECT human_wins FROM game_server_analytics WHERE server_ip = $1
`

func (q *Queries) GetHumanWinsCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	row := q.db.QueryRowContext(ctx, getHumanWinsCount, serverIp)
	var human_wins int64
	err := row.Scan(&human_wins)
	return human_wins, err
}

const incrementComputerWinsCount = `-- name: IncrementComputerWinsCount :exec
INSERT INTO game_server_analytics (server_ip, computer_wins)
VALUES ($1, 1)
ON CONFLICT (server_ip) DO UPDATE
SET computer_wins = game_server_analytics.computer_wins + 1, updated_at = now()
`

func (q *Queries) IncrementComputerWinsCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, incrementComputerWinsCount, serverIp)
	return err
}

const incrementGamesCreatedCount = `-- name: IncrementGamesCreatedCount :exec
INSERT INTO game_server_analytics (server_ip, games_created)
VALUES ($1, 1)
ON CONFLICT (server_ip) DO UPDATE
SET games_created = game_server_analytics.games_created + 1, updated_at = now()
`

func (q *Queries) IncrementGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, incrementGamesCreatedCount, serverIp)
	return err
}

const incrementHumanWinsCount = `-- name: IncrementHumanWinsCount :exec
INSERT INTO game_server_analytics (server_ip, human_wins)
VALUES ($1, 1)
ON CONFLICT (server_ip) DO UPDATE
SET human_wins = game_server_analytics.human_wins + 1, updated_at = now()
`

func (q *Queries) IncrementHumanWinsCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, incrementHumanWinsCount, serverIp)
	return err
}
