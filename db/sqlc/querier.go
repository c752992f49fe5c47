package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

type Querier interface {
	GetComputerWinsCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
	GetGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
	GetHumanWinsCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
	IncrementComputerWinsCount(ctx context.Context, serverIp pqtype.Inet) error
	IncrementGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) error
	IncrementHumanWinsCount(ctx context.Context, serverIp pqtype.Inet) error
}

var _ Querier = (*Queries)(nil)
