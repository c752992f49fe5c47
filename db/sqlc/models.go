package sqlc

import (
	"time"

	"github.com/sqlc-dev/pqtype"
)

type GameServerAnalytic struct {
	ServerIp     pqtype.Inet
	GamesCreated int64
	HumanWins    int64
	ComputerWins int64
	UpdatedAt    time.Time
}
