package sqlc

import (
	"context"
	"net"

	"github.com/sqlc-dev/pqtype"
)

// AnalyticsManager records per-server counters. A manager without queries
// accepts every write and reads zero, so the server can run without a db.
type AnalyticsManager struct {
	queries     Querier
	serverIpNet pqtype.Inet
}

func NewAnalyticsManager(queries Querier, serverIpNet net.IPNet) *AnalyticsManager {
	return &AnalyticsManager{
		queries:     queries,
		serverIpNet: pqtype.Inet{IPNet: serverIpNet, Valid: true},
	}
}

func (a *AnalyticsManager) Enabled() bool {
	return a != nil && a.queries != nil
}

func (a *AnalyticsManager) ServerIpNet() pqtype.Inet {
	return a.serverIpNet
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context) error {
	if !a.Enabled() {
		return nil
	}
	return a.queries.IncrementGamesCreatedCount(ctx, a.serverIpNet)
}

func (a *AnalyticsManager) IncrementHumanWinsCount(ctx context.Context) error {
	if !a.Enabled() {
		return nil
	}
	return a.queries.IncrementHumanWinsCount(ctx, a.serverIpNet)
}

func (a *AnalyticsManager) IncrementComputerWinsCount(ctx context.Context) error {
	if !a.Enabled() {
		return nil
	}
	return a.queries.IncrementComputerWinsCount(ctx, a.serverIpNet)
}

func (a *AnalyticsManager) GetGamesCreatedCount(ctx context.Context) (int64, error) {
	if !a.Enabled() {
		return 0, nil
	}
	return a.queries.GetGamesCreatedCount(ctx, a.serverIpNet)
}

func (a *AnalyticsManager) GetHumanWinsCount(ctx context.Context) (int64, error) {
	if !a.Enabled() {
		return 0, nil
	}
	return a.queries.GetHumanWinsCount(ctx, a.serverIpNet)
}

func (a *AnalyticsManager) GetComputerWinsCount(ctx context.Context) (int64, error) {
	if !a.Enabled() {
		return 0, nil
	}
	return a.queries.GetComputerWinsCount(ctx, a.serverIpNet)
}
