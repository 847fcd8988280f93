// Package tigerbeetle wires the facade to the external TigerBeetle cluster.
// The engine owns atomicity, durability and isolation; this package only
// constructs the long-lived client and narrows its surface to the three
// calls the facade needs.
package tigerbeetle

import (
	"fmt"
	"log/slog"

	tb "github.com/tigerbeetle/tigerbeetle-go"
	"github.com/tigerbeetle/tigerbeetle-go/pkg/types"

	"github.com/ledgerr/tigerbeetle-facade/internal/config"
)

// Client is the narrow slice of the TigerBeetle client used by the facade.
// One instance is constructed at startup, shared by all requests, and closed
// at shutdown. Timeouts and retries are owned by the underlying client.
type Client interface {
	CreateAccounts(accounts []types.Account) ([]types.AccountEventResult, error)
	CreateTransfers(transfers []types.Transfer) ([]types.TransferEventResult, error)
	LookupAccounts(accountIDs []types.Uint128) ([]types.Account, error)
	Close()
}

// NewClient connects to the TigerBeetle cluster described by cfg. The
// returned client is safe for concurrent use.
func NewClient(log *slog.Logger, cfg *config.TigerBeetleConfig) (Client, error) {
	client, err := tb.NewClient(types.ToUint128(cfg.ClusterID), cfg.Addresses)
	if err != nil {
		return nil, fmt.Errorf("failed to create TigerBeetle client: %w", err)
	}

	log.Info("Connected to TigerBeetle cluster",
		"cluster_id", cfg.ClusterID,
		"addresses", cfg.Addresses,
	)

	return client, nil
}
