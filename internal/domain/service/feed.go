package service

import (
	"context"
	"errors"

	"wallet-flow-analyzer/internal/domain/entity"
)

// ErrNoTransfers is returned when the feed has no matching transfers for the
// queried wallet. Callers must treat this as a distinct "no data" condition,
// not as a zero-valued report.
var ErrNoTransfers = errors.New("no transfers found for wallet")

// TransferFeed defines the interface for fetching token transfers.
// Implementations are expected to pre-filter records that are not true token
// transfers (empty or zero value, missing decimals, missing symbol).
type TransferFeed interface {
	// FetchTokenTransfers returns the wallet's transfer history for the given
	// token contract. An empty contract selects all tokens the feed supports.
	FetchTokenTransfers(ctx context.Context, address, contract string) ([]entity.Transfer, error)
}
