package service

import (
	"context"
	"errors"

	"wallet-flow-analyzer/internal/domain/entity"
)

// ErrInvalidAddress is returned when the subject address is not a valid
// Ethereum account address.
var ErrInvalidAddress = errors.New("invalid wallet address")

// ReportService defines the interface for wallet report generation
type ReportService interface {
	// GenerateReport fetches the wallet's transfer history and derives the
	// full analytics report from it.
	GenerateReport(ctx context.Context, address, contract string) (*entity.WalletReport, error)
}

// ReportPublisher publishes completed wallet reports for downstream consumers
type ReportPublisher interface {
	PublishReport(ctx context.Context, report *entity.WalletReport) error
}
