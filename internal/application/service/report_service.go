package service

import (
	"context"
	"fmt"
	"time"

	"wallet-flow-analyzer/internal/domain/entity"
	domain "wallet-flow-analyzer/internal/domain/service"
	"wallet-flow-analyzer/internal/infrastructure/logger"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// WalletReportService implements the ReportService interface
type WalletReportService struct {
	feed      domain.TransferFeed
	analyzer  *domain.WalletAnalyzer
	publisher domain.ReportPublisher
	logger    *logger.Logger
}

// NewWalletReportService creates a new wallet report service
func NewWalletReportService(
	feed domain.TransferFeed,
	analyzer *domain.WalletAnalyzer,
	publisher domain.ReportPublisher,
	logger *logger.Logger,
) domain.ReportService {
	return &WalletReportService{
		feed:      feed,
		analyzer:  analyzer,
		publisher: publisher,
		logger:    logger.WithComponent("report-service"),
	}
}

// GenerateReport validates the subject address, fetches its transfer history
// and derives the analytics report. Validation failures are reported before
// any fetch; upstream and no-data failures pass through untouched so the
// transport layer can map them to distinct responses.
func (s *WalletReportService) GenerateReport(ctx context.Context, address, contract string) (*entity.WalletReport, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, address)
	}

	transfers, err := s.feed.FetchTokenTransfers(ctx, address, contract)
	if err != nil {
		return nil, err
	}

	report := s.analyzer.Analyze(transfers, address, time.Now())

	s.logger.Info("Generated wallet report",
		zap.String("address", address),
		zap.Int("transfers", len(transfers)),
		zap.Float64("current_balance", report.Summary.CurrentBalance))

	if s.publisher != nil {
		if err := s.publisher.PublishReport(ctx, report); err != nil {
			// Publication is best-effort; the report is still valid.
			s.logger.Warn("Failed to publish report event",
				zap.String("address", address),
				zap.Error(err))
		}
	}

	return report, nil
}
