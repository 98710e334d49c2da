package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"wallet-flow-analyzer/internal/domain/entity"
	"wallet-flow-analyzer/internal/infrastructure/config"
	"wallet-flow-analyzer/internal/infrastructure/logger"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// ReportPublisher publishes completed wallet reports to NATS so downstream
// consumers (dashboards, alerting) can react to finished analyses. When NATS
// is disabled it is a no-op.
type ReportPublisher struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	config *config.NATSConfig
	logger *logger.Logger
}

// NewReportPublisher creates a new report publisher
func NewReportPublisher(cfg *config.NATSConfig, logger *logger.Logger) *ReportPublisher {
	return &ReportPublisher{
		config: cfg,
		logger: logger.WithComponent("report-publisher"),
	}
}

// Connect connects to the NATS server
func (p *ReportPublisher) Connect(ctx context.Context) error {
	if !p.config.Enabled {
		p.logger.Info("NATS is disabled, skipping connection")
		return nil
	}

	p.logger.Info("Connecting to NATS server", zap.String("url", p.config.URL))

	opts := []nats.Option{
		nats.Name("wallet-flow-analyzer"),
		nats.Timeout(p.config.ConnectTimeout),
		nats.ReconnectWait(p.config.ReconnectDelay),
		nats.MaxReconnects(p.config.ReconnectAttempts),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			p.logger.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			p.logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			p.logger.Info("NATS connection closed")
		}),
	}

	conn, err := nats.Connect(p.config.URL, opts...)
	if err != nil {
		p.logger.Error("Failed to connect to NATS", zap.Error(err))
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	p.conn = conn

	// Prefer JetStream for at-least-once delivery, fall back to core NATS
	js, err := conn.JetStream()
	if err != nil {
		p.logger.Warn("JetStream not available, publishing over core NATS", zap.Error(err))
		return nil
	}
	p.js = js

	p.logger.Info("Successfully connected to NATS",
		zap.String("stream", p.config.StreamName),
		zap.String("subject_prefix", p.config.SubjectPrefix))
	return nil
}

// PublishReport publishes a completed wallet report. Errors are returned to
// the caller but are expected to be treated as non-fatal: publication never
// invalidates an already-computed report.
func (p *ReportPublisher) PublishReport(ctx context.Context, report *entity.WalletReport) error {
	if !p.config.Enabled || p.conn == nil {
		return nil
	}

	subject := fmt.Sprintf("%s.reports", p.config.SubjectPrefix)
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if p.js != nil {
		_, err = p.js.Publish(subject, data, nats.Context(ctx))
	} else {
		err = p.conn.Publish(subject, data)
	}
	if err != nil {
		return fmt.Errorf("failed to publish report: %w", err)
	}

	p.logger.Debug("Published wallet report",
		zap.String("subject", subject),
		zap.String("address", report.Summary.Address))
	return nil
}

// Disconnect drains and closes the NATS connection
func (p *ReportPublisher) Disconnect() error {
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
		p.js = nil
	}
	p.logger.Info("Disconnected from NATS")
	return nil
}

// IsConnected checks if connected to NATS
func (p *ReportPublisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}
