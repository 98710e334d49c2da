package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"wallet-flow-analyzer/internal/domain/service"
	"wallet-flow-analyzer/internal/infrastructure/config"
	"wallet-flow-analyzer/internal/infrastructure/logger"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Server exposes the wallet report API, the feed proxy and the health check
type Server struct {
	reports     service.ReportService
	cfg         *config.Config
	logger      *logger.Logger
	httpServer  *http.Server
	proxyClient *http.Client
}

// NewServer creates a new API server
func NewServer(reports service.ReportService, cfg *config.Config, logger *logger.Logger) *Server {
	return &Server{
		reports:     reports,
		cfg:         cfg,
		logger:      logger.WithComponent("api-server"),
		proxyClient: &http.Client{Timeout: cfg.Feed.Timeout},
	}
}

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/wallets/{address}/report", s.handleWalletReport).Methods(http.MethodGet)
	r.HandleFunc("/api/proxy", s.handleProxy).Methods(http.MethodGet)
	return r
}

// Start begins serving in the background
func (s *Server) Start() {
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.App.HTTPPort),
		Handler: s.router(),
	}

	go func() {
		s.logger.Info("HTTP server listening", zap.Int("port", s.cfg.App.HTTPPort))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleWalletReport(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]
	contract := r.URL.Query().Get("contract")
	if contract == "" {
		contract = s.cfg.Feed.DefaultContract
	}

	report, err := s.reports.GenerateReport(r.Context(), address, contract)
	switch {
	case errors.Is(err, service.ErrInvalidAddress):
		s.writeError(w, http.StatusBadRequest, "invalid wallet address")
		return
	case errors.Is(err, service.ErrNoTransfers):
		s.writeError(w, http.StatusNotFound, "no transfers found for wallet")
		return
	case err != nil:
		s.logger.Error("Failed to generate report",
			zap.String("address", address),
			zap.Error(err))
		s.writeError(w, http.StatusBadGateway, "transfer feed unavailable")
		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
