package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"wallet-flow-analyzer/internal/domain/entity"
	"wallet-flow-analyzer/internal/domain/service"
	"wallet-flow-analyzer/internal/infrastructure/config"
	"wallet-flow-analyzer/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// EtherscanClient fetches token transfers from an Etherscan-compatible API.
// One query is one request: no retry, no backoff; a failure is terminal for
// that query.
type EtherscanClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewEtherscanClient creates a new feed client
func NewEtherscanClient(cfg *config.Config, logger *logger.Logger) service.TransferFeed {
	return &EtherscanClient{
		baseURL:    cfg.Feed.BaseURL,
		apiKey:     cfg.Feed.APIKey,
		httpClient: &http.Client{Timeout: cfg.Feed.Timeout},
		logger:     logger.WithComponent("etherscan-feed"),
	}
}

// FetchTokenTransfers fetches the wallet's ERC20 transfer history, oldest
// first, pre-filtered to true token transfers.
func (c *EtherscanClient) FetchTokenTransfers(ctx context.Context, address, contract string) ([]entity.Transfer, error) {
	params := url.Values{}
	params.Set("module", "account")
	params.Set("action", "tokentx")
	params.Set("address", address)
	if contract != "" {
		params.Set("contractaddress", contract)
	}
	params.Set("sort", "asc")
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}

	endpoint := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var payload entity.TokenTransferResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode feed response: %w", err)
	}

	if payload.Status != "1" {
		if strings.Contains(payload.Message, "No transactions found") {
			return nil, service.ErrNoTransfers
		}
		return nil, fmt.Errorf("feed error: %s", payload.Message)
	}

	transfers := filterTransfers(payload.Result)
	c.logger.Debug("Fetched token transfers",
		zap.String("address", address),
		zap.Int("raw", len(payload.Result)),
		zap.Int("kept", len(transfers)))

	if len(transfers) == 0 {
		return nil, service.ErrNoTransfers
	}
	return transfers, nil
}

// filterTransfers drops records that are not true token transfers: empty or
// zero value, missing decimals, or missing symbol.
func filterTransfers(raw []entity.Transfer) []entity.Transfer {
	transfers := make([]entity.Transfer, 0, len(raw))
	for _, t := range raw {
		if t.Value == "" || t.Value == "0" {
			continue
		}
		if t.TokenDecimal == "" || t.TokenSymbol == "" {
			continue
		}
		transfers = append(transfers, t)
	}
	return transfers
}
