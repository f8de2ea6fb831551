package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cardano-preview/walletdemo/pkg/collector"
)

type (
	// CollectorClient is a thin http client for the transaction
	// collector service.
	CollectorClient struct {
		BaseUrl    *url.URL
		HttpClient http.Client

		healthURL       *url.URL
		transactionsURL *url.URL
	}
)

const (
	HealthPath       = "api/health"
	TransactionsPath = "api/transactions"

	defaultScheme   = "http://"
	contentType     = "Content-Type"
	applicationJson = "application/json"
)

func New(baseUrl string) (*CollectorClient, error) {
	if !strings.HasPrefix(baseUrl, "http://") && !strings.HasPrefix(baseUrl, "https://") {
		baseUrl = defaultScheme + baseUrl
	}
	u, err := url.Parse(baseUrl)
	if err != nil {
		return nil, fmt.Errorf("error parsing Collector Client base URL (%s): %w", baseUrl, err)
	}
	return &CollectorClient{
		BaseUrl:         u,
		HttpClient:      http.Client{Timeout: 10 * time.Second},
		healthURL:       u.JoinPath(HealthPath),
		transactionsURL: u.JoinPath(TransactionsPath),
	}, nil
}

/*
ReportTransaction posts a completed transaction hash to the collector.
The call is side effect only, the caller is expected to treat a failure
as a logging concern and not as a workflow failure.
*/
func (c *CollectorClient) ReportTransaction(ctx context.Context, txHash, walletAddress, network string) error {
	body, err := json.Marshal(&collector.CreateTransactionRequest{
		TxHash:        txHash,
		WalletAddress: walletAddress,
		Network:       network,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal ReportTransaction request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.transactionsURL.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build ReportTransaction request: %w", err)
	}
	req.Header.Set(contentType, applicationJson)

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request ReportTransaction failed: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected response status code: %d", response.StatusCode)
	}
	return nil
}

// GetTransactions returns the most recent collected records.
func (c *CollectorClient) GetTransactions(ctx context.Context) (*collector.ListTransactionsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.transactionsURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build GetTransactions request: %w", err)
	}
	req.Header.Set(contentType, applicationJson)

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request GetTransactions failed: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response status code: %d", response.StatusCode)
	}

	responseData, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read GetTransactions response: %w", err)
	}
	responseObject := &collector.ListTransactionsResponse{}
	if err := json.Unmarshal(responseData, responseObject); err != nil {
		return nil, fmt.Errorf("failed to unmarshall GetTransactions response data: %w", err)
	}
	return responseObject, nil
}

// GetHealth reports whether the collector is up and which storage mode
// it runs in.
func (c *CollectorClient) GetHealth(ctx context.Context) (*collector.HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build GetHealth request: %w", err)
	}
	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request GetHealth failed: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response status code: %d", response.StatusCode)
	}

	responseData, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read GetHealth response: %w", err)
	}
	responseObject := &collector.HealthResponse{}
	if err := json.Unmarshal(responseData, responseObject); err != nil {
		return nil, fmt.Errorf("failed to unmarshall GetHealth response data: %w", err)
	}
	return responseObject, nil
}
