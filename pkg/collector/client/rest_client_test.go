package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cardano-preview/walletdemo/pkg/collector"
)

func TestNew_schemeDefaulting(t *testing.T) {
	c, err := New("localhost:4000")
	require.NoError(t, err)
	require.Equal(t, "http", c.BaseUrl.Scheme)
	require.Equal(t, "http://localhost:4000/api/transactions", c.transactionsURL.String())

	c, err = New("https://collector.example.com")
	require.NoError(t, err)
	require.Equal(t, "https", c.BaseUrl.Scheme)
	require.Equal(t, "https://collector.example.com/api/health", c.healthURL.String())
}

func TestReportTransaction(t *testing.T) {
	var received *collector.CreateTransactionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/transactions", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		received = &collector.CreateTransactionRequest{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)
	err = c.ReportTransaction(context.Background(), "abc123", "addr_test1xyz", "preprod")
	require.NoError(t, err)
	require.NotNil(t, received)
	require.Equal(t, "abc123", received.TxHash)
	require.Equal(t, "addr_test1xyz", received.WalletAddress)
	require.Equal(t, "preprod", received.Network)
}

func TestReportTransaction_rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)
	err = c.ReportTransaction(context.Background(), "abc123", "", "")
	require.ErrorContains(t, err, "unexpected response status code: 400")
}

func TestGetTransactions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/transactions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(&collector.ListTransactionsResponse{
			Ok:     true,
			Source: "memory",
			Items:  []*collector.TxRecord{{TxHash: "abc123", Network: "preprod"}},
		}))
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)
	res, err := c.GetTransactions(context.Background())
	require.NoError(t, err)
	require.True(t, res.Ok)
	require.Equal(t, "memory", res.Source)
	require.Len(t, res.Items, 1)
	require.Equal(t, "abc123", res.Items[0].TxHash)
}

func TestGetHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(&collector.HealthResponse{Ok: true, MongoConnected: true}))
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)
	res, err := c.GetHealth(context.Background())
	require.NoError(t, err)
	require.True(t, res.Ok)
	require.True(t, res.MongoConnected)
}

func TestGetHealth_serverDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)
	_, err = c.GetHealth(context.Background())
	require.ErrorContains(t, err, "request GetHealth failed")
}
