package wallet

import (
	"context"
	"sync/atomic"
)

// mockProvider is a configurable in-memory wallet capability for tests.
type mockProvider struct {
	enableErr  error
	disableErr error

	address    string
	addressErr error

	assets     []Asset
	balanceErr error

	buildErr error
	signErr  error

	submitTxID string
	submitErr  error

	enableCalls atomic.Int32
	submitCalls atomic.Int32
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		address:    "addr_test1mock",
		assets:     []Asset{{Unit: UnitLovelace, Quantity: "5000000"}},
		submitTxID: "deadbeef",
	}
}

func (m *mockProvider) Enable(_ context.Context) error {
	m.enableCalls.Add(1)
	return m.enableErr
}

func (m *mockProvider) Disable(_ context.Context) error {
	return m.disableErr
}

func (m *mockProvider) GetChangeAddress(_ context.Context) (string, error) {
	return m.address, m.addressErr
}

func (m *mockProvider) GetBalance(_ context.Context) ([]Asset, error) {
	if m.balanceErr != nil {
		return nil, m.balanceErr
	}
	return m.assets, nil
}

func (m *mockProvider) BuildTransfer(_ context.Context, receiverAddr string, lovelace uint64) (UnsignedTx, error) {
	if m.buildErr != nil {
		return nil, m.buildErr
	}
	return UnsignedTx("unsigned:" + receiverAddr), nil
}

func (m *mockProvider) SignTx(_ context.Context, tx UnsignedTx) (SignedTx, error) {
	if m.signErr != nil {
		return nil, m.signErr
	}
	return SignedTx("signed:" + string(tx)), nil
}

func (m *mockProvider) SubmitTx(_ context.Context, _ SignedTx) (string, error) {
	m.submitCalls.Add(1)
	if m.submitErr != nil {
		return "", m.submitErr
	}
	return m.submitTxID, nil
}
