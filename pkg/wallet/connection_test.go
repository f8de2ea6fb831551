package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	testlogger "github.com/cardano-preview/walletdemo/internal/testutils/logger"
)

func TestConnect_providerNotDetected(t *testing.T) {
	manager := NewConnectionManager(NewRegistry(), testlogger.New(t))

	err := manager.Connect(context.Background(), ProviderNami)
	require.ErrorIs(t, err, ErrProviderNotFound)

	status := manager.Status()
	require.Equal(t, ConnFailed, status.State)
	require.Contains(t, status.Message, "install")
}

func TestConnect_unsupportedBrand(t *testing.T) {
	registry := NewRegistry()
	require.ErrorContains(t, registry.Register("acmewallet", newMockProvider()), "unsupported wallet provider")

	manager := NewConnectionManager(registry, testlogger.New(t))
	err := manager.Connect(context.Background(), "acmewallet")
	require.ErrorContains(t, err, "unsupported wallet provider")
}

func TestConnect_ok(t *testing.T) {
	provider := newMockProvider()
	registry := NewRegistry()
	require.NoError(t, registry.Register(ProviderEternl, provider))

	manager := NewConnectionManager(registry, testlogger.New(t))
	require.NoError(t, manager.Connect(context.Background(), ProviderEternl))

	status := manager.Status()
	require.Equal(t, Connected, status.State)
	require.Equal(t, ProviderEternl, status.Provider)
	require.EqualValues(t, 1, provider.enableCalls.Load())

	// balance was refreshed on connect
	require.Equal(t, "5000000", manager.Balance().Lovelace)
}

func TestConnect_userRejected(t *testing.T) {
	provider := newMockProvider()
	provider.enableErr = errors.New("user rejected the request")
	registry := NewRegistry()
	require.NoError(t, registry.Register(ProviderNami, provider))

	manager := NewConnectionManager(registry, testlogger.New(t))
	err := manager.Connect(context.Background(), ProviderNami)
	require.ErrorContains(t, err, "user rejected")

	status := manager.Status()
	require.Equal(t, ConnFailed, status.State)
	require.Contains(t, status.Message, "try again")

	_, err = manager.Provider()
	require.ErrorIs(t, err, ErrNotConnected)
}

func TestDisconnect(t *testing.T) {
	provider := newMockProvider()
	registry := NewRegistry()
	require.NoError(t, registry.Register(ProviderNami, provider))
	manager := NewConnectionManager(registry, testlogger.New(t))
	require.NoError(t, manager.Connect(context.Background(), ProviderNami))

	require.NoError(t, manager.Disconnect(context.Background()))
	status := manager.Status()
	require.Equal(t, Disconnected, status.State)
	require.Equal(t, "0", manager.Balance().Lovelace)

	_, err := manager.Provider()
	require.ErrorIs(t, err, ErrNotConnected)
}

func TestDisconnect_failure(t *testing.T) {
	provider := newMockProvider()
	provider.disableErr = errors.New("provider gone")
	registry := NewRegistry()
	require.NoError(t, registry.Register(ProviderNami, provider))
	manager := NewConnectionManager(registry, testlogger.New(t))
	require.NoError(t, manager.Connect(context.Background(), ProviderNami))

	err := manager.Disconnect(context.Background())
	require.ErrorContains(t, err, "provider gone")

	status := manager.Status()
	require.Equal(t, ConnFailed, status.State)
	require.Contains(t, status.Message, "reload")
}

func TestRefreshBalance(t *testing.T) {
	provider := newMockProvider()
	registry := NewRegistry()
	require.NoError(t, registry.Register(ProviderNami, provider))
	manager := NewConnectionManager(registry, testlogger.New(t))
	require.NoError(t, manager.Connect(context.Background(), ProviderNami))

	provider.assets = []Asset{{Unit: UnitLovelace, Quantity: "7000000"}}
	lovelace, err := manager.RefreshBalance(context.Background())
	require.NoError(t, err)
	require.Equal(t, "7000000", lovelace)
	require.Equal(t, "7000000", manager.Balance().Lovelace)
	require.False(t, manager.Balance().Loading)

	// snapshot is replaced atomically, a failed fetch keeps the old value
	provider.balanceErr = errors.New("capability fault")
	_, err = manager.RefreshBalance(context.Background())
	require.ErrorContains(t, err, "capability fault")
	require.Equal(t, "7000000", manager.Balance().Lovelace)
}
