package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cardano-preview/walletdemo/logger"
)

// ConnState is the connection lifecycle state of the wallet session.
type ConnState int

const (
	Disconnected ConnState = iota
	Connecting
	Connected
	ConnFailed
)

func (s ConnState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case ConnFailed:
		return "error"
	default:
		return fmt.Sprintf("ConnState(%d)", int(s))
	}
}

type (
	// ConnectionStatus is a read only snapshot of the connection state.
	ConnectionStatus struct {
		State    ConnState
		Provider ProviderID
		Message  string
		Err      error
	}

	// BalanceSnapshot is the last fetched wallet balance. Lovelace is a
	// decimal string, replaced atomically on each refresh.
	BalanceSnapshot struct {
		Lovelace string
		Loading  bool
	}

	/*
		ConnectionManager tracks the connection lifecycle to one of the
		registered wallet capability providers. It is the only component
		mutating the connection state; everything else reads snapshots.
	*/
	ConnectionManager struct {
		registry *Registry
		log      *slog.Logger

		mu       sync.Mutex
		status   ConnectionStatus
		balance  BalanceSnapshot
		provider Provider
	}
)

func NewConnectionManager(registry *Registry, log *slog.Logger) *ConnectionManager {
	return &ConnectionManager{
		registry: registry,
		log:      log,
		status:   ConnectionStatus{State: Disconnected, Message: "Not connected"},
		balance:  BalanceSnapshot{Lovelace: "0"},
	}
}

/*
Connect establishes a session with the capability of the given brand.
When the brand is not detected the state moves to error with an
installation instruction and nothing else happens. A provider fault or
user rejection moves the state to error with a retry message.
*/
func (m *ConnectionManager) Connect(ctx context.Context, id ProviderID) error {
	provider, err := m.registry.Lookup(id)
	if err != nil {
		m.setStatus(ConnectionStatus{State: ConnFailed, Provider: id, Message: err.Error(), Err: err})
		return err
	}

	m.setStatus(ConnectionStatus{State: Connecting, Provider: id, Message: "Connecting to " + string(id) + "..."})
	if err := provider.Enable(ctx); err != nil {
		m.setStatus(ConnectionStatus{State: ConnFailed, Provider: id, Message: "Wallet connection failed, please try again", Err: err})
		return fmt.Errorf("enabling wallet %q: %w", id, err)
	}

	m.mu.Lock()
	m.provider = provider
	m.status = ConnectionStatus{State: Connected, Provider: id, Message: "Connected to " + string(id)}
	m.mu.Unlock()
	m.log.Info("wallet connected", logger.Provider(string(id)))

	// balance is refreshed on connect, failure is not fatal for the session
	if _, err := m.RefreshBalance(ctx); err != nil {
		m.log.Warn("fetching balance after connect", logger.Error(err))
	}
	return nil
}

// Disconnect ends the session from any state.
func (m *ConnectionManager) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	provider := m.provider
	m.provider = nil
	m.mu.Unlock()

	if provider != nil {
		if err := provider.Disable(ctx); err != nil {
			m.setStatus(ConnectionStatus{State: ConnFailed, Message: "Disconnect failed, please reload the page", Err: err})
			return fmt.Errorf("disabling wallet: %w", err)
		}
	}
	m.setStatus(ConnectionStatus{State: Disconnected, Message: "Not connected"})
	m.setBalance(BalanceSnapshot{Lovelace: "0"})
	return nil
}

// Provider returns the connected capability or ErrNotConnected.
func (m *ConnectionManager) Provider() (Provider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.provider == nil || m.status.State != Connected {
		return nil, ErrNotConnected
	}
	return m.provider, nil
}

// Status returns the current connection snapshot.
func (m *ConnectionManager) Status() ConnectionStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Balance returns the last fetched balance snapshot.
func (m *ConnectionManager) Balance() BalanceSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balance
}

/*
RefreshBalance fetches the balance from the connected capability and
replaces the snapshot atomically. The previous snapshot stays visible
(with the loading flag set) until the fetch either succeeds or fails.
*/
func (m *ConnectionManager) RefreshBalance(ctx context.Context) (string, error) {
	provider, err := m.Provider()
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.balance.Loading = true
	m.mu.Unlock()

	assets, err := provider.GetBalance(ctx)
	if err != nil {
		m.mu.Lock()
		m.balance.Loading = false
		m.mu.Unlock()
		return "", fmt.Errorf("fetching wallet balance: %w", err)
	}

	lovelace := SumLovelace(assets)
	m.setBalance(BalanceSnapshot{Lovelace: lovelace})
	return lovelace, nil
}

func (m *ConnectionManager) setStatus(status ConnectionStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
}

func (m *ConnectionManager) setBalance(balance BalanceSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balance = balance
}
