package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

const (
	// LovelacePerAda is the minor unit exchange rate of the ledger's
	// native asset.
	LovelacePerAda = 1_000_000

	// SelfTransferAmount is the fixed amount (in lovelace) the demo
	// workflow pays to the wallet's own change address.
	SelfTransferAmount uint64 = 1_000_000

	// UnitLovelace is the balance entry unit of the native asset.
	UnitLovelace = "lovelace"

	// NetworkPreprod is the testnet label records default to.
	NetworkPreprod = "preprod"
)

// ProviderID identifies a wallet capability provider brand.
type ProviderID string

const (
	ProviderNami   ProviderID = "nami"
	ProviderEternl ProviderID = "eternl"
	ProviderFlint  ProviderID = "flint"
	ProviderLace   ProviderID = "lace"
	ProviderYoroi  ProviderID = "yoroi"
	ProviderGero   ProviderID = "gero"
	ProviderTyphon ProviderID = "typhon"
)

var (
	ErrProviderNotFound = errors.New("wallet extension not found, please install it and reload the page")
	ErrNotConnected     = errors.New("wallet is not connected")
	ErrAlreadyRunning   = errors.New("transaction workflow is already running")
)

type (
	// Asset is one balance entry returned by the wallet capability.
	// Quantity is a decimal string as on-chain values may exceed the
	// range where float64 arithmetic is exact.
	Asset struct {
		Unit     string `json:"unit"`
		Quantity string `json:"quantity"`
	}

	// UnsignedTx is a CBOR encoded transaction body produced by the
	// capability's transfer builder.
	UnsignedTx []byte

	// SignedTx is the witnessed transaction ready for submission.
	SignedTx []byte

	/*
		Provider is the narrow surface of an externally owned wallet
		capability the demo consumes. Implementations may block for
		arbitrary durations (user interaction in the wallet UI, network
		round-trips) so every operation takes a context.
	*/
	Provider interface {
		Enable(ctx context.Context) error
		Disable(ctx context.Context) error
		GetChangeAddress(ctx context.Context) (string, error)
		GetBalance(ctx context.Context) ([]Asset, error)
		BuildTransfer(ctx context.Context, receiverAddr string, lovelace uint64) (UnsignedTx, error)
		SignTx(ctx context.Context, tx UnsignedTx) (SignedTx, error)
		SubmitTx(ctx context.Context, tx SignedTx) (string, error)
	}

	// Registry holds the detected capability providers. A brand absent
	// from the registry is reported as "extension not installed".
	Registry struct {
		mu        sync.RWMutex
		providers map[ProviderID]Provider
	}
)

// SupportedProviders returns the fixed set of known wallet brands.
func SupportedProviders() []ProviderID {
	return []ProviderID{
		ProviderNami,
		ProviderEternl,
		ProviderFlint,
		ProviderLace,
		ProviderYoroi,
		ProviderGero,
		ProviderTyphon,
	}
}

func isSupported(id ProviderID) bool {
	for _, known := range SupportedProviders() {
		if id == known {
			return true
		}
	}
	return false
}

func NewRegistry() *Registry {
	return &Registry{providers: map[ProviderID]Provider{}}
}

// Register makes the capability of the given brand visible to the
// connection manager. Unknown brands are rejected.
func (r *Registry) Register(id ProviderID, provider Provider) error {
	if !isSupported(id) {
		return fmt.Errorf("unsupported wallet provider %q", id)
	}
	if provider == nil {
		return fmt.Errorf("provider %q is nil", id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[id] = provider
	return nil
}

// Lookup returns the capability of the given brand or
// ErrProviderNotFound when the brand is not detected.
func (r *Registry) Lookup(id ProviderID) (Provider, error) {
	if !isSupported(id) {
		return nil, fmt.Errorf("unsupported wallet provider %q", id)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[id]
	if !ok {
		return nil, fmt.Errorf("provider %q: %w", id, ErrProviderNotFound)
	}
	return provider, nil
}
