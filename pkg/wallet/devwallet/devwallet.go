/*
Package devwallet is an in-process stand-in for a browser wallet
extension. It implements the same capability surface the browser UI
consumes so the demo CLI can drive the full connect / build / sign /
submit workflow without a browser.

Transactions are CBOR encoded and signed for real (ed25519 over the
blake2b-256 body hash, the way Cardano transaction ids are formed) but
submission only settles against the wallet's local ledger.
*/
package devwallet

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/cardano-preview/walletdemo/pkg/wallet"
)

// fee every transfer pays, roughly what the real network charges
const txFee uint64 = 170_000

var (
	ErrNotEnabled        = errors.New("wallet is not enabled")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type (
	txInput struct {
		_     struct{} `cbor:",toarray"`
		TxID  []byte
		Index uint32
	}

	txOutput struct {
		_       struct{} `cbor:",toarray"`
		Address string
		Amount  uint64
	}

	txBody struct {
		_       struct{} `cbor:",toarray"`
		Inputs  []txInput
		Outputs []txOutput
		Fee     uint64
	}

	signedTx struct {
		_         struct{} `cbor:",toarray"`
		Body      []byte
		PubKey    []byte
		Signature []byte
	}

	// Wallet is the dev capability provider, safe for concurrent use.
	Wallet struct {
		mu      sync.Mutex
		ks      *keystore
		enabled bool

		// RejectSign simulates the user declining the signing prompt.
		RejectSign bool
	}
)

var _ wallet.Provider = (*Wallet)(nil)

/*
New opens (or creates) the dev wallet keystore under dir. An empty
mnemonic generates a fresh one on first use.
*/
func New(dir, mnemonic string) (*Wallet, error) {
	ks, err := openKeystore(dir, mnemonic)
	if err != nil {
		return nil, fmt.Errorf("opening dev wallet keystore: %w", err)
	}
	return &Wallet{ks: ks}, nil
}

func (w *Wallet) Close() error {
	return w.ks.Close()
}

// Mnemonic returns the recovery phrase of the wallet.
func (w *Wallet) Mnemonic() (string, error) {
	return w.ks.mnemonic()
}

func (w *Wallet) Enable(_ context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.enabled = true
	return nil
}

func (w *Wallet) Disable(_ context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.enabled = false
	return nil
}

func (w *Wallet) GetChangeAddress(_ context.Context) (string, error) {
	if err := w.requireEnabled(); err != nil {
		return "", err
	}
	key, err := w.ks.signingKey()
	if err != nil {
		return "", err
	}
	return addressFor(key.Public().(ed25519.PublicKey)), nil
}

func (w *Wallet) GetBalance(_ context.Context) ([]wallet.Asset, error) {
	if err := w.requireEnabled(); err != nil {
		return nil, err
	}
	balance, err := w.ks.balance()
	if err != nil {
		return nil, err
	}
	return []wallet.Asset{{Unit: wallet.UnitLovelace, Quantity: strconv.FormatUint(balance, 10)}}, nil
}

/*
BuildTransfer constructs an unsigned CBOR transaction body paying the
given amount to receiverAddr, spending the wallet's single synthetic
input. Fails with ErrInsufficientFunds when amount+fee exceeds the
ledger balance.
*/
func (w *Wallet) BuildTransfer(_ context.Context, receiverAddr string, lovelace uint64) (wallet.UnsignedTx, error) {
	if err := w.requireEnabled(); err != nil {
		return nil, err
	}
	balance, err := w.ks.balance()
	if err != nil {
		return nil, err
	}
	if lovelace+txFee > balance {
		return nil, fmt.Errorf("%w: balance %d lovelace, need %d", ErrInsufficientFunds, balance, lovelace+txFee)
	}

	prevHash, err := w.ks.lastTxHash()
	if err != nil {
		return nil, err
	}
	body := &txBody{
		Inputs:  []txInput{{TxID: prevHash, Index: 0}},
		Outputs: []txOutput{{Address: receiverAddr, Amount: lovelace}},
		Fee:     txFee,
	}
	encoded, err := cbor.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding transaction body: %w", err)
	}
	return encoded, nil
}

// SignTx signs the blake2b-256 hash of the body. RejectSign simulates a
// declined signing prompt.
func (w *Wallet) SignTx(_ context.Context, tx wallet.UnsignedTx) (wallet.SignedTx, error) {
	if err := w.requireEnabled(); err != nil {
		return nil, err
	}
	if w.RejectSign {
		return nil, errors.New("user declined to sign the transaction")
	}
	key, err := w.ks.signingKey()
	if err != nil {
		return nil, err
	}

	bodyHash := blake2b.Sum256(tx)
	signed, err := cbor.Marshal(&signedTx{
		Body:      tx,
		PubKey:    key.Public().(ed25519.PublicKey),
		Signature: ed25519.Sign(key, bodyHash[:]),
	})
	if err != nil {
		return nil, fmt.Errorf("encoding signed transaction: %w", err)
	}
	return signed, nil
}

/*
SubmitTx verifies the witness, settles the transfer against the local
ledger and returns the transaction id (hex of the blake2b-256 body
hash).
*/
func (w *Wallet) SubmitTx(_ context.Context, tx wallet.SignedTx) (string, error) {
	if err := w.requireEnabled(); err != nil {
		return "", err
	}
	stx := &signedTx{}
	if err := cbor.Unmarshal(tx, stx); err != nil {
		return "", fmt.Errorf("decoding signed transaction: %w", err)
	}
	bodyHash := blake2b.Sum256(stx.Body)
	if !ed25519.Verify(stx.PubKey, bodyHash[:], stx.Signature) {
		return "", errors.New("invalid transaction witness")
	}
	body := &txBody{}
	if err := cbor.Unmarshal(stx.Body, body); err != nil {
		return "", fmt.Errorf("decoding transaction body: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	balance, err := w.ks.balance()
	if err != nil {
		return "", err
	}
	ownAddr := addressFor(stx.PubKey)
	spent := body.Fee
	for _, out := range body.Outputs {
		spent += out.Amount
		if out.Address == ownAddr {
			// a self-transfer only costs the fee
			spent -= out.Amount
		}
	}
	if spent > balance {
		return "", ErrInsufficientFunds
	}
	if err := w.ks.setBalance(balance - spent); err != nil {
		return "", err
	}
	if err := w.ks.setLastTxHash(bodyHash[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(bodyHash[:]), nil
}

func (w *Wallet) requireEnabled() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.enabled {
		return ErrNotEnabled
	}
	return nil
}

// addressFor derives the demo testnet address of a public key: the
// bech32 style prefix with the hex encoded blake2b-224 key hash.
func addressFor(pubKey ed25519.PublicKey) string {
	hasher, _ := blake2b.New(28, nil)
	hasher.Write(pubKey)
	return "addr_test1" + hex.EncodeToString(hasher.Sum(nil))
}
