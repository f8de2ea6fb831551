package collector

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ListLimit is the maximum number of records the list operation returns.
const ListLimit = 20

var ErrInvalidTxHash = errors.New("txHash is required and must be a non-empty string")

type (
	// TxRecord is one collected transaction. Records are append only,
	// they are never updated nor deleted.
	TxRecord struct {
		TxHash        string    `json:"txHash" bson:"tx_hash"`
		WalletAddress string    `json:"walletAddress,omitempty" bson:"wallet_address,omitempty"`
		Network       string    `json:"network" bson:"network"`
		CreatedAt     time.Time `json:"createdAt" bson:"created_at"`
	}

	/*
		TxStore persists collected transactions. The durable (mongo) and
		the process local implementations expose the identical surface so
		the REST layer never branches on the backing store.
	*/
	TxStore interface {
		// CreateTransaction stores the record and returns it with the
		// creation timestamp set.
		CreateTransaction(ctx context.Context, rec *TxRecord) (*TxRecord, error)
		// GetTransactions returns at most limit records, newest first.
		GetTransactions(ctx context.Context, limit int) ([]*TxRecord, error)
		// Name labels the storage source in responses, diagnostic only.
		Name() string
	}
)

/*
NewTxRecord validates the create request fields and builds the record.
Returns ErrInvalidTxHash when the hash is empty after trimming; such a
request is rejected before anything is persisted.
*/
func NewTxRecord(txHash, walletAddress, network string) (*TxRecord, error) {
	txHash = strings.TrimSpace(txHash)
	if txHash == "" {
		return nil, ErrInvalidTxHash
	}
	if network == "" {
		network = defaultNetwork
	}
	return &TxRecord{
		TxHash:        txHash,
		WalletAddress: walletAddress,
		Network:       network,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

const defaultNetwork = "preprod"
