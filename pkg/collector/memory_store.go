package collector

import (
	"context"
	"sync"
)

/*
memoryTxStore is the process local fallback store: an append only
sequence bounded only by process lifetime. Appends must be synchronized
as the http server calls handlers concurrently.
*/
type memoryTxStore struct {
	mu      sync.RWMutex
	records []*TxRecord
}

func NewMemoryTxStore() TxStore {
	return &memoryTxStore{}
}

func (s *memoryTxStore) Name() string {
	return "memory"
}

func (s *memoryTxStore) CreateTransaction(_ context.Context, rec *TxRecord) (*TxRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *memoryTxStore) GetTransactions(_ context.Context, limit int) ([]*TxRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := len(s.records)
	if count > limit {
		count = limit
	}
	// records are appended in creation order, return newest first
	result := make([]*TxRecord, 0, count)
	for i := len(s.records) - 1; i >= 0 && len(result) < count; i-- {
		result = append(result, s.records[i])
	}
	return result, nil
}
