package collector

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_emptyList(t *testing.T) {
	store := NewMemoryTxStore()
	require.Equal(t, "memory", store.Name())

	records, err := store.GetTransactions(context.Background(), ListLimit)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestMemoryStore_newestFirst(t *testing.T) {
	store := NewMemoryTxStore()
	for i := 0; i < 3; i++ {
		rec, err := NewTxRecord(fmt.Sprintf("hash-%d", i), "", "")
		require.NoError(t, err)
		_, err = store.CreateTransaction(context.Background(), rec)
		require.NoError(t, err)
	}

	records, err := store.GetTransactions(context.Background(), ListLimit)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "hash-2", records[0].TxHash)
	require.Equal(t, "hash-1", records[1].TxHash)
	require.Equal(t, "hash-0", records[2].TxHash)
}

func TestMemoryStore_limit(t *testing.T) {
	store := NewMemoryTxStore()
	for i := 0; i < 10; i++ {
		rec, err := NewTxRecord(fmt.Sprintf("hash-%d", i), "", "")
		require.NoError(t, err)
		_, err = store.CreateTransaction(context.Background(), rec)
		require.NoError(t, err)
	}

	records, err := store.GetTransactions(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, records, 4)
	require.Equal(t, "hash-9", records[0].TxHash)
	require.Equal(t, "hash-6", records[3].TxHash)
}

func TestMemoryStore_concurrentAppends(t *testing.T) {
	store := NewMemoryTxStore()
	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			rec, err := NewTxRecord(fmt.Sprintf("hash-%d", n), "", "")
			require.NoError(t, err)
			_, err = store.CreateTransaction(context.Background(), rec)
			require.NoError(t, err)
		}(i)
	}
	wg.Wait()

	records, err := store.GetTransactions(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, records, 50)
}

func TestNewTxRecord_defaults(t *testing.T) {
	rec, err := NewTxRecord("abc", "addr_test1xyz", "")
	require.NoError(t, err)
	require.Equal(t, "preprod", rec.Network)
	require.False(t, rec.CreatedAt.IsZero())

	rec, err = NewTxRecord("abc", "", "preview")
	require.NoError(t, err)
	require.Equal(t, "preview", rec.Network)

	_, err = NewTxRecord(" \t\n", "", "")
	require.ErrorIs(t, err, ErrInvalidTxHash)
}
