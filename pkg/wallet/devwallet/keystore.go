package devwallet

import (
	"crypto/ed25519"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tyler-smith/go-bip39"
	bolt "go.etcd.io/bbolt"
)

const KeystoreFileName = "devwallet.db"

var (
	keysBucket = []byte("keys")
	metaBucket = []byte("meta")

	mnemonicKeyName   = []byte("mnemonic")
	seedKeyName       = []byte("seed")
	balanceKeyName    = []byte("balance")
	lastTxHashKeyName = []byte("lastTxHash")
)

// initialBalance is the lovelace the dev wallet is seeded with, enough
// for plenty of demo self-transfers.
const initialBalance uint64 = 10_000 * 1_000_000

/*
keystore is a bolt backed store for the dev wallet's key material and
its local balance ledger.
*/
type keystore struct {
	db   *bolt.DB
	path string
}

/*
openKeystore opens (creating when missing) the keystore at dir. A new
keystore gets a generated bip39 mnemonic and the initial balance; an
existing one keeps its key and ledger across restarts.
*/
func openKeystore(dir, mnemonic string) (*keystore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil { // -rwx------
		return nil, fmt.Errorf("creating keystore dir: %w", err)
	}
	path := filepath.Join(dir, KeystoreFileName)
	db, err := bolt.Open(path, 0600, nil) // -rw-------
	if err != nil {
		return nil, fmt.Errorf("opening keystore db: %w", err)
	}
	ks := &keystore{db: db, path: path}
	if err := ks.init(mnemonic); err != nil {
		db.Close()
		return nil, err
	}
	return ks, nil
}

func (ks *keystore) init(mnemonic string) error {
	return ks.db.Update(func(tx *bolt.Tx) error {
		keys, err := tx.CreateBucketIfNotExists(keysBucket)
		if err != nil {
			return err
		}
		meta, err := tx.CreateBucketIfNotExists(metaBucket)
		if err != nil {
			return err
		}
		if keys.Get(seedKeyName) != nil {
			return nil
		}

		if mnemonic == "" {
			entropy, err := bip39.NewEntropy(128)
			if err != nil {
				return fmt.Errorf("generating mnemonic entropy: %w", err)
			}
			if mnemonic, err = bip39.NewMnemonic(entropy); err != nil {
				return fmt.Errorf("generating mnemonic: %w", err)
			}
		}
		if !bip39.IsMnemonicValid(mnemonic) {
			return fmt.Errorf("invalid mnemonic")
		}
		seed := bip39.NewSeed(mnemonic, "")

		if err := keys.Put(mnemonicKeyName, []byte(mnemonic)); err != nil {
			return err
		}
		if err := keys.Put(seedKeyName, seed[:ed25519.SeedSize]); err != nil {
			return err
		}
		return meta.Put(balanceKeyName, uint64ToBytes(initialBalance))
	})
}

func (ks *keystore) signingKey() (ed25519.PrivateKey, error) {
	var seed []byte
	err := ks.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(keysBucket).Get(seedKeyName)
		if v == nil {
			return fmt.Errorf("keystore has no seed")
		}
		seed = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ed25519.NewKeyFromSeed(seed), nil
}

func (ks *keystore) mnemonic() (string, error) {
	var mnemonic string
	err := ks.db.View(func(tx *bolt.Tx) error {
		mnemonic = string(tx.Bucket(keysBucket).Get(mnemonicKeyName))
		return nil
	})
	return mnemonic, err
}

func (ks *keystore) balance() (uint64, error) {
	var balance uint64
	err := ks.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(metaBucket).Get(balanceKeyName)
		if v != nil {
			balance = binary.BigEndian.Uint64(v)
		}
		return nil
	})
	return balance, err
}

func (ks *keystore) setBalance(balance uint64) error {
	return ks.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(metaBucket).Put(balanceKeyName, uint64ToBytes(balance))
	})
}

func (ks *keystore) lastTxHash() ([]byte, error) {
	var hash []byte
	err := ks.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(metaBucket).Get(lastTxHashKeyName)
		hash = append([]byte(nil), v...)
		return nil
	})
	return hash, err
}

func (ks *keystore) setLastTxHash(hash []byte) error {
	return ks.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(metaBucket).Put(lastTxHashKeyName, hash)
	})
}

func (ks *keystore) Close() error {
	return ks.db.Close()
}

func uint64ToBytes(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
