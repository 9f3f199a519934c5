// Package utxostore keeps a local snapshot of spendable outputs. The
// snapshot is imported from a file and read back per address; it is a
// caller-side cache, never a view of live chain state.
package utxostore

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/Meridian-tech/meridian-pay/internal/storage"
	"github.com/Meridian-tech/meridian-pay/pkg/types"
)

// Key prefix for the snapshot: s/<payment20><stake20><txid32><index4> -> Source JSON.
var prefixSource = []byte("s/")

// Source is one spendable output in the snapshot.
type Source struct {
	Ref     types.Outpoint `json:"ref"`
	Address types.Address  `json:"address"`
	Value   types.Coin     `json:"value"`
}

// Store is a snapshot store backed by a storage.DB.
type Store struct {
	db storage.DB
}

// NewStore creates a snapshot store backed by the given database.
func NewStore(db storage.DB) *Store {
	return &Store{db: db}
}

// sourceKey builds the storage key for a source. Keys sort by address and
// then by outpoint, so a per-address read has a stable, deterministic
// order — the order handed to source selection.
func sourceKey(addr types.Address, ref types.Outpoint) []byte {
	key := make([]byte, 0, len(prefixSource)+2*types.KeyHashSize+types.HashSize+4)
	key = append(key, prefixSource...)
	key = append(key, addr.Payment[:]...)
	key = append(key, addr.Stake[:]...)
	key = append(key, ref.TxID[:]...)
	key = binary.BigEndian.AppendUint32(key, ref.Index)
	return key
}

// addrPrefix builds the key prefix covering all sources at an address.
func addrPrefix(addr types.Address) []byte {
	prefix := make([]byte, 0, len(prefixSource)+2*types.KeyHashSize)
	prefix = append(prefix, prefixSource...)
	prefix = append(prefix, addr.Payment[:]...)
	prefix = append(prefix, addr.Stake[:]...)
	return prefix
}

// Put stores a source in the snapshot.
func (s *Store) Put(src Source) error {
	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("source marshal: %w", err)
	}
	if err := s.db.Put(sourceKey(src.Address, src.Ref), data); err != nil {
		return fmt.Errorf("source put: %w", err)
	}
	return nil
}

// Delete removes a source from the snapshot.
func (s *Store) Delete(addr types.Address, ref types.Outpoint) error {
	if err := s.db.Delete(sourceKey(addr, ref)); err != nil {
		return fmt.Errorf("source delete: %w", err)
	}
	return nil
}

// ByAddress returns all sources at the given address in stable key order.
func (s *Store) ByAddress(addr types.Address) ([]Source, error) {
	var sources []Source
	err := s.db.ForEach(addrPrefix(addr), func(_, value []byte) error {
		var src Source
		if err := json.Unmarshal(value, &src); err != nil {
			return fmt.Errorf("source unmarshal: %w", err)
		}
		sources = append(sources, src)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan address: %w", err)
	}
	return sources, nil
}

// ForEach iterates over every source in the snapshot in key order.
func (s *Store) ForEach(fn func(Source) error) error {
	return s.db.ForEach(prefixSource, func(_, value []byte) error {
		var src Source
		if err := json.Unmarshal(value, &src); err != nil {
			return fmt.Errorf("source unmarshal: %w", err)
		}
		return fn(src)
	})
}

// Clear removes every source from the snapshot.
func (s *Store) Clear() error {
	var keys [][]byte
	err := s.db.ForEach(prefixSource, func(key, _ []byte) error {
		k := make([]byte, len(key))
		copy(k, key)
		keys = append(keys, k)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan snapshot: %w", err)
	}
	for _, key := range keys {
		if err := s.db.Delete(key); err != nil {
			return fmt.Errorf("delete source key: %w", err)
		}
	}
	return nil
}
