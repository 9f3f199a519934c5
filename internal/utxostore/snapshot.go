package utxostore

import (
	"encoding/json"
	"fmt"
	"os"
)

// snapshotFile is the JSON import format: a plain list of sources, as
// produced by a chain indexer or by hand for testing.
type snapshotFile struct {
	Sources []Source `json:"sources"`
}

// Import reads a snapshot file and replaces the store's contents with it.
// Returns the number of sources imported.
func (s *Store) Import(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read snapshot: %w", err)
	}

	var sf snapshotFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return 0, fmt.Errorf("parse snapshot: %w", err)
	}

	if err := s.Clear(); err != nil {
		return 0, err
	}
	for i, src := range sf.Sources {
		if src.Ref.TxID.IsZero() && src.Ref.Index == 0 {
			return 0, fmt.Errorf("snapshot entry %d: zero outpoint", i)
		}
		if err := s.Put(src); err != nil {
			return 0, fmt.Errorf("snapshot entry %d: %w", i, err)
		}
	}
	return len(sf.Sources), nil
}

// Export writes the store's contents to a snapshot file.
func (s *Store) Export(path string) error {
	var sf snapshotFile
	if err := s.ForEach(func(src Source) error {
		sf.Sources = append(sf.Sources, src)
		return nil
	}); err != nil {
		return err
	}
	data, err := json.MarshalIndent(&sf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
