package utxostore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Meridian-tech/meridian-pay/internal/storage"
	"github.com/Meridian-tech/meridian-pay/pkg/types"
)

func testAddress(b byte) types.Address {
	var a types.Address
	a.Payment[0] = b
	a.Stake[0] = b
	return a
}

func testSource(addr types.Address, txid byte, index uint32, value types.Coin) Source {
	return Source{
		Ref:     types.Outpoint{TxID: types.Hash{txid}, Index: index},
		Address: addr,
		Value:   value,
	}
}

func TestStore_PutByAddress(t *testing.T) {
	store := NewStore(storage.NewMemory())
	addr := testAddress(1)
	other := testAddress(2)

	// Inserted out of key order; reads must come back sorted by outpoint.
	srcs := []Source{
		testSource(addr, 3, 0, 100),
		testSource(addr, 1, 1, 200),
		testSource(addr, 1, 0, 300),
		testSource(other, 9, 0, 999),
	}
	for _, src := range srcs {
		if err := store.Put(src); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	got, err := store.ByAddress(addr)
	if err != nil {
		t.Fatalf("ByAddress: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ByAddress returned %d sources, want 3", len(got))
	}
	wantOrder := []types.Outpoint{
		{TxID: types.Hash{1}, Index: 0},
		{TxID: types.Hash{1}, Index: 1},
		{TxID: types.Hash{3}, Index: 0},
	}
	for i, src := range got {
		if src.Ref != wantOrder[i] {
			t.Errorf("got[%d].Ref = %v, want %v", i, src.Ref, wantOrder[i])
		}
	}

	// Put with the same key overwrites, it never duplicates.
	updated := testSource(addr, 1, 0, 5000)
	if err := store.Put(updated); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err = store.ByAddress(addr)
	if err != nil {
		t.Fatalf("ByAddress: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("overwrite duplicated: %d sources", len(got))
	}
	if got[0].Value != 5000 {
		t.Errorf("overwritten value = %s, want 5000", got[0].Value)
	}
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(storage.NewMemory())
	addr := testAddress(1)
	src := testSource(addr, 1, 0, 100)
	if err := store.Put(src); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := store.Delete(addr, src.Ref); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err := store.ByAddress(addr)
	if err != nil {
		t.Fatalf("ByAddress: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("source survives delete: %v", got)
	}
}

func TestStore_Clear(t *testing.T) {
	store := NewStore(storage.NewMemory())
	for i := byte(1); i <= 3; i++ {
		if err := store.Put(testSource(testAddress(i), i, 0, 100)); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	count := 0
	if err := store.ForEach(func(Source) error {
		count++
		return nil
	}); err != nil {
		t.Fatalf("ForEach: %v", err)
	}
	if count != 0 {
		t.Errorf("%d sources survive Clear", count)
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(storage.NewMemory())
	addr := testAddress(1)

	snapshot := `{"sources": [
		{"ref": {"txid": "` + types.Hash{7}.String() + `", "index": 0},
		 "address": "` + addr.String() + `",
		 "value": 250000}
	]}`
	path := filepath.Join(dir, "snapshot.json")
	if err := os.WriteFile(path, []byte(snapshot), 0600); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	// Pre-existing contents are replaced, not merged.
	if err := store.Put(testSource(testAddress(9), 9, 0, 1)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	n, err := store.Import(path)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 1 {
		t.Fatalf("Import = %d, want 1", n)
	}
	if stale, err := store.ByAddress(testAddress(9)); err != nil || len(stale) != 0 {
		t.Errorf("stale sources survive import: %v, %v", stale, err)
	}
	got, err := store.ByAddress(addr)
	if err != nil {
		t.Fatalf("ByAddress: %v", err)
	}
	if len(got) != 1 || got[0].Value != 250000 {
		t.Fatalf("imported sources = %v", got)
	}

	out := filepath.Join(dir, "export.json")
	if err := store.Export(out); err != nil {
		t.Fatalf("Export: %v", err)
	}
	reloaded := NewStore(storage.NewMemory())
	n, err = reloaded.Import(out)
	if err != nil {
		t.Fatalf("Import exported file: %v", err)
	}
	if n != 1 {
		t.Errorf("reimport = %d sources, want 1", n)
	}
}

func TestImport_Rejects(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(storage.NewMemory())

	if _, err := store.Import(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file accepted")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"sources": [`), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := store.Import(bad); err == nil {
		t.Error("malformed JSON accepted")
	}

	zero := filepath.Join(dir, "zero.json")
	payload := `{"sources": [{"ref": {"txid": "` + (types.Hash{}).String() + `", "index": 0},
		"address": "` + testAddress(1).String() + `", "value": 1}]}`
	if err := os.WriteFile(zero, []byte(payload), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := store.Import(zero); err == nil {
		t.Error("zero outpoint accepted")
	}
}
