// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package localstate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stockroomhq/stockroom/api"
)

func TestSettingsRoundTrip(t *testing.T) {
	store := NewSettingsStore(filepath.Join(t.TempDir(), "settings.cbor"))

	got, err := store.Get()
	if err != nil {
		t.Fatalf("Get on empty store failed: %v", err)
	}
	if got != nil {
		t.Fatalf("empty store returned %+v", got)
	}

	want := &api.SystemSettings{
		LowStockThreshold:  15,
		AutoReorder:        true,
		EmailNotifications: true,
		BackupFrequency:    "daily",
		ItemsPerPage:       25,
	}
	if err := store.Put(want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err = store.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || *got != *want {
		t.Errorf("Get = %+v, want %+v", got, want)
	}

	info, err := os.Stat(store.Path())
	if err != nil {
		t.Fatal(err)
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		t.Errorf("settings file mode = %o, want 0600", mode)
	}
}

func TestSettingsCorruptFileReadsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.cbor")
	if err := os.WriteFile(path, []byte("not cbor at all"), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewSettingsStore(path)
	got, err := store.Get()
	if err != nil {
		t.Fatalf("Get on corrupt store failed: %v", err)
	}
	if got != nil {
		t.Errorf("corrupt store returned %+v", got)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt settings file not removed")
	}
}

func testSnapshot() *Snapshot {
	return &Snapshot{
		FetchedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Inventory: []api.InventoryItem{
			{ID: 1, Name: "hex bolt", SKU: "HB-100", Quantity: 240},
			{ID: 2, Name: "washer", SKU: "WA-050", Quantity: 3},
		},
		Orders: []api.Order{
			{ID: 7, CustomerName: "Acme Corp", Status: "pending"},
		},
		Stats: &api.SystemStats{TotalProducts: 2, TotalOrders: 1},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	cache := NewSnapshotCache(filepath.Join(t.TempDir(), "snapshot.cache"))

	got, err := cache.Get()
	if err != nil {
		t.Fatalf("Get on empty cache failed: %v", err)
	}
	if got != nil {
		t.Fatalf("empty cache returned %+v", got)
	}

	want := testSnapshot()
	if err := cache.Put(want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err = cache.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil after Put")
	}
	if !got.FetchedAt.Equal(want.FetchedAt) {
		t.Errorf("FetchedAt = %v, want %v", got.FetchedAt, want.FetchedAt)
	}
	if len(got.Inventory) != 2 || got.Inventory[0].SKU != "HB-100" {
		t.Errorf("inventory mismatch: %+v", got.Inventory)
	}
	if got.Stats == nil || got.Stats.TotalProducts != 2 {
		t.Errorf("stats mismatch: %+v", got.Stats)
	}
}

func TestSnapshotPutStampsFetchedAt(t *testing.T) {
	cache := NewSnapshotCache(filepath.Join(t.TempDir(), "snapshot.cache"))

	snapshot := &Snapshot{Orders: []api.Order{{ID: 1}}}
	before := time.Now().Add(-time.Second)
	if err := cache.Put(snapshot); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := cache.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.FetchedAt.Before(before) {
		t.Errorf("FetchedAt = %v, want stamped at Put time", got.FetchedAt)
	}
}

func TestSnapshotChecksumMismatchReadsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.cache")
	cache := NewSnapshotCache(path)
	if err := cache.Put(testSnapshot()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// Flip a payload byte; the digest no longer matches.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data[len(data)-1] ^= 0xFF
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	got, err := cache.Get()
	if err != nil {
		t.Fatalf("Get on corrupt cache failed: %v", err)
	}
	if got != nil {
		t.Errorf("corrupt cache returned %+v", got)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt cache file not removed")
	}
}

func TestSnapshotWrongMagicReadsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.cache")
	if err := os.WriteFile(path, []byte("SRSNAP0\nsomething else entirely"), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := NewSnapshotCache(path).Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("old-format cache returned %+v", got)
	}
}

func TestSnapshotClearIsIdempotent(t *testing.T) {
	cache := NewSnapshotCache(filepath.Join(t.TempDir(), "snapshot.cache"))
	if err := cache.Put(testSnapshot()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if err := cache.Clear(); err != nil {
		t.Fatalf("second Clear failed: %v", err)
	}
}

func TestDefaultDirEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STOCKROOM_STATE_DIR", dir)
	if got := DefaultDir(); got != dir {
		t.Errorf("DefaultDir = %q, want %q", got, dir)
	}
}
