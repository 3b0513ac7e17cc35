// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package localstate

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"

	"github.com/stockroomhq/stockroom/api"
	"github.com/stockroomhq/stockroom/lib/codec"
)

// snapshotMagic identifies a snapshot cache file. The trailing digit
// is the format version; bumping it invalidates older caches, which
// is always safe because the cache is advisory.
var snapshotMagic = []byte("SRSNAP1\n")

// Shared zstd coders. Construction is expensive, so both are built
// once; EncodeAll and DecodeAll are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("localstate: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("localstate: zstd decoder initialization failed: " + err.Error())
	}
}

// Snapshot is the dashboard data as last fetched from the service.
// FetchedAt dates the data so the dashboard can label it stale.
type Snapshot struct {
	FetchedAt      time.Time           `json:"fetched_at"`
	Inventory      []api.InventoryItem `json:"inventory,omitempty"`
	Orders         []api.Order         `json:"orders,omitempty"`
	Stats          *api.SystemStats    `json:"stats,omitempty"`
	LowStock       []api.InventoryItem `json:"low_stock,omitempty"`
	InventoryValue *api.InventoryValue `json:"inventory_value,omitempty"`
}

// SnapshotCache persists the last good dashboard snapshot. The file
// layout is magic, a BLAKE3 digest of the compressed payload, then
// the zstd-compressed CBOR encoding of the snapshot. The digest
// catches truncated or bit-rotted files; any mismatch reads as an
// absent cache rather than an error.
type SnapshotCache struct {
	path string
}

// NewSnapshotCache returns a cache backed by the given file. An empty
// path uses snapshot.cache under DefaultDir.
func NewSnapshotCache(path string) *SnapshotCache {
	if path == "" {
		path = filepath.Join(DefaultDir(), "snapshot.cache")
	}
	return &SnapshotCache{path: path}
}

// Path returns the file the cache reads and writes.
func (c *SnapshotCache) Path() string {
	return c.path
}

// Put stores snapshot, replacing any prior one. A zero FetchedAt is
// stamped with the current time.
func (c *SnapshotCache) Put(snapshot *Snapshot) error {
	if snapshot.FetchedAt.IsZero() {
		snapshot.FetchedAt = time.Now().UTC()
	}

	payload, err := codec.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	compressed := zstdEncoder.EncodeAll(payload, nil)
	digest := blake3.Sum256(compressed)

	data := make([]byte, 0, len(snapshotMagic)+len(digest)+len(compressed))
	data = append(data, snapshotMagic...)
	data = append(data, digest[:]...)
	data = append(data, compressed...)
	return writeFile(c.path, data)
}

// Get returns the cached snapshot, or (nil, nil) when the cache is
// absent, from a different format version, or fails its checksum.
// Invalid files are removed best-effort.
func (c *SnapshotCache) Get() (*Snapshot, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	snapshot, ok := decodeSnapshot(data)
	if !ok {
		os.Remove(c.path)
		return nil, nil
	}
	return snapshot, nil
}

// Clear removes the cached snapshot. Clearing an absent cache is not
// an error.
func (c *SnapshotCache) Clear() error {
	err := os.Remove(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func decodeSnapshot(data []byte) (*Snapshot, bool) {
	headerLen := len(snapshotMagic) + 32
	if len(data) < headerLen {
		return nil, false
	}
	if !bytes.Equal(data[:len(snapshotMagic)], snapshotMagic) {
		return nil, false
	}

	var want [32]byte
	copy(want[:], data[len(snapshotMagic):headerLen])
	compressed := data[headerLen:]
	if blake3.Sum256(compressed) != want {
		return nil, false
	}

	payload, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, false
	}

	var snapshot Snapshot
	if err := codec.Unmarshal(payload, &snapshot); err != nil {
		return nil, false
	}
	return &snapshot, true
}
