// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"testing"
)

type sampleSettings struct {
	LowStockThreshold int    `json:"low_stock_threshold"`
	BackupFrequency   string `json:"backup_frequency,omitempty"`
	AutoReorder       bool   `json:"auto_reorder"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleSettings{
		LowStockThreshold: 25,
		BackupFrequency:   "daily",
		AutoReorder:       true,
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Marshal produced empty output")
	}

	var decoded sampleSettings
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	settings := sampleSettings{LowStockThreshold: 10, BackupFrequency: "weekly"}

	first, err := Marshal(settings)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(settings)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestJSONTagNamesUsedAsKeys(t *testing.T) {
	data, err := Marshal(sampleSettings{LowStockThreshold: 5})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var asMap map[string]any
	if err := Unmarshal(data, &asMap); err != nil {
		t.Fatalf("Unmarshal into map: %v", err)
	}
	if _, ok := asMap["low_stock_threshold"]; !ok {
		t.Errorf("json tag name not used as CBOR key: %v", asMap)
	}
	// omitempty zero value stays out of the encoding.
	if _, ok := asMap["backup_frequency"]; ok {
		t.Errorf("omitempty field present in encoding: %v", asMap)
	}
}

func TestEncoderDecoderStreamRoundtrip(t *testing.T) {
	values := []sampleSettings{
		{LowStockThreshold: 1, AutoReorder: true},
		{LowStockThreshold: 2, BackupFrequency: "daily"},
		{LowStockThreshold: 3},
	}

	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, value := range values {
		if err := encoder.Encode(value); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	for i, want := range values {
		var got sampleSettings
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode value %d: %v", i, err)
		}
		if got != want {
			t.Errorf("value %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var settings sampleSettings
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &settings); err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}
