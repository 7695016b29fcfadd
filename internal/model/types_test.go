package model

import (
	"encoding/json"
	"testing"
	"time"
)

func f(v float64) *float64 { return &v }

// TestFullSnapshotMarshalJSON verifies pair entries are flattened next to
// meta and prices.
func TestFullSnapshotMarshalJSON(t *testing.T) {
	snap := FullSnapshot{
		Meta:   Meta{FxTimestamp: 1700000000000},
		Prices: map[string]float64{"USD/PLN": 3.98},
		Pairs: map[string]PairSnapshot{
			"USDCPLN": {
				Forex:     f(3.98),
				Bids:      []PriceLevel{{Price: 3.97, Volume: 120}},
				Asks:      []PriceLevel{{Price: 3.99, Volume: 80}},
				CryptoRef: f(3.97),
			},
		},
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, key := range []string{"meta", "prices", "USDCPLN"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("marshalled snapshot missing key %q", key)
		}
	}
	if len(raw) != 3 {
		t.Errorf("len(keys) = %d, want 3", len(raw))
	}
}

// TestFullSnapshotMarshalNullPrices verifies a nil prices map becomes an
// explicit null, not an omitted key.
func TestFullSnapshotMarshalNullPrices(t *testing.T) {
	snap := FullSnapshot{Pairs: map[string]PairSnapshot{}}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw["prices"]) != "null" {
		t.Errorf("prices = %s, want null", raw["prices"])
	}
}

// TestFullSnapshotUnmarshalJSON verifies the flat layout is decoded back
// into meta, prices, and per-pair entries.
func TestFullSnapshotUnmarshalJSON(t *testing.T) {
	data := []byte(`{
		"meta": {"fxTimestamp": 1700000000000},
		"prices": {"USD/PLN": 3.98, "USD/RON": 4.6},
		"USDCPLN": {"forex": 3.98, "bids": [{"price": 3.97, "volume": 10}], "asks": [], "cryptoRef": 3.97},
		"USDCRON": {"forex": null, "bids": [], "asks": [], "cryptoRef": null}
	}`)

	var snap FullSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.Meta.FxTimestamp != 1700000000000 {
		t.Errorf("FxTimestamp = %d, want 1700000000000", snap.Meta.FxTimestamp)
	}
	if len(snap.Prices) != 2 {
		t.Errorf("len(Prices) = %d, want 2", len(snap.Prices))
	}
	if len(snap.Pairs) != 2 {
		t.Errorf("len(Pairs) = %d, want 2", len(snap.Pairs))
	}

	pln, ok := snap.Pairs["USDCPLN"]
	if !ok {
		t.Fatal("missing pair USDCPLN")
	}
	if pln.Forex == nil || *pln.Forex != 3.98 {
		t.Errorf("USDCPLN.Forex = %v, want 3.98", pln.Forex)
	}
	if pln.CryptoRef == nil || *pln.CryptoRef != 3.97 {
		t.Errorf("USDCPLN.CryptoRef = %v, want 3.97", pln.CryptoRef)
	}

	ron := snap.Pairs["USDCRON"]
	if ron.Forex != nil || ron.CryptoRef != nil {
		t.Errorf("USDCRON should be all-null, got %+v", ron)
	}
}

// TestResolvedPairs verifies the persistence-eligibility count.
func TestResolvedPairs(t *testing.T) {
	tests := []struct {
		name  string
		pairs map[string]PairSnapshot
		want  int
	}{
		{
			name:  "empty",
			pairs: map[string]PairSnapshot{},
			want:  0,
		},
		{
			name: "all null",
			pairs: map[string]PairSnapshot{
				"A": {}, "B": {},
			},
			want: 0,
		},
		{
			name: "forex only counts",
			pairs: map[string]PairSnapshot{
				"A": {Forex: f(1.0)},
				"B": {},
			},
			want: 1,
		},
		{
			name: "cryptoRef only counts",
			pairs: map[string]PairSnapshot{
				"A": {CryptoRef: f(2.0)},
			},
			want: 1,
		},
		{
			name: "mixed",
			pairs: map[string]PairSnapshot{
				"A": {Forex: f(1.0), CryptoRef: f(1.1)},
				"B": {CryptoRef: f(2.0)},
				"C": {},
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := FullSnapshot{Pairs: tt.pairs}
			if got := snap.ResolvedPairs(); got != tt.want {
				t.Errorf("ResolvedPairs() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestHistoryRecordRoundTrip verifies stored rows decode with their
// snapshot payload intact.
func TestHistoryRecordRoundTrip(t *testing.T) {
	rec := HistoryRecord{
		ID:        42,
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Data: FullSnapshot{
			Meta:   Meta{FxTimestamp: 1717243200000},
			Prices: map[string]float64{"USD/CZK": 22.9},
			Pairs: map[string]PairSnapshot{
				"USDCCZK": {Forex: f(22.9), CryptoRef: f(22.85)},
			},
		},
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got HistoryRecord
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 42 {
		t.Errorf("ID = %d, want 42", got.ID)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, rec.CreatedAt)
	}
	if got.Data.Pairs["USDCCZK"].Forex == nil {
		t.Error("pair data lost in round trip")
	}
}
