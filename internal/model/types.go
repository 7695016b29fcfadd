package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Pair describes one forex-currency/crypto-market correspondence the
// aggregator tracks. The list of pairs is fixed at process start and never
// mutated.
type Pair struct {
	// ID keys the pair inside a FullSnapshot (e.g. "USDCPLN").
	ID string
	// ForexSymbol is the quote symbol on the forex API (e.g. "USD/PLN").
	ForexSymbol string
	// Market is the order-book symbol on the crypto API (e.g. "USDCPLN").
	Market string
	// Inverted marks markets quoted in the opposite direction: prices are
	// reciprocal-transformed and bid/ask roles are swapped.
	Inverted bool
}

// PriceLevel is one order-book level after boundary decoding.
type PriceLevel struct {
	Price  float64 `json:"price"`
	Volume float64 `json:"volume"`
}

// PairSnapshot holds the merged forex and order-book view for one pair.
// Bids and asks are best-first and hold at most four levels.
type PairSnapshot struct {
	Forex     *float64     `json:"forex"`
	Bids      []PriceLevel `json:"bids"`
	Asks      []PriceLevel `json:"asks"`
	CryptoRef *float64     `json:"cryptoRef"`
}

// Meta carries snapshot-level metadata.
type Meta struct {
	// FxTimestamp is when the prices map was obtained from the forex API,
	// in milliseconds since epoch. Zero when no forex data was available.
	FxTimestamp int64 `json:"fxTimestamp"`
}

// FullSnapshot is the atomic unit written to and read from the store.
//
// Its JSON form is flat: a "meta" key, a "prices" key, and one key per
// configured pair id. Marshalling and unmarshalling preserve that layout.
type FullSnapshot struct {
	Meta   Meta
	Prices map[string]float64
	Pairs  map[string]PairSnapshot
}

// ResolvedPairs counts pairs that carry at least one non-null value
// (forex or cryptoRef). A snapshot is eligible for persistence only when
// this is greater than zero.
func (s *FullSnapshot) ResolvedPairs() int {
	n := 0
	for _, p := range s.Pairs {
		if p.Forex != nil || p.CryptoRef != nil {
			n++
		}
	}
	return n
}

// MarshalJSON flattens the pair map into top-level keys next to "meta"
// and "prices".
func (s FullSnapshot) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Pairs)+2)
	out["meta"] = s.Meta
	if s.Prices != nil {
		out["prices"] = s.Prices
	} else {
		out["prices"] = nil
	}
	for id, pair := range s.Pairs {
		out[id] = pair
	}
	return json.Marshal(out)
}

// UnmarshalJSON reverses MarshalJSON: "meta" and "prices" are decoded into
// their fields, every other key becomes a pair entry.
func (s *FullSnapshot) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode snapshot object: %w", err)
	}

	s.Pairs = make(map[string]PairSnapshot, len(raw))
	for key, val := range raw {
		switch key {
		case "meta":
			if err := json.Unmarshal(val, &s.Meta); err != nil {
				return fmt.Errorf("decode snapshot meta: %w", err)
			}
		case "prices":
			if err := json.Unmarshal(val, &s.Prices); err != nil {
				return fmt.Errorf("decode snapshot prices: %w", err)
			}
		default:
			var pair PairSnapshot
			if err := json.Unmarshal(val, &pair); err != nil {
				return fmt.Errorf("decode pair %q: %w", key, err)
			}
			s.Pairs[key] = pair
		}
	}
	return nil
}

// HistoryRecord is one stored row of the append-only history table.
type HistoryRecord struct {
	ID        int64        `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Data      FullSnapshot `json:"data"`
}

// MinimalPair is the served field-reduction of one pair inside a history
// record. Forex and CryptoRef are explicit nulls when the source record
// lacks them; top-of-book volumes are omitted when absent.
type MinimalPair struct {
	Forex     *float64 `json:"forex"`
	CryptoRef *float64 `json:"cryptoRef"`
	Bid1Vol   *float64 `json:"bid1Vol,omitempty"`
	Ask1Vol   *float64 `json:"ask1Vol,omitempty"`
}

// MinimalRecord is the served projection of a HistoryRecord. Pairs always
// holds one entry per configured pair id, regardless of what the stored
// record contained.
type MinimalRecord struct {
	ID          int64                  `json:"id"`
	CreatedAt   time.Time              `json:"created_at"`
	FxTimestamp *int64                 `json:"fxTimestamp,omitempty"`
	Pairs       map[string]MinimalPair `json:"pairs"`
}
