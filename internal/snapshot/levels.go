package snapshot

import (
	"strconv"

	"stablearb/internal/model"
)

// maxLevels bounds how many book levels are kept per side.
const maxLevels = 4

// MapLevels converts raw [priceString, qtyString] rows into typed levels,
// keeping at most four. When inverted, each price is replaced by its
// reciprocal (the caller is responsible for also swapping which raw side
// feeds which output side). Rows that fail to parse are dropped.
func MapLevels(raw [][]string, inverted bool) []model.PriceLevel {
	if len(raw) == 0 {
		return []model.PriceLevel{}
	}
	if len(raw) > maxLevels {
		raw = raw[:maxLevels]
	}

	levels := make([]model.PriceLevel, 0, len(raw))
	for _, row := range raw {
		if len(row) < 2 {
			continue
		}
		price, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			continue
		}
		volume, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			continue
		}
		if inverted {
			if price == 0 {
				continue
			}
			price = 1 / price
		}
		levels = append(levels, model.PriceLevel{Price: price, Volume: volume})
	}
	return levels
}

// ReferencePrice derives the pair's crypto reference: the best bid price,
// falling back to the best ask price, falling back to nil. Deeper levels
// are never consulted.
func ReferencePrice(bids, asks []model.PriceLevel) *float64 {
	if len(bids) > 0 {
		p := bids[0].Price
		return &p
	}
	if len(asks) > 0 {
		p := asks[0].Price
		return &p
	}
	return nil
}
