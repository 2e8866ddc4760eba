package ingest

import (
	"bufio"
	"io"

	"github.com/yanun0323/logs"

	"tradedesk/internal/price32"
	"tradedesk/internal/pricing"
	"tradedesk/internal/refdata"
)

// PriceFeed replays internal price lines of the form
// "cusip,bid,offer" into the pricing service. The published price is
// the mid with the bid/offer distance as the spread.
type PriceFeed struct {
	ref *refdata.Provider
	svc *pricing.Service
}

// NewPriceFeed creates a price feed targeting the pricing service.
func NewPriceFeed(ref *refdata.Provider, svc *pricing.Service) *PriceFeed {
	return &PriceFeed{ref: ref, svc: svc}
}

// Replay parses every line of r and publishes the prices. It stops on
// the first malformed line.
func (f *PriceFeed) Replay(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	lineNo, published := 0, 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields, ok := splitFields(line, 3)
		if !ok {
			return published, badLine("price feed", lineNo, "want cusip,bid,offer")
		}
		if !knownBond(f.ref, fields[0]) {
			return published, badLine("price feed", lineNo, "unknown bond "+fields[0])
		}
		bid, err := price32.Parse(fields[1])
		if err != nil {
			return published, badPrice("price feed", lineNo, err)
		}
		offer, err := price32.Parse(fields[2])
		if err != nil {
			return published, badPrice("price feed", lineNo, err)
		}

		f.svc.Update(pricing.Price{
			ProductID:      fields[0],
			Mid:            (bid + offer) / 2,
			BidOfferSpread: offer - bid,
		})
		published++
	}
	if err := scanner.Err(); err != nil {
		return published, err
	}

	logs.Infof("price feed replayed %d prices", published)
	return published, nil
}
