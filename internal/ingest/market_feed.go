package ingest

import (
	"bufio"
	"io"
	"strconv"

	"github.com/yanun0323/logs"

	"tradedesk/internal/marketdata"
	"tradedesk/internal/price32"
	"tradedesk/internal/refdata"
)

// MarketFeed replays order book lines of the form
// "cusip,price,quantity,side" into the market data service. Lines
// accumulate per bond; once a bond has a full snapshot of bookDepth
// levels on each side, the book is published and the stacks reset.
type MarketFeed struct {
	ref *refdata.Provider
	svc *marketdata.Service

	pending map[string]*marketdata.OrderBook
	lines   map[string]int
}

// NewMarketFeed creates a market data feed targeting the market data
// service.
func NewMarketFeed(ref *refdata.Provider, svc *marketdata.Service) *MarketFeed {
	return &MarketFeed{
		ref:     ref,
		svc:     svc,
		pending: make(map[string]*marketdata.OrderBook),
		lines:   make(map[string]int),
	}
}

// Replay parses every line of r, publishing a book whenever a bond's
// snapshot completes. It stops on the first malformed line.
func (f *MarketFeed) Replay(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	lineNo, published := 0, 0
	snapshot := f.svc.BookDepth() * 2
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields, ok := splitFields(line, 4)
		if !ok {
			return published, badLine("market feed", lineNo, "want cusip,price,quantity,side")
		}
		cusip := fields[0]
		if !knownBond(f.ref, cusip) {
			return published, badLine("market feed", lineNo, "unknown bond "+cusip)
		}
		price, err := price32.Parse(fields[1])
		if err != nil {
			return published, badPrice("market feed", lineNo, err)
		}
		qty, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return published, badLine("market feed", lineNo, "bad quantity "+fields[2])
		}

		book, ok := f.pending[cusip]
		if !ok {
			book = &marketdata.OrderBook{ProductID: cusip}
			f.pending[cusip] = book
		}
		switch fields[3] {
		case "BID":
			book.Bids = append(book.Bids, marketdata.Order{Price: price, Quantity: qty, Side: marketdata.Bid})
		case "OFFER":
			book.Offers = append(book.Offers, marketdata.Order{Price: price, Quantity: qty, Side: marketdata.Offer})
		default:
			return published, badLine("market feed", lineNo, "bad side "+fields[3])
		}

		f.lines[cusip]++
		if f.lines[cusip] == snapshot {
			f.svc.Update(*book)
			delete(f.pending, cusip)
			f.lines[cusip] = 0
			published++
		}
	}
	if err := scanner.Err(); err != nil {
		return published, err
	}

	logs.Infof("market feed replayed %d book snapshots", published)
	return published, nil
}
