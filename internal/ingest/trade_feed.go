package ingest

import (
	"bufio"
	"io"
	"strconv"

	"github.com/yanun0323/logs"

	"tradedesk/internal/price32"
	"tradedesk/internal/refdata"
	"tradedesk/internal/trading"
)

// TradeFeed replays booked trade lines of the form
// "cusip,tradeId,price,book,quantity,side" into the trade booking
// service.
type TradeFeed struct {
	ref *refdata.Provider
	svc *trading.Service
}

// NewTradeFeed creates a trade feed targeting the trade booking
// service.
func NewTradeFeed(ref *refdata.Provider, svc *trading.Service) *TradeFeed {
	return &TradeFeed{ref: ref, svc: svc}
}

// Replay parses every line of r and books the trades. It stops on the
// first malformed line.
func (f *TradeFeed) Replay(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	lineNo, booked := 0, 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields, ok := splitFields(line, 6)
		if !ok {
			return booked, badLine("trade feed", lineNo, "want cusip,tradeId,price,book,quantity,side")
		}
		if !knownBond(f.ref, fields[0]) {
			return booked, badLine("trade feed", lineNo, "unknown bond "+fields[0])
		}
		price, err := price32.Parse(fields[2])
		if err != nil {
			return booked, badPrice("trade feed", lineNo, err)
		}
		qty, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return booked, badLine("trade feed", lineNo, "bad quantity "+fields[4])
		}

		var side trading.Side
		switch fields[5] {
		case "BUY":
			side = trading.Buy
		case "SELL":
			side = trading.Sell
		default:
			return booked, badLine("trade feed", lineNo, "bad side "+fields[5])
		}

		f.svc.BookTrade(trading.Trade{
			ProductID: fields[0],
			TradeID:   fields[1],
			Price:     price,
			Book:      fields[3],
			Quantity:  qty,
			Side:      side,
		})
		booked++
	}
	if err := scanner.Err(); err != nil {
		return booked, err
	}

	logs.Infof("trade feed replayed %d trades", booked)
	return booked, nil
}
