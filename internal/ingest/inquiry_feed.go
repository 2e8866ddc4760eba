package ingest

import (
	"bufio"
	"io"
	"strconv"

	"github.com/yanun0323/logs"

	"tradedesk/internal/inquiry"
	"tradedesk/internal/price32"
	"tradedesk/internal/refdata"
	"tradedesk/internal/trading"
)

// InquiryFeed replays customer inquiry lines of the form
// "inquiryId,cusip,side,quantity,price" into the inquiry service.
// Replayed inquiries arrive in the RECEIVED state.
type InquiryFeed struct {
	ref *refdata.Provider
	svc *inquiry.Service
}

// NewInquiryFeed creates an inquiry feed targeting the inquiry service.
func NewInquiryFeed(ref *refdata.Provider, svc *inquiry.Service) *InquiryFeed {
	return &InquiryFeed{ref: ref, svc: svc}
}

// Replay parses every line of r and submits the inquiries. It stops on
// the first malformed line.
func (f *InquiryFeed) Replay(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	lineNo, submitted := 0, 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields, ok := splitFields(line, 5)
		if !ok {
			return submitted, badLine("inquiry feed", lineNo, "want inquiryId,cusip,side,quantity,price")
		}
		if !knownBond(f.ref, fields[1]) {
			return submitted, badLine("inquiry feed", lineNo, "unknown bond "+fields[1])
		}

		var side trading.Side
		switch fields[2] {
		case "BUY":
			side = trading.Buy
		case "SELL":
			side = trading.Sell
		default:
			return submitted, badLine("inquiry feed", lineNo, "bad side "+fields[2])
		}
		qty, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			return submitted, badLine("inquiry feed", lineNo, "bad quantity "+fields[3])
		}
		price, err := price32.Parse(fields[4])
		if err != nil {
			return submitted, badPrice("inquiry feed", lineNo, err)
		}

		f.svc.OnInquiry(inquiry.Inquiry{
			InquiryID: fields[0],
			ProductID: fields[1],
			Side:      side,
			Quantity:  qty,
			Price:     price,
			State:     inquiry.Received,
		})
		submitted++
	}
	if err := scanner.Err(); err != nil {
		return submitted, err
	}

	logs.Infof("inquiry feed replayed %d inquiries", submitted)
	return submitted, nil
}
