// Package marketdata maintains per-bond order books and derives
// best-bid/offer and depth-aggregated views from them.
package marketdata

import (
	stderrors "errors"

	"github.com/yanun0323/errors"
)

// Side is the pricing side of a market data order.
type Side uint8

const (
	Bid Side = iota
	Offer
)

func (s Side) String() string {
	switch s {
	case Bid:
		return "BID"
	case Offer:
		return "OFFER"
	default:
		return "UNKNOWN"
	}
}

// Order is a single order in a book. Immutable after construction.
type Order struct {
	Price    float64
	Quantity int64
	Side     Side
}

// OrderBook holds the bid and offer stacks for one bond. Stacks keep
// feed insertion order, not price order.
type OrderBook struct {
	ProductID string
	Bids      []Order
	Offers    []Order
}

func (b OrderBook) Key() string { return b.ProductID }

// BidOffer pairs the best bid and best offer derived from a book at a
// point in time. It is recomputed on demand, never stored.
type BidOffer struct {
	Bid   Order
	Offer Order
}

// Spread is the offer price minus the bid price.
func (bo BidOffer) Spread() float64 {
	return bo.Offer.Price - bo.Bid.Price
}

// ErrEmptyBook is returned when a best-bid/offer is requested on a book
// with an empty side.
var ErrEmptyBook = stderrors.New("bid or offer stack is empty")

// BestBidOffer scans both stacks linearly for the highest bid and the
// lowest offer. Comparison is strict, so the earliest order wins ties.
func BestBidOffer(book OrderBook) (BidOffer, error) {
	if len(book.Bids) == 0 || len(book.Offers) == 0 {
		return BidOffer{}, errors.Wrap(ErrEmptyBook, book.ProductID)
	}

	best := BidOffer{Bid: book.Bids[0], Offer: book.Offers[0]}
	for _, o := range book.Bids[1:] {
		if o.Price > best.Bid.Price {
			best.Bid = o
		}
	}
	for _, o := range book.Offers[1:] {
		if o.Price < best.Offer.Price {
			best.Offer = o
		}
	}
	return best, nil
}

// AggregateDepth collapses each side of a book to one synthetic order
// per distinct price, summing quantities. The order of the aggregated
// levels is unspecified.
func AggregateDepth(book OrderBook) OrderBook {
	return OrderBook{
		ProductID: book.ProductID,
		Bids:      aggregateSide(book.Bids, Bid),
		Offers:    aggregateSide(book.Offers, Offer),
	}
}

func aggregateSide(orders []Order, side Side) []Order {
	levels := make(map[float64]int64, len(orders))
	for _, o := range orders {
		levels[o.Price] += o.Quantity
	}

	agg := make([]Order, 0, len(levels))
	for price, qty := range levels {
		agg = append(agg, Order{Price: price, Quantity: qty, Side: side})
	}
	return agg
}
