package marketdata

import (
	"tradedesk/internal/service"
)

const defaultBookDepth = 5

// Service stores the latest full order book per bond. Every update
// replaces the whole book; stacks are never mutated in place.
type Service struct {
	*service.Service[OrderBook]
	bookDepth int
}

// NewService creates a market data service with the default book depth.
func NewService() *Service {
	return &Service{
		Service:   service.New[OrderBook]("marketdata"),
		bookDepth: defaultBookDepth,
	}
}

// BookDepth reports how many price levels each side of a feed snapshot
// carries.
func (s *Service) BookDepth() int { return s.bookDepth }

// BestBidOffer derives the current best bid and offer for a bond.
func (s *Service) BestBidOffer(productID string) (BidOffer, error) {
	book, err := s.Get(productID)
	if err != nil {
		return BidOffer{}, err
	}
	return BestBidOffer(book)
}

// AggregateDepth returns the stored book collapsed to one order per
// price level on each side.
func (s *Service) AggregateDepth(productID string) (OrderBook, error) {
	book, err := s.Get(productID)
	if err != nil {
		return OrderBook{}, err
	}
	return AggregateDepth(book), nil
}
