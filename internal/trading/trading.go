// Package trading books trades against trading books and feeds the
// position service.
package trading

import (
	"strconv"

	"tradedesk/internal/execution"
	"tradedesk/internal/marketdata"
	"tradedesk/internal/price32"
	"tradedesk/internal/service"
)

// Side is the direction of a booked trade.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Trade is a single booked trade, keyed by trade ID.
type Trade struct {
	ProductID string
	TradeID   string
	Price     float64
	Book      string
	Quantity  int64
	Side      Side
}

func (t Trade) Key() string { return t.TradeID }

// Audit renders the trade for the historical data service.
func (t Trade) Audit() []string {
	return []string{
		t.ProductID,
		t.TradeID,
		price32.Format(t.Price),
		t.Book,
		strconv.FormatInt(t.Quantity, 10),
		t.Side.String(),
	}
}

// Service stores booked trades keyed by trade ID.
type Service struct {
	*service.Service[Trade]
	books []string
	count int64
}

// NewService creates a trade booking service that rotates executions
// across the given books.
func NewService(books []string) *Service {
	return &Service{
		Service: service.New[Trade]("trade booking"),
		books:   append([]string(nil), books...),
	}
}

// BookTrade books a trade and fans it out to listeners.
func (s *Service) BookTrade(t Trade) {
	s.Update(t)
}

// ExecutionListener books every executed order as a trade. A bid-side
// execution sold into the market, so it books as a SELL; an offer-side
// execution books as a BUY. Full size including hidden quantity is
// booked, and executions rotate round-robin across the books.
func (s *Service) ExecutionListener() service.Listener[execution.Order] {
	return service.Func[execution.Order](func(ord execution.Order) {
		side := Buy
		if ord.Side == marketdata.Bid {
			side = Sell
		}
		s.count++
		s.BookTrade(Trade{
			ProductID: ord.ProductID,
			TradeID:   ord.OrderID,
			Price:     ord.Price,
			Book:      s.books[s.count%int64(len(s.books))],
			Quantity:  ord.VisibleQuantity + ord.HiddenQuantity,
			Side:      side,
		})
	})
}
