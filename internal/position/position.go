// Package position aggregates booked trades into per-book and firmwide
// positions.
package position

import (
	"sort"
	"strconv"

	"tradedesk/internal/service"
	"tradedesk/internal/trading"
)

// Position holds the signed quantity of one bond per trading book.
type Position struct {
	ProductID string
	positions map[string]int64
}

// New creates an empty position for a bond.
func New(productID string) Position {
	return Position{ProductID: productID, positions: make(map[string]int64)}
}

func (p Position) Key() string { return p.ProductID }

// Quantity reports the signed quantity held in one book.
func (p Position) Quantity(book string) int64 { return p.positions[book] }

// Aggregate sums the position across all books.
func (p Position) Aggregate() int64 {
	var total int64
	for _, qty := range p.positions {
		total += qty
	}
	return total
}

// Add applies a signed quantity to one book and returns the updated
// position. The receiver is not modified.
func (p Position) Add(book string, qty int64) Position {
	merged := New(p.ProductID)
	for b, q := range p.positions {
		merged.positions[b] = q
	}
	merged.positions[book] += qty
	return merged
}

// Books lists the books carrying this position, sorted.
func (p Position) Books() []string {
	books := make([]string, 0, len(p.positions))
	for b := range p.positions {
		books = append(books, b)
	}
	sort.Strings(books)
	return books
}

// Audit renders the position for the historical data service.
func (p Position) Audit() []string {
	fields := []string{p.ProductID}
	for _, book := range p.Books() {
		fields = append(fields, book, strconv.FormatInt(p.positions[book], 10))
	}
	return append(fields, "AGGREGATE", strconv.FormatInt(p.Aggregate(), 10))
}

// Service maintains the latest position per bond.
type Service struct {
	*service.Service[Position]
}

// NewService creates an empty position service.
func NewService() *Service {
	return &Service{Service: service.New[Position]("position")}
}

// AddTrade applies one booked trade to the bond's position and
// publishes the merged result.
func (s *Service) AddTrade(t trading.Trade) {
	qty := t.Quantity
	if t.Side == trading.Sell {
		qty = -qty
	}

	merged := New(t.ProductID).Add(t.Book, qty)
	if prev, err := s.Get(t.ProductID); err == nil {
		for _, book := range prev.Books() {
			merged = merged.Add(book, prev.Quantity(book))
		}
	}
	s.Update(merged)
}

// TradeListener feeds every booked trade into the position aggregate.
func (s *Service) TradeListener() service.Listener[trading.Trade] {
	return service.Func[trading.Trade](s.AddTrade)
}
