package execution

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/yanun0323/logs"

	"tradedesk/internal/marketdata"
	"tradedesk/internal/service"
)

// crossableSpread is the widest spread the algo will cross, one 128th
// of a point.
const crossableSpread = 1.0 / 128

// AlgoService decides execution orders off order book updates. When the
// top-of-book spread tightens to the crossable threshold it lifts the
// full size of one side, alternating bid and offer so inventory stays
// flat over time.
type AlgoService struct {
	*service.Service[AlgoExecution]
	counter int64
	newID   func() string
}

// NewAlgoService creates an algo execution service with random order
// IDs.
func NewAlgoService() *AlgoService {
	return &AlgoService{
		Service: service.New[AlgoExecution]("algo execution"),
		newID:   randomOrderID,
	}
}

// OnOrderBook evaluates one book update and emits at most one
// aggressive order. Books wider than the crossable spread are ignored
// without advancing the side rotation.
func (s *AlgoService) OnOrderBook(book marketdata.OrderBook) error {
	best, err := marketdata.BestBidOffer(book)
	if err != nil {
		return err
	}
	if best.Spread() > crossableSpread {
		return nil
	}

	var side marketdata.Side
	var hit marketdata.Order
	if s.counter%2 == 0 {
		side, hit = marketdata.Bid, best.Bid
	} else {
		side, hit = marketdata.Offer, best.Offer
	}
	s.counter++

	s.Update(AlgoExecution{Order: Order{
		ProductID:       book.ProductID,
		Side:            side,
		OrderID:         s.newID(),
		Type:            Market,
		Price:           hit.Price,
		VisibleQuantity: hit.Quantity,
		HiddenQuantity:  0,
	}})
	return nil
}

// BookListener adapts the algo engine to the market data service.
// Evaluation errors are logged, never propagated upstream.
func (s *AlgoService) BookListener() service.Listener[marketdata.OrderBook] {
	return service.Func[marketdata.OrderBook](func(book marketdata.OrderBook) {
		if err := s.OnOrderBook(book); err != nil {
			logs.Errorf("algo execution skipped book: %+v", err)
		}
	})
}

func randomOrderID() string {
	return fmt.Sprintf("%d-%04d", time.Now().UnixMilli(), rand.IntN(10000))
}
