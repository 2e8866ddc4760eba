// Package streaming publishes two-sided price streams decided by an
// algorithmic engine off internal prices.
package streaming

import (
	"strconv"

	"github.com/yanun0323/logs"

	"tradedesk/internal/price32"
	"tradedesk/internal/pricing"
	"tradedesk/internal/service"
)

// StreamOrder is one side of a published price stream.
type StreamOrder struct {
	Price           float64
	VisibleQuantity int64
	HiddenQuantity  int64
}

// Stream is a two-sided quote for one bond.
type Stream struct {
	ProductID string
	Bid       StreamOrder
	Offer     StreamOrder
}

func (s Stream) Key() string { return s.ProductID }

// Audit renders the stream for the historical data service.
func (s Stream) Audit() []string {
	return []string{
		s.ProductID,
		price32.Format(s.Bid.Price),
		strconv.FormatInt(s.Bid.VisibleQuantity, 10),
		strconv.FormatInt(s.Bid.HiddenQuantity, 10),
		price32.Format(s.Offer.Price),
		strconv.FormatInt(s.Offer.VisibleQuantity, 10),
		strconv.FormatInt(s.Offer.HiddenQuantity, 10),
	}
}

// AlgoStream wraps the stream decided by the algo engine.
type AlgoStream struct {
	Stream Stream
}

func (a AlgoStream) Key() string { return a.Stream.Key() }

// AlgoService turns internal prices into two-sided streams. Visible
// size alternates between 10MM and 20MM on successive prices; hidden
// size is always twice the visible size.
type AlgoService struct {
	*service.Service[AlgoStream]
	count int64
}

// NewAlgoService creates an algo streaming service.
func NewAlgoService() *AlgoService {
	return &AlgoService{Service: service.New[AlgoStream]("algo streaming")}
}

// PublishPrice builds a stream around one internal price and publishes
// it.
func (s *AlgoService) PublishPrice(p pricing.Price) {
	visible := (s.count%2 + 1) * 10_000_000
	s.count++

	half := p.BidOfferSpread / 2
	s.Update(AlgoStream{Stream: Stream{
		ProductID: p.ProductID,
		Bid: StreamOrder{
			Price:           p.Mid - half,
			VisibleQuantity: visible,
			HiddenQuantity:  2 * visible,
		},
		Offer: StreamOrder{
			Price:           p.Mid + half,
			VisibleQuantity: visible,
			HiddenQuantity:  2 * visible,
		},
	}})
}

// PriceListener streams every internal price update.
func (s *AlgoService) PriceListener() service.Listener[pricing.Price] {
	return service.Func[pricing.Price](s.PublishPrice)
}

// Service stores the latest published stream per bond.
type Service struct {
	*service.Service[Stream]
}

// NewService creates an empty streaming service.
func NewService() *Service {
	return &Service{Service: service.New[Stream]("streaming")}
}

// PublishStream publishes a stream to the market.
func (s *Service) PublishStream(st Stream) {
	logs.Infof("streaming %s bid %s / offer %s",
		st.ProductID, price32.Format(st.Bid.Price), price32.Format(st.Offer.Price))
	s.Update(st)
}

// AlgoListener publishes every stream the algo engine decides.
func (s *Service) AlgoListener() service.Listener[AlgoStream] {
	return service.Func[AlgoStream](func(as AlgoStream) {
		s.PublishStream(as.Stream)
	})
}
