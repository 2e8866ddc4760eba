// Package inquiry handles customer inquiries through their quote
// lifecycle.
package inquiry

import (
	"strconv"

	"tradedesk/internal/price32"
	"tradedesk/internal/service"
	"tradedesk/internal/trading"
)

// State is the lifecycle state of a customer inquiry.
type State uint8

const (
	Received State = iota
	Quoted
	Done
	Rejected
	CustomerRejected
)

func (s State) String() string {
	switch s {
	case Received:
		return "RECEIVED"
	case Quoted:
		return "QUOTED"
	case Done:
		return "DONE"
	case Rejected:
		return "REJECTED"
	case CustomerRejected:
		return "CUSTOMER_REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Inquiry is a customer request for a quote, keyed by inquiry ID.
type Inquiry struct {
	InquiryID string
	ProductID string
	Side      trading.Side
	Quantity  int64
	Price     float64
	State     State
}

func (i Inquiry) Key() string { return i.InquiryID }

// Audit renders the inquiry for the historical data service.
func (i Inquiry) Audit() []string {
	return []string{
		i.InquiryID,
		i.ProductID,
		i.Side.String(),
		strconv.FormatInt(i.Quantity, 10),
		price32.Format(i.Price),
		i.State.String(),
	}
}

// Service runs inquiries through their lifecycle. Every received
// inquiry is quoted at par; a quote always completes. Listeners observe
// each intermediate state in order.
type Service struct {
	*service.Service[Inquiry]
}

// NewService creates an empty inquiry service.
func NewService() *Service {
	return &Service{Service: service.New[Inquiry]("inquiry")}
}

// OnInquiry accepts an inquiry from the feed and starts its lifecycle.
// A freshly received inquiry is quoted at par.
func (s *Service) OnInquiry(inq Inquiry) {
	s.Update(inq)
	if inq.State == Received {
		_ = s.SendQuote(inq.InquiryID, 100.0)
	}
}

// SendQuote answers an inquiry with a price. The inquiry is published
// as QUOTED and then completed.
func (s *Service) SendQuote(inquiryID string, price float64) error {
	inq, err := s.Get(inquiryID)
	if err != nil {
		return err
	}
	inq.Price = price
	inq.State = Quoted
	s.Update(inq)

	inq.State = Done
	s.Update(inq)
	return nil
}

// RejectInquiry turns down an inquiry without quoting.
func (s *Service) RejectInquiry(inquiryID string) error {
	inq, err := s.Get(inquiryID)
	if err != nil {
		return err
	}
	inq.State = Rejected
	s.Update(inq)
	return nil
}
