// Package pricing distributes internal bond prices as a mid with a
// bid/offer spread around it.
package pricing

import (
	"tradedesk/internal/service"
)

// Price is a mid price and bid/offer spread for one bond.
type Price struct {
	ProductID      string
	Mid            float64
	BidOfferSpread float64
}

func (p Price) Key() string { return p.ProductID }

// Service stores the latest internal price per bond.
type Service struct {
	*service.Service[Price]
}

// NewService creates an empty pricing service.
func NewService() *Service {
	return &Service{Service: service.New[Price]("pricing")}
}
