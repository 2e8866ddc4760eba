// Package execution holds the execution order model, the algorithmic
// decision engine that crosses the spread on tight books, and the
// service that places decided orders on a venue.
package execution

import (
	"strconv"

	"tradedesk/internal/marketdata"
	"tradedesk/internal/price32"
)

// OrderType describes how an execution order is worked.
type OrderType uint8

const (
	FOK OrderType = iota
	IOC
	Market
	Limit
	Stop
)

func (t OrderType) String() string {
	switch t {
	case FOK:
		return "FOK"
	case IOC:
		return "IOC"
	case Market:
		return "MARKET"
	case Limit:
		return "LIMIT"
	case Stop:
		return "STOP"
	default:
		return "UNKNOWN"
	}
}

// Venue is the market an order is sent to.
type Venue uint8

const (
	BrokerTec Venue = iota
	ESpeed
	CME
)

func (v Venue) String() string {
	switch v {
	case BrokerTec:
		return "BROKERTEC"
	case ESpeed:
		return "ESPEED"
	case CME:
		return "CME"
	default:
		return "UNKNOWN"
	}
}

// Order is an execution order placeable on a venue. Immutable value
// object.
type Order struct {
	ProductID       string
	Side            marketdata.Side
	OrderID         string
	Type            OrderType
	Price           float64
	VisibleQuantity int64
	HiddenQuantity  int64
	ParentOrderID   string
	IsChild         bool
}

func (o Order) Key() string { return o.ProductID }

// Audit renders the order for the historical data service.
func (o Order) Audit() []string {
	child := "NO"
	if o.IsChild {
		child = "YES"
	}
	return []string{
		o.ProductID,
		o.Side.String(),
		o.OrderID,
		o.Type.String(),
		price32.Format(o.Price),
		strconv.FormatInt(o.VisibleQuantity, 10),
		strconv.FormatInt(o.HiddenQuantity, 10),
		child,
	}
}

// AlgoExecution wraps the order decided by the algo engine.
type AlgoExecution struct {
	Order Order
}

func (a AlgoExecution) Key() string { return a.Order.Key() }
