// Package risk values positions in PV01 terms, per bond and bucketed
// by curve sector.
package risk

import (
	"strconv"

	"github.com/shopspring/decimal"

	"tradedesk/internal/position"
	"tradedesk/internal/refdata"
	"tradedesk/internal/service"
)

// PV01 is the per-unit dollar value of a basis point for a bond,
// alongside the aggregate quantity it applies to.
type PV01 struct {
	ProductID string
	PV01      float64
	Quantity  int64
}

func (p PV01) Key() string { return p.ProductID }

// Audit renders the risk record for the historical data service.
func (p PV01) Audit() []string {
	return []string{
		p.ProductID,
		decimal.NewFromFloat(p.PV01).String(),
		strconv.FormatInt(p.Quantity, 10),
	}
}

// BucketedRisk is the summed PV01 of every position in a curve sector.
type BucketedRisk struct {
	Sector   refdata.Sector
	PV01     float64
	Quantity int64
}

// Model prices the unit PV01 of a bond.
type Model interface {
	PV01(productID string) float64
}

// Service maintains the latest PV01 per bond.
type Service struct {
	*service.Service[PV01]
	model Model
}

// NewService creates a risk service backed by the given pricing model.
func NewService(model Model) *Service {
	return &Service{
		Service: service.New[PV01]("risk"),
		model:   model,
	}
}

// AddPosition records the per-unit risk of a bond against its current
// aggregate quantity and publishes the result.
func (s *Service) AddPosition(pos position.Position) {
	s.Update(PV01{
		ProductID: pos.ProductID,
		PV01:      s.model.PV01(pos.ProductID),
		Quantity:  pos.Aggregate(),
	})
}

// BucketedRisk sums pv01 times quantity for every bond in a sector.
// Bonds with no position yet contribute nothing.
func (s *Service) BucketedRisk(sector refdata.Sector) BucketedRisk {
	total := decimal.Zero
	var qty int64
	for _, cusip := range sector.CUSIPs {
		rec, err := s.Get(cusip)
		if err != nil {
			continue
		}
		total = total.Add(decimal.NewFromFloat(rec.PV01).
			Mul(decimal.NewFromInt(rec.Quantity)))
		qty += rec.Quantity
	}
	return BucketedRisk{Sector: sector, PV01: total.InexactFloat64(), Quantity: qty}
}

// PositionListener revalues risk on every position update.
func (s *Service) PositionListener() service.Listener[position.Position] {
	return service.Func[position.Position](s.AddPosition)
}
