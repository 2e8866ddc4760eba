// Package refdata carries the static reference data injected into the
// desk: the bond universe, risk coefficients, booking books, and sector
// buckets. Nothing here is hard-coded; the provider is built from
// configuration at composition time.
package refdata

import (
	"github.com/yanun0323/errors"
)

// Bond describes one tradable treasury.
type Bond struct {
	CUSIP    string
	Ticker   string
	Coupon   float64
	Maturity string
}

// Sector is a named group of bonds risk is bucketed over.
type Sector struct {
	Name   string
	CUSIPs []string
}

// Provider resolves bond metadata and pv01 coefficients by CUSIP.
type Provider struct {
	bonds   map[string]Bond
	order   []string
	pv01    map[string]float64
	books   []string
	sectors []Sector
}

// NewProvider builds a provider from an already-validated universe.
func NewProvider(bonds []Bond, pv01 map[string]float64, books []string, sectors []Sector) (*Provider, error) {
	if len(bonds) == 0 {
		return nil, errors.New("refdata: empty bond universe")
	}
	if len(books) == 0 {
		return nil, errors.New("refdata: no booking books")
	}

	byID := make(map[string]Bond, len(bonds))
	order := make([]string, 0, len(bonds))
	for _, b := range bonds {
		if b.CUSIP == "" {
			return nil, errors.New("refdata: bond with empty cusip")
		}
		if _, dup := byID[b.CUSIP]; dup {
			return nil, errors.New("refdata: duplicate cusip " + b.CUSIP)
		}
		byID[b.CUSIP] = b
		order = append(order, b.CUSIP)
	}

	for _, sector := range sectors {
		for _, id := range sector.CUSIPs {
			if _, ok := byID[id]; !ok {
				return nil, errors.New("refdata: sector " + sector.Name + " references unknown cusip " + id)
			}
		}
	}

	return &Provider{
		bonds:   byID,
		order:   order,
		pv01:    pv01,
		books:   books,
		sectors: sectors,
	}, nil
}

// Bond looks up a bond by CUSIP.
func (p *Provider) Bond(cusip string) (Bond, bool) {
	b, ok := p.bonds[cusip]
	return b, ok
}

// PV01 returns the pv01-per-unit coefficient for a bond. Unknown bonds
// carry zero risk.
func (p *Provider) PV01(cusip string) float64 {
	return p.pv01[cusip]
}

// CUSIPs returns the bond universe in configuration order.
func (p *Provider) CUSIPs() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Books returns the booking books executions rotate through.
func (p *Provider) Books() []string {
	out := make([]string, len(p.books))
	copy(out, p.books)
	return out
}

// Sectors returns the configured risk buckets.
func (p *Provider) Sectors() []Sector {
	out := make([]Sector, len(p.sectors))
	copy(out, p.sectors)
	return out
}
