package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradedesk/internal/position"
	"tradedesk/internal/refdata"
	"tradedesk/internal/service"
)

type tableModel map[string]float64

func (m tableModel) PV01(productID string) float64 { return m[productID] }

func TestAddPositionKeepsPerUnitPV01(t *testing.T) {
	svc := NewService(tableModel{"91282CJJ1": 0.08})

	pos := position.New("91282CJJ1").Add("TRSY1", 1000000).Add("TRSY2", -250000)
	svc.AddPosition(pos)

	rec, err := svc.Get("91282CJJ1")
	require.NoError(t, err)
	assert.Equal(t, int64(750000), rec.Quantity)
	assert.Equal(t, 0.08, rec.PV01, "record carries the per-unit coefficient, not the product")
}

func TestAddPositionUnknownBondCarriesZeroRisk(t *testing.T) {
	svc := NewService(tableModel{})

	svc.AddPosition(position.New("912810TV0").Add("TRSY1", 1000000))

	rec, err := svc.Get("912810TV0")
	require.NoError(t, err)
	assert.Zero(t, rec.PV01)
}

func TestBucketedRiskSumsSectorAndSkipsMissing(t *testing.T) {
	svc := NewService(tableModel{"91282CJN2": 0.04, "91282CJM4": 0.06, "91282CJJ1": 0.08})

	svc.AddPosition(position.New("91282CJN2").Add("TRSY1", 1000000))
	svc.AddPosition(position.New("91282CJJ1").Add("TRSY1", 500000))
	// 91282CJM4 has no position yet and must not contribute.

	belly := refdata.Sector{Name: "Belly", CUSIPs: []string{"91282CJN2", "91282CJM4", "91282CJJ1"}}
	bucket := svc.BucketedRisk(belly)

	assert.Equal(t, "Belly", bucket.Sector.Name)
	assert.Equal(t, int64(1500000), bucket.Quantity)
	assert.InDelta(t, 80000.0, bucket.PV01, 1e-9)
}

func TestPositionListenerPublishesRisk(t *testing.T) {
	svc := NewService(tableModel{"91282CJJ1": 0.08})

	var seen []PV01
	svc.AddListener(service.Func[PV01](func(p PV01) { seen = append(seen, p) }))

	svc.PositionListener().OnAdd(position.New("91282CJJ1").Add("TRSY1", 100))

	require.Len(t, seen, 1)
	assert.Equal(t, 0.08, seen[0].PV01)
	assert.Equal(t, int64(100), seen[0].Quantity)
}
