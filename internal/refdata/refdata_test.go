package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderValidatesUniverse(t *testing.T) {
	_, err := NewProvider(nil, nil, []string{"TRSY1"}, nil)
	require.Error(t, err)

	_, err = NewProvider([]Bond{{CUSIP: "91282CJJ1"}}, nil, nil, nil)
	require.Error(t, err, "books are required")

	_, err = NewProvider([]Bond{{CUSIP: "91282CJJ1"}, {CUSIP: "91282CJJ1"}}, nil, []string{"TRSY1"}, nil)
	require.Error(t, err, "duplicate cusips are rejected")

	_, err = NewProvider(
		[]Bond{{CUSIP: "91282CJJ1"}},
		nil,
		[]string{"TRSY1"},
		[]Sector{{Name: "Belly", CUSIPs: []string{"UNKNOWN"}}},
	)
	require.Error(t, err, "sectors must reference known bonds")
}

func TestProviderLookups(t *testing.T) {
	ref, err := NewProvider(
		[]Bond{
			{CUSIP: "91282CJJ1", Ticker: "US10Y", Coupon: 0.045, Maturity: "2033-11-15"},
			{CUSIP: "912810TV0", Ticker: "US30Y", Coupon: 0.0475, Maturity: "2053-11-15"},
		},
		map[string]float64{"91282CJJ1": 0.08},
		[]string{"TRSY1", "TRSY2"},
		[]Sector{{Name: "Belly", CUSIPs: []string{"91282CJJ1"}}},
	)
	require.NoError(t, err)

	bond, ok := ref.Bond("91282CJJ1")
	require.True(t, ok)
	assert.Equal(t, "US10Y", bond.Ticker)

	_, ok = ref.Bond("UNKNOWN")
	assert.False(t, ok)

	assert.Equal(t, 0.08, ref.PV01("91282CJJ1"))
	assert.Zero(t, ref.PV01("912810TV0"), "bonds without a coefficient carry zero risk")

	assert.Equal(t, []string{"91282CJJ1", "912810TV0"}, ref.CUSIPs())
	assert.Equal(t, []string{"TRSY1", "TRSY2"}, ref.Books())
}
