package gui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradedesk/internal/pricing"
)

func newTestService(buf *bytes.Buffer, throttle time.Duration) (*Service, func(time.Duration)) {
	svc := NewThrottledService(buf, throttle)
	now := time.Date(2024, 11, 15, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	advance := func(d time.Duration) { now = now.Add(d) }
	return svc, advance
}

func TestFirstPriceAlwaysPublishes(t *testing.T) {
	var buf bytes.Buffer
	svc, _ := newTestService(&buf, 300*time.Millisecond)

	svc.OnPrice(pricing.Price{ProductID: "91282CJJ1", Mid: 99.5625, BidOfferSpread: 0.03125})
	require.NoError(t, svc.Flush())

	line := strings.TrimSpace(buf.String())
	assert.Equal(t, "2024-11-15 09:30:00.000,91282CJJ1,99-18,0-01", line)
}

func TestThrottleDropsUpdatesInsideWindow(t *testing.T) {
	var buf bytes.Buffer
	svc, advance := newTestService(&buf, 300*time.Millisecond)

	p := pricing.Price{ProductID: "91282CJJ1", Mid: 99.5, BidOfferSpread: 0.03125}
	svc.OnPrice(p)
	advance(100 * time.Millisecond)
	svc.OnPrice(p)
	advance(100 * time.Millisecond)
	svc.OnPrice(p)
	advance(150 * time.Millisecond)
	svc.OnPrice(p)
	require.NoError(t, svc.Flush())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2, "only the first update and the one past the window publish")
}

func TestThrottleWindowRestartsAfterPublish(t *testing.T) {
	var buf bytes.Buffer
	svc, advance := newTestService(&buf, 300*time.Millisecond)

	p := pricing.Price{ProductID: "91282CJJ1", Mid: 99.5, BidOfferSpread: 0.03125}
	svc.OnPrice(p)
	advance(300 * time.Millisecond)
	svc.OnPrice(p)
	advance(300 * time.Millisecond)
	svc.OnPrice(p)
	require.NoError(t, svc.Flush())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
}
