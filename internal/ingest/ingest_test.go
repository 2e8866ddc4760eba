package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradedesk/internal/inquiry"
	"tradedesk/internal/marketdata"
	"tradedesk/internal/price32"
	"tradedesk/internal/pricing"
	"tradedesk/internal/refdata"
	"tradedesk/internal/trading"
)

func testRefData(t *testing.T) *refdata.Provider {
	t.Helper()
	ref, err := refdata.NewProvider(
		[]refdata.Bond{
			{CUSIP: "91282CJJ1", Ticker: "US10Y"},
			{CUSIP: "912810TV0", Ticker: "US30Y"},
		},
		map[string]float64{"91282CJJ1": 0.08, "912810TV0": 0.20},
		[]string{"TRSY1", "TRSY2", "TRSY3"},
		nil,
	)
	require.NoError(t, err)
	return ref
}

func TestPriceFeedPublishesMidAndSpread(t *testing.T) {
	svc := pricing.NewService()
	feed := NewPriceFeed(testRefData(t), svc)

	n, err := feed.Replay(strings.NewReader("91282CJJ1,99-16,99-17\n\n912810TV0,100-00,100-00+\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ten, err := svc.Get("91282CJJ1")
	require.NoError(t, err)
	assert.InDelta(t, 99.515625, ten.Mid, 1e-12)
	assert.InDelta(t, 0.03125, ten.BidOfferSpread, 1e-12)

	thirty, err := svc.Get("912810TV0")
	require.NoError(t, err)
	assert.InDelta(t, 100.0078125, thirty.Mid, 1e-12)
}

func TestPriceFeedRejectsUnknownBond(t *testing.T) {
	feed := NewPriceFeed(testRefData(t), pricing.NewService())

	_, err := feed.Replay(strings.NewReader("XXXXXXXXX,99-16,99-17\n"))
	require.ErrorIs(t, err, ErrBadLine)
}

func TestPriceFeedRejectsMalformedPrice(t *testing.T) {
	feed := NewPriceFeed(testRefData(t), pricing.NewService())

	n, err := feed.Replay(strings.NewReader("91282CJJ1,99-16,99-32\n"))
	require.ErrorIs(t, err, price32.ErrInvalidFormat)
	assert.Zero(t, n)
}

func TestTradeFeedBooksTrades(t *testing.T) {
	svc := trading.NewService([]string{"TRSY1", "TRSY2", "TRSY3"})
	feed := NewTradeFeed(testRefData(t), svc)

	n, err := feed.Replay(strings.NewReader(
		"91282CJJ1,T1,99-16,TRSY1,1000000,BUY\n" +
			"91282CJJ1,T2,99-17,TRSY2,500000,SELL\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	tr, err := svc.Get("T2")
	require.NoError(t, err)
	assert.Equal(t, trading.Sell, tr.Side)
	assert.Equal(t, "TRSY2", tr.Book)
	assert.Equal(t, int64(500000), tr.Quantity)
}

func TestTradeFeedRejectsBadSide(t *testing.T) {
	feed := NewTradeFeed(testRefData(t), trading.NewService([]string{"TRSY1"}))

	_, err := feed.Replay(strings.NewReader("91282CJJ1,T1,99-16,TRSY1,1000000,HOLD\n"))
	require.ErrorIs(t, err, ErrBadLine)
}

func TestMarketFeedPublishesCompleteSnapshots(t *testing.T) {
	svc := marketdata.NewService()
	feed := NewMarketFeed(testRefData(t), svc)

	var lines []string
	for i := 0; i < svc.BookDepth(); i++ {
		lines = append(lines, "91282CJJ1,99-16,1000000,BID")
	}
	for i := 0; i < svc.BookDepth(); i++ {
		lines = append(lines, "91282CJJ1,99-17,1000000,OFFER")
	}

	n, err := feed.Replay(strings.NewReader(strings.Join(lines[:9], "\n") + "\n"))
	require.NoError(t, err)
	assert.Zero(t, n, "incomplete snapshot must not publish")

	// The feed keeps the partial stacks across reads; the last line
	// completes the snapshot.
	n, err = feed.Replay(strings.NewReader(lines[9] + "\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	book, err := svc.Get("91282CJJ1")
	require.NoError(t, err)
	assert.Len(t, book.Bids, svc.BookDepth())
	assert.Len(t, book.Offers, svc.BookDepth())
}

func TestMarketFeedInterleavesProducts(t *testing.T) {
	svc := marketdata.NewService()
	feed := NewMarketFeed(testRefData(t), svc)

	var lines []string
	for i := 0; i < svc.BookDepth(); i++ {
		lines = append(lines,
			"91282CJJ1,99-16,1000000,BID",
			"912810TV0,100-00,2000000,BID")
	}
	for i := 0; i < svc.BookDepth(); i++ {
		lines = append(lines,
			"91282CJJ1,99-17,1000000,OFFER",
			"912810TV0,100-01,2000000,OFFER")
	}

	n, err := feed.Replay(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestInquiryFeedSubmitsInquiries(t *testing.T) {
	svc := inquiry.NewService()
	feed := NewInquiryFeed(testRefData(t), svc)

	n, err := feed.Replay(strings.NewReader("INQ1,91282CJJ1,BUY,1000000,99-16\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	inq, err := svc.Get("INQ1")
	require.NoError(t, err)
	assert.Equal(t, inquiry.Done, inq.State, "received inquiries complete their lifecycle")
	assert.Equal(t, 100.0, inq.Price)
}
