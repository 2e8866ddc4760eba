// Package app composes the desk: it builds every service, wires the
// listener graph, and replays the input feeds.
package app

import (
	"io"
	"time"

	"github.com/yanun0323/logs"

	"tradedesk/internal/execution"
	"tradedesk/internal/gui"
	"tradedesk/internal/histdata"
	"tradedesk/internal/ingest"
	"tradedesk/internal/inquiry"
	"tradedesk/internal/marketdata"
	"tradedesk/internal/position"
	"tradedesk/internal/pricing"
	"tradedesk/internal/refdata"
	"tradedesk/internal/risk"
	"tradedesk/internal/streaming"
	"tradedesk/internal/trading"
)

// Options configures a desk.
type Options struct {
	RefData     *refdata.Provider
	Store       histdata.Store
	GUIOut      io.Writer
	GUIThrottle time.Duration // 0 keeps the default
}

// Desk holds every wired service of the trading desk.
type Desk struct {
	RefData *refdata.Provider

	Pricing       *pricing.Service
	MarketData    *marketdata.Service
	AlgoStreaming *streaming.AlgoService
	Streaming     *streaming.Service
	AlgoExecution *execution.AlgoService
	Execution     *execution.Service
	TradeBooking  *trading.Service
	Position      *position.Service
	Risk          *risk.Service
	Inquiry       *inquiry.Service
	GUI           *gui.Service

	HistPositions  *histdata.Service[position.Position]
	HistRisk       *histdata.Service[risk.PV01]
	HistExecutions *histdata.Service[execution.Order]
	HistStreams    *histdata.Service[streaming.Stream]
	HistInquiries  *histdata.Service[inquiry.Inquiry]
}

// NewDesk builds every service and wires the listener graph.
func NewDesk(opts Options) *Desk {
	d := &Desk{
		RefData:       opts.RefData,
		Pricing:       pricing.NewService(),
		MarketData:    marketdata.NewService(),
		AlgoStreaming: streaming.NewAlgoService(),
		Streaming:     streaming.NewService(),
		AlgoExecution: execution.NewAlgoService(),
		Execution:     execution.NewService(),
		TradeBooking:  trading.NewService(opts.RefData.Books()),
		Position:      position.NewService(),
		Inquiry:       inquiry.NewService(),
	}
	d.Risk = risk.NewService(opts.RefData)

	if opts.GUIThrottle > 0 {
		d.GUI = gui.NewThrottledService(opts.GUIOut, opts.GUIThrottle)
	} else {
		d.GUI = gui.NewService(opts.GUIOut)
	}

	d.HistPositions = histdata.NewService[position.Position](histdata.Positions, opts.Store)
	d.HistRisk = histdata.NewService[risk.PV01](histdata.Risk, opts.Store)
	d.HistExecutions = histdata.NewService[execution.Order](histdata.Executions, opts.Store)
	d.HistStreams = histdata.NewService[streaming.Stream](histdata.Streaming, opts.Store)
	d.HistInquiries = histdata.NewService[inquiry.Inquiry](histdata.Inquiries, opts.Store)

	d.wire()
	return d
}

// wire connects the services. Registration order matters: listeners
// fire in the order they were added.
func (d *Desk) wire() {
	d.Pricing.AddListener(d.AlgoStreaming.PriceListener())
	d.Pricing.AddListener(d.GUI.PriceListener())

	d.AlgoStreaming.AddListener(d.Streaming.AlgoListener())
	d.Streaming.AddListener(d.HistStreams.Listener())

	d.MarketData.AddListener(d.AlgoExecution.BookListener())
	d.AlgoExecution.AddListener(d.Execution.AlgoListener())
	d.Execution.AddListener(d.TradeBooking.ExecutionListener())
	d.Execution.AddListener(d.HistExecutions.Listener())

	d.TradeBooking.AddListener(d.Position.TradeListener())
	d.Position.AddListener(d.Risk.PositionListener())
	d.Position.AddListener(d.HistPositions.Listener())
	d.Risk.AddListener(d.HistRisk.Listener())

	d.Inquiry.AddListener(d.HistInquiries.Listener())
}

// Feeds bundles the replayable input streams. Nil feeds are skipped.
type Feeds struct {
	Prices    io.Reader
	Trades    io.Reader
	Market    io.Reader
	Inquiries io.Reader
}

// Run replays every feed through the desk in order: internal prices,
// booked trades, market data, then customer inquiries.
func (d *Desk) Run(feeds Feeds) error {
	if feeds.Prices != nil {
		n, err := ingest.NewPriceFeed(d.RefData, d.Pricing).Replay(feeds.Prices)
		if err != nil {
			return err
		}
		logs.Infof("desk processed %d prices", n)
	}
	if feeds.Trades != nil {
		n, err := ingest.NewTradeFeed(d.RefData, d.TradeBooking).Replay(feeds.Trades)
		if err != nil {
			return err
		}
		logs.Infof("desk processed %d trades", n)
	}
	if feeds.Market != nil {
		n, err := ingest.NewMarketFeed(d.RefData, d.MarketData).Replay(feeds.Market)
		if err != nil {
			return err
		}
		logs.Infof("desk processed %d book snapshots", n)
	}
	if feeds.Inquiries != nil {
		n, err := ingest.NewInquiryFeed(d.RefData, d.Inquiry).Replay(feeds.Inquiries)
		if err != nil {
			return err
		}
		logs.Infof("desk processed %d inquiries", n)
	}

	d.logSummary()
	return d.GUI.Flush()
}

func (d *Desk) logSummary() {
	for _, sector := range d.RefData.Sectors() {
		bucket := d.Risk.BucketedRisk(sector)
		logs.Infof("sector %s pv01 %.4f on %d", sector.Name, bucket.PV01, bucket.Quantity)
	}
	logs.Info("desk replay complete")
}
