// Package gui renders a throttled stream of internal prices for the
// desk display.
package gui

import (
	"bufio"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/yanun0323/logs"

	"tradedesk/internal/price32"
	"tradedesk/internal/pricing"
	"tradedesk/internal/service"
)

const defaultThrottle = 300 * time.Millisecond

// Service writes price updates to an output stream, dropping updates
// that arrive inside the throttle window. The first update after the
// window always publishes.
type Service struct {
	mu       sync.Mutex
	out      *bufio.Writer
	throttle time.Duration
	last     time.Time
	now      func() time.Time
}

// NewService creates a GUI service writing to out with the default
// 300ms throttle.
func NewService(out io.Writer) *Service {
	return NewThrottledService(out, defaultThrottle)
}

// NewThrottledService creates a GUI service with an explicit throttle
// window.
func NewThrottledService(out io.Writer, throttle time.Duration) *Service {
	return &Service{
		out:      bufio.NewWriter(out),
		throttle: throttle,
		now:      time.Now,
	}
}

// OnPrice renders one price line unless the throttle window is still
// open.
func (s *Service) OnPrice(p pricing.Price) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !s.last.IsZero() && now.Sub(s.last) < s.throttle {
		return
	}
	s.last = now

	line := strings.Join([]string{
		now.Format("2006-01-02 15:04:05.000"),
		p.ProductID,
		price32.Format(p.Mid),
		price32.Format(p.BidOfferSpread),
	}, ",")
	if _, err := s.out.WriteString(line + "\n"); err != nil {
		logs.Errorf("writing gui price line: %+v", err)
	}
}

// Flush drains buffered output to the display.
func (s *Service) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Flush()
}

// PriceListener adapts the view to the pricing service.
func (s *Service) PriceListener() service.Listener[pricing.Price] {
	return service.Func[pricing.Price](s.OnPrice)
}
