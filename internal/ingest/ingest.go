// Package ingest replays line-based data feeds into the desk services.
// Feed files carry comma-separated fields with prices in 32nds
// notation.
package ingest

import (
	stderrors "errors"
	"strconv"
	"strings"

	"github.com/yanun0323/errors"

	"tradedesk/internal/refdata"
)

// ErrBadLine is returned when a feed line cannot be parsed.
var ErrBadLine = stderrors.New("malformed feed line")

func badLine(feed string, lineNo int, reason string) error {
	return errors.Wrap(ErrBadLine, feed+" line "+strconv.Itoa(lineNo)+": "+reason)
}

// badPrice keeps the codec sentinel in the chain so callers can match
// price32.ErrInvalidFormat.
func badPrice(feed string, lineNo int, err error) error {
	return errors.Wrap(err, feed+" line "+strconv.Itoa(lineNo))
}

func splitFields(line string, want int) ([]string, bool) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != want {
		return nil, false
	}
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields, true
}

func knownBond(ref *refdata.Provider, cusip string) bool {
	_, ok := ref.Bond(cusip)
	return ok
}
