// Package price32 converts US treasury prices between their fractional
// text notation and float64. The notation is "W-F" or "W-F+": W whole
// points, F a two-digit count of 32nds (00-31), and a trailing '+' an
// extra half 32nd (1/64). Only values on the 1/64 grid round-trip
// exactly; anything finer is a supported-precision boundary, not a bug.
package price32

import (
	stderrors "errors"
	"math"
	"strconv"
	"strings"

	"github.com/yanun0323/errors"
)

// ErrInvalidFormat is returned when an input string is not valid 32nds
// notation.
var ErrInvalidFormat = stderrors.New("invalid 32nds price")

// Parse decodes a 32nds price string into a float64.
func Parse(s string) (float64, error) {
	raw := strings.TrimSpace(s)

	body, half := strings.CutSuffix(raw, "+")
	whole, frac, ok := strings.Cut(body, "-")
	if !ok || whole == "" || len(frac) != 2 {
		return 0, errors.Wrap(ErrInvalidFormat, raw)
	}

	w, err := strconv.Atoi(whole)
	if err != nil || w < 0 {
		return 0, errors.Wrap(ErrInvalidFormat, raw)
	}
	f, err := strconv.Atoi(frac)
	if err != nil || f < 0 || f > 31 {
		return 0, errors.Wrap(ErrInvalidFormat, raw)
	}

	price := float64(w) + float64(f)/32.0
	if half {
		price += 4.0 / 256.0
	}
	return price, nil
}

// Format encodes a price in 32nds notation. The 32nds field is
// zero-padded to two digits and a remaining half 32nd is marked with a
// trailing '+'.
func Format(price float64) string {
	whole := int(math.Floor(price))
	frac := (price - float64(whole)) * 32.0
	t32 := int(frac)
	half := int((frac - float64(t32)) * 2)

	var b strings.Builder
	b.WriteString(strconv.Itoa(whole))
	b.WriteByte('-')
	if t32 < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(t32))
	if half == 1 {
		b.WriteByte('+')
	}
	return b.String()
}
