package bot

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// First numeric token in free text: digits with optional space grouping
	// and an optional comma/period decimal part of up to two digits.
	reAmount = regexp.MustCompile(`-?\d[\d ]*(?:[.,]\d{1,2})?`)

	ErrNoAmount    = errors.New("no numeric token in text")
	ErrBadAmount   = errors.New("malformed amount")
	ErrNotPositive = errors.New("amount must be positive")
)

// ParseAmount extracts the first amount from free text, accepting space as a
// grouping separator and comma or period as the decimal separator, and
// rounds it to 2 decimals. Zero and negative values are rejected.
func ParseAmount(text string) (decimal.Decimal, error) {
	m := reAmount.FindString(text)
	if m == "" {
		return decimal.Decimal{}, ErrNoAmount
	}

	s := strings.ReplaceAll(m, " ", "")
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, ErrBadAmount
	}
	if d.Sign() <= 0 {
		return decimal.Decimal{}, ErrNotPositive
	}
	return d.Round(2), nil
}
