package csvfile

import (
	"errors"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var errEmptyAmount = errors.New("empty amount")

// parseAmount accepts "1234.56", "1234,56", "1.234,56", "1,234.56", "(12.50)" and
// strips currency symbols. With a single kind of separator, one occurrence is
// the decimal mark and several are thousands separators.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)

	negative := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")

	clean := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '-' || r == '.' || r == ',' {
			return r
		}

		return -1
	}, s)

	if clean == "" || clean == "-" {
		return decimal.Zero, errEmptyAmount
	}

	clean = normaliseSeparators(clean)

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, err
	}

	if negative {
		d = d.Neg()
	}

	return d, nil
}

func normaliseSeparators(s string) string {
	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")

	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}

		return strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		if strings.Count(s, ",") == 1 {
			return strings.Replace(s, ",", ".", 1)
		}

		return strings.ReplaceAll(s, ",", "")
	case dot >= 0 && strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}

	return s
}
