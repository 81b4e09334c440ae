package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Token patterns for statement lines. Dates are DD-MM-YYYY; amounts are
// plain decimals with optional comma grouping and exactly two decimal
// places.
var (
	datePattern   = regexp.MustCompile(`\d{2}-\d{2}-\d{4}`)
	amountPattern = regexp.MustCompile(`[\d,]+\.\d{2}`)
)

// dateLayout is the time.Parse reference layout for tokens matched by
// datePattern.
const dateLayout = "02-01-2006"

// Rules bundles the token patterns and date layout the extractor matches
// lines against. DateLayout must agree with whatever Date matches. The
// zero value is not usable; start from DefaultRules.
type Rules struct {
	Date       *regexp.Regexp
	Amount     *regexp.Regexp
	DateLayout string
}

// DefaultRules returns the patterns for the supported statement layout.
func DefaultRules() Rules {
	return Rules{
		Date:       datePattern,
		Amount:     amountPattern,
		DateLayout: dateLayout,
	}
}

// parseAmount converts a matched token like "1,234.56" to a decimal.
// Thousands separators are stripped before conversion.
func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}
