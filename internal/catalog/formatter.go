package catalog

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PriceFormatter renders whole-unit prices for display under a single
// storefront locale.
type PriceFormatter struct {
	symbol  string
	printer *message.Printer
}

// NewPriceFormatter returns a formatter for the given BCP 47 locale and
// currency symbol. An unparseable locale is not an error: the formatter
// keeps working and falls back to plain comma grouping.
func NewPriceFormatter(locale, symbol string) *PriceFormatter {
	f := &PriceFormatter{symbol: symbol}
	if tag, err := language.Parse(locale); err == nil {
		f.printer = message.NewPrinter(tag)
	}
	return f
}

// Format renders a price with the currency symbol and locale-aware digit
// grouping, without decimals.
func (f *PriceFormatter) Format(price int) string {
	if f.printer != nil {
		return f.printer.Sprintf("%s%d", f.symbol, price)
	}
	return f.symbol + groupThousands(price)
}

// groupThousands renders n with comma thousands separators. It backs Format
// when no locale printer is available.
func groupThousands(n int) string {
	if n < 0 {
		return "-" + groupThousands(-n)
	}
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
