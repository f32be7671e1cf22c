package dashboard

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/ilyalavrinov/covidtracker/pkg/covidstats"
)

const (
	DateLayout  = "January 2, 2006"
	Unavailable = "n/a"
)

var printer = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators: 1234567 -> "1,234,567".
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatDecimal keeps at most two fraction digits: 1234.5 -> "1,234.5".
func FormatDecimal(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// FormatPercent renders a rate with two decimals, or Unavailable.
func FormatPercent(r covidstats.Rate) string {
	if !r.Available() {
		return Unavailable
	}
	return fmt.Sprintf("%.2f%%", r.Percent)
}

func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}
