package notifications

import (
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// storeTimezone is where order dates are shown to customers.
const storeTimezone = "America/Sao_Paulo"

type formatter struct {
	printer *message.Printer
	loc     *time.Location
}

func newFormatter() formatter {
	loc, err := time.LoadLocation(storeTimezone)
	if err != nil {
		loc = time.FixedZone("BRT", -3*60*60)
	}
	return formatter{
		printer: message.NewPrinter(language.BrazilianPortuguese),
		loc:     loc,
	}
}

// money renders d as Brazilian reais, e.g. "R$ 1.234,50".
func (f formatter) money(d decimal.Decimal) string {
	v := d.Round(2).InexactFloat64()
	return "R$ " + f.printer.Sprint(number.Decimal(v, number.Scale(2)))
}

// date renders t as "02/01/2006 às 15:04" in the store timezone.
func (f formatter) date(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.In(f.loc).Format("02/01/2006 às 15:04")
}
