package report

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale локаль группировки разрядов по умолчанию.
var DefaultLocale = language.MustParse("en-IN")

// CurrencyPrefix префикс денежных сумм.
const CurrencyPrefix = "Rs. "

var maxGrouped = decimal.NewFromInt(math.MaxInt64)

// MoneyFormatter форматирует суммы с группировкой разрядов выбранной локали.
type MoneyFormatter struct {
	tag language.Tag
}

// NewMoneyFormatter создает форматтер для локали tag.
func NewMoneyFormatter(tag language.Tag) MoneyFormatter {
	return MoneyFormatter{tag: tag}
}

// Format округляет сумму до 2 знаков (половина от нуля) и группирует разряды.
// Целая часть и копейки берутся из десятичного значения без перехода к float64.
// Суммы больше math.MaxInt64 выводятся без группировки.
func (f MoneyFormatter) Format(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}

	fixed := rounded.Abs().StringFixed(2)
	whole, cents := fixed[:len(fixed)-3], fixed[len(fixed)-2:]

	p := message.NewPrinter(f.tag)
	sep := decimalSeparator(p)

	intPart := rounded.Abs().Truncate(0)
	if intPart.GreaterThan(maxGrouped) {
		return sign + whole + sep + cents
	}
	return sign + p.Sprint(number.Decimal(intPart.IntPart())) + sep + cents
}

// decimalSeparator десятичный разделитель локали принтера.
func decimalSeparator(p *message.Printer) string {
	s := p.Sprint(number.Decimal(1.5, number.Scale(1)))
	return strings.TrimSuffix(strings.TrimPrefix(s, "1"), "5")
}

// FormatMoney форматирует сумму в локали по умолчанию.
func FormatMoney(amount decimal.Decimal) string {
	return NewMoneyFormatter(DefaultLocale).Format(amount)
}
