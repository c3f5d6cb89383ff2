// Package report превращает результат расчёта в модель отображения и печатную форму.
package report

import (
	"github.com/shopspring/decimal"

	"vehicletax/internal/domain/models"
)

// Line пара "подпись: значение".
type Line struct {
	Label string
	Value string
}

// PenaltyLine строка детализации штрафа.
type PenaltyLine struct {
	Type   string
	Rate   string
	Amount string
}

// YearBlock блок одного фискального года.
type YearBlock struct {
	FiscalYear     string
	Amounts        []Line
	CaseNote       string
	Penalties      []PenaltyLine
	RenewalOnly    bool
	PenaltyApplied bool
}

// DisplayModel готовая к отображению структура результата.
type DisplayModel struct {
	Title      string
	Vehicle    []Line
	CaseMethod string
	Years      []YearBlock
	Totals     []Line
	GrandTotal string
}

// Presenter строит DisplayModel. Не изменяет результат.
type Presenter struct {
	money MoneyFormatter
}

// NewPresenter создает presenter с заданным форматтером сумм.
func NewPresenter(money MoneyFormatter) *Presenter {
	return &Presenter{money: money}
}

// Present строит модель: сведения о ТС, метод расчёта (если есть),
// блоки лет в порядке сервера, итоги. Общий итог берётся из ответа сервера.
func (p *Presenter) Present(r *models.CalculationResult) DisplayModel {
	m := DisplayModel{Title: "Tax Calculation Results"}
	if r == nil {
		return m
	}

	ccRange := r.VehicleInfo.CCRange
	if ccRange == "" {
		ccRange = "N/A"
	}
	m.Vehicle = []Line{
		{"Type", r.VehicleInfo.RegType},
		{"Category", r.VehicleInfo.Category},
		{"CC Range", ccRange},
	}
	m.CaseMethod = r.CaseMethod

	for _, y := range r.FiscalYears {
		block := YearBlock{
			FiscalYear: y.FiscalYear,
			Amounts: []Line{
				{"Vehicle Tax", p.amount(y.TaxAmount)},
				{"Renewal Fee", p.amount(y.RenewalFee)},
				{"Income Tax", p.amount(y.IncomeTax)},
				{"Penalty", p.amount(y.Penalty)},
			},
			CaseNote:       y.CaseNote,
			RenewalOnly:    y.IsRenewalOnly,
			PenaltyApplied: y.Penalty.GreaterThan(decimal.Zero),
		}
		for _, pd := range y.PenaltyDetails {
			block.Penalties = append(block.Penalties, PenaltyLine{
				Type:   pd.Type,
				Rate:   pd.Rate,
				Amount: p.amount(pd.Amount),
			})
		}
		m.Years = append(m.Years, block)
	}

	m.Totals = []Line{
		{"Total Vehicle Tax", p.amount(r.TotalTax)},
		{"Total Renewal Fee", p.amount(r.TotalRenewalFee)},
		{"Total Income Tax", p.amount(r.TotalIncomeTax)},
		{"Total Penalty", p.amount(r.TotalPenalty)},
	}
	m.GrandTotal = p.amount(r.GrandTotal)
	return m
}

func (p *Presenter) amount(d decimal.Decimal) string {
	return CurrencyPrefix + p.money.Format(d)
}
