package report

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"vehicletax/internal/domain/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleResult() *models.CalculationResult {
	return &models.CalculationResult{
		VehicleInfo: models.VehicleInfo{RegType: "Private", Category: "Motorcycle"},
		CaseMethod:  "Delayed renewal across fiscal years",
		FiscalYears: []models.FiscalYearBreakdown{
			{
				FiscalYear: "2080/81",
				TaxAmount:  dec("3000"),
				RenewalFee: dec("300"),
				Penalty:    dec("0"),
			},
			{
				FiscalYear:    "2078/79",
				RenewalFee:    dec("300"),
				Penalty:       dec("150.5"),
				CaseNote:      "Renewal only <late>",
				IsRenewalOnly: true,
				PenaltyDetails: []models.PenaltyDetail{
					{Type: "Late renewal", Rate: "5%", Amount: dec("150.5")},
				},
			},
		},
		TotalTax:        dec("3000"),
		TotalRenewalFee: dec("600"),
		TotalPenalty:    dec("150.5"),
		// Итог сервера не пересчитывается на клиенте
		GrandTotal: dec("9999.99"),
	}
}

func TestFormatMoney(t *testing.T) {
	f := NewMoneyFormatter(language.English)

	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"1234567.5", "1,234,567.50"},
		{"0.125", "0.13"},
		{"2.345", "2.35"},
		{"-1.005", "-1.01"},
		{"999.994", "999.99"},
		{"90071992547409.93", "90,071,992,547,409.93"},
		{"123456789012345678.005", "123,456,789,012,345,678.01"},
		{"-0.001", "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Format(dec(tt.in)))
		})
	}
}

func TestFormatMoneyDefaultLocale(t *testing.T) {
	assert.Equal(t, "12,34,567.50", FormatMoney(dec("1234567.5")))
	assert.Equal(t, "9,00,71,99,25,47,409.93", FormatMoney(dec("90071992547409.93")))
	assert.Equal(t, "999.00", FormatMoney(dec("999")))
}

func TestFormatMoneyLocaleSeparators(t *testing.T) {
	assert.Equal(t, "1.234.567,50", NewMoneyFormatter(language.German).Format(dec("1234567.5")))
}

func TestPresent(t *testing.T) {
	p := NewPresenter(NewMoneyFormatter(language.English))
	m := p.Present(sampleResult())

	assert.Equal(t, []Line{
		{"Type", "Private"},
		{"Category", "Motorcycle"},
		{"CC Range", "N/A"},
	}, m.Vehicle)
	assert.Equal(t, "Delayed renewal across fiscal years", m.CaseMethod)

	require.Len(t, m.Years, 2)
	assert.Equal(t, "2080/81", m.Years[0].FiscalYear, "server order preserved")
	assert.Equal(t, "2078/79", m.Years[1].FiscalYear)

	assert.False(t, m.Years[0].RenewalOnly)
	assert.False(t, m.Years[0].PenaltyApplied)
	assert.True(t, m.Years[1].RenewalOnly)
	assert.True(t, m.Years[1].PenaltyApplied)

	assert.Equal(t, Line{"Vehicle Tax", "Rs. 3,000.00"}, m.Years[0].Amounts[0])
	require.Len(t, m.Years[1].Penalties, 1)
	assert.Equal(t, PenaltyLine{Type: "Late renewal", Rate: "5%", Amount: "Rs. 150.50"}, m.Years[1].Penalties[0])

	assert.Equal(t, "Rs. 9,999.99", m.GrandTotal)
	require.Len(t, m.Totals, 4)
	assert.Equal(t, Line{"Total Income Tax", "Rs. 0.00"}, m.Totals[2])
}

func TestPresentWithoutCaseMethod(t *testing.T) {
	r := sampleResult()
	r.CaseMethod = ""
	r.VehicleInfo.CCRange = "126-250 CC"

	m := NewPresenter(NewMoneyFormatter(language.English)).Present(r)
	assert.Empty(t, m.CaseMethod)
	assert.Equal(t, "126-250 CC", m.Vehicle[2].Value)
}

func TestPresentDoesNotMutateResult(t *testing.T) {
	r := sampleResult()
	before := r.FiscalYears[1].Penalty.String()

	NewPresenter(NewMoneyFormatter(language.English)).Present(r)
	assert.Equal(t, before, r.FiscalYears[1].Penalty.String())
	assert.Len(t, r.FiscalYears, 2)
}

func TestFormatText(t *testing.T) {
	m := NewPresenter(NewMoneyFormatter(language.English)).Present(sampleResult())
	text := FormatText(m)

	assert.Contains(t, text, "Type    : Private")
	assert.Contains(t, text, "2078/79 [renewal only] [penalty]")
	assert.Contains(t, text, "- Late renewal (5%): Rs. 150.50")
	assert.Contains(t, text, "Grand Total      : Rs. 9,999.99")
	assert.Less(t, strings.Index(text, "2080/81"), strings.Index(text, "2078/79"))
}

func TestPrintView(t *testing.T) {
	m := NewPresenter(NewMoneyFormatter(language.English)).Present(sampleResult())
	printedAt := time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC)

	out, err := PrintView(m, printedAt)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<title>Vehicle Tax Results</title>")
	assert.Contains(t, html, "Date: 2024-05-17")
	assert.Contains(t, html, "Grand Total: Rs. 9,999.99")
	assert.Contains(t, html, "Renewal only &lt;late&gt;", "values are escaped")
	assert.NotContains(t, html, "<late>")

	assert.Equal(t, "vehicle_tax_20240517.html", PrintFileName(printedAt))
}
