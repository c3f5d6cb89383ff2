// Package stubcalc детерминированная заглушка расчётного эндпоинта для разработки и тестов.
// Тарифы условные и не отражают действующее законодательство.
package stubcalc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"vehicletax/internal/domain/models"
	"vehicletax/pkg/bsdate"
)

var (
	ErrUnknownCategory = errors.New("Invalid vehicle category.")
	ErrUnknownRegType  = errors.New("Invalid registration type.")
	ErrCCRequired      = errors.New("CC/Power is required for this category.")
	ErrDateOrder       = errors.New("Next payment date must be after last paid date.")
)

type band struct {
	upTo    int64
	label   string
	tax     int64
	renewal int64
	income  int64
}

type regType struct {
	name        string
	incomeTax   bool
	renewalOnly bool
}

var regTypes = map[string]regType{
	"private":    {name: "Private"},
	"public":     {name: "Public", incomeTax: true},
	"government": {name: "Government"},
	"ambulance":  {name: "Ambulance", renewalOnly: true},
}

type category struct {
	name  string
	bands []band
}

// Полосы по объёму; upTo == 0 означает "без ограничения"
var categories = map[string]category{
	"motorcycle": {name: "Motorcycle", bands: []band{
		{upTo: 125, label: "0-125 CC", tax: 3000, renewal: 300},
		{upTo: 250, label: "126-250 CC", tax: 5000, renewal: 300},
		{label: "251+ CC", tax: 6500, renewal: 300},
	}},
	"car": {name: "Car", bands: []band{
		{upTo: 1000, label: "0-1000 CC", tax: 22000, renewal: 500, income: 1500},
		{upTo: 1500, label: "1001-1500 CC", tax: 25000, renewal: 500, income: 2000},
		{label: "1501+ CC", tax: 27000, renewal: 500, income: 3000},
	}},
	"jeep_van": {name: "Jeep / Van", bands: []band{
		{upTo: 1500, label: "0-1500 CC", tax: 25000, renewal: 500, income: 2000},
		{label: "1501+ CC", tax: 30000, renewal: 500, income: 3000},
	}},
	"electric": {name: "Electric Vehicle", bands: []band{{tax: 5000, renewal: 500}}},
	"tractor":  {name: "Tractor", bands: []band{{tax: 2000, renewal: 300}}},
}

// Request входные данные расчёта.
type Request struct {
	RegType         string
	Category        string
	CCPower         string
	LastPaidDate    string
	NextPaymentDate string
}

// Calculate рассчитывает налог за фискальные годы от года последней оплаты
// до года следующей оплаты. Если даты в одном году, платится только продление.
func Calculate(req Request, r bsdate.Range) (*models.CalculationResult, error) {
	rt, ok := regTypes[req.RegType]
	if !ok {
		return nil, ErrUnknownRegType
	}
	cat, ok := categories[req.Category]
	if !ok {
		return nil, ErrUnknownCategory
	}

	b, err := pickBand(cat, req.CCPower)
	if err != nil {
		return nil, err
	}

	if err := bsdate.Check(req.LastPaidDate, r); err != nil {
		return nil, fmt.Errorf("Last paid date: %v", err)
	}
	if err := bsdate.Check(req.NextPaymentDate, r); err != nil {
		return nil, fmt.Errorf("Next payment date: %v", err)
	}
	if !bsdate.Before(req.LastPaidDate, req.NextPaymentDate) {
		return nil, ErrDateOrder
	}

	lastYear, _, _, _ := bsdate.Parse(req.LastPaidDate)
	nextYear, _, _, _ := bsdate.Parse(req.NextPaymentDate)

	result := &models.CalculationResult{
		VehicleInfo: models.VehicleInfo{RegType: rt.name, Category: cat.name, CCRange: b.label},
	}

	sameYear := lastYear == nextYear
	lastDue := nextYear - 1
	if sameYear {
		lastDue = lastYear
		result.CaseMethod = "Renewal within the same fiscal year"
	} else if nextYear-lastYear > 1 {
		result.CaseMethod = fmt.Sprintf("Delayed payment over %d fiscal years", nextYear-lastYear)
	}

	for y := lastYear; y <= lastDue; y++ {
		fy := models.FiscalYearBreakdown{
			FiscalYear:    fmt.Sprintf("%d/%02d", y, (y+1)%100),
			RenewalFee:    decimal.NewFromInt(b.renewal),
			IsRenewalOnly: sameYear || rt.renewalOnly,
		}
		if !fy.IsRenewalOnly {
			fy.TaxAmount = decimal.NewFromInt(b.tax)
			if rt.incomeTax {
				fy.IncomeTax = decimal.NewFromInt(b.income)
			}
		}

		applyPenalty(&fy, lastDue-y)

		result.FiscalYears = append(result.FiscalYears, fy)
		result.TotalTax = result.TotalTax.Add(fy.TaxAmount)
		result.TotalRenewalFee = result.TotalRenewalFee.Add(fy.RenewalFee)
		result.TotalIncomeTax = result.TotalIncomeTax.Add(fy.IncomeTax)
		result.TotalPenalty = result.TotalPenalty.Add(fy.Penalty)
	}

	result.GrandTotal = result.TotalTax.
		Add(result.TotalRenewalFee).
		Add(result.TotalIncomeTax).
		Add(result.TotalPenalty)
	return result, nil
}

// applyPenalty начисляет штраф за годы просрочки: процент от налога и фиксированную сумму за продление.
func applyPenalty(fy *models.FiscalYearBreakdown, yearsOverdue int) {
	if yearsOverdue <= 0 {
		fy.CaseNote = "Paid on time"
		return
	}

	rate := int64(10)
	if yearsOverdue > 1 {
		rate = 20
	}
	if fy.TaxAmount.IsPositive() {
		amount := fy.TaxAmount.Mul(decimal.NewFromInt(rate)).Div(decimal.NewFromInt(100))
		fy.PenaltyDetails = append(fy.PenaltyDetails, models.PenaltyDetail{
			Type:   "Tax Penalty",
			Rate:   strconv.FormatInt(rate, 10) + "%",
			Amount: amount,
		})
		fy.Penalty = fy.Penalty.Add(amount)
	}
	if fy.RenewalFee.IsPositive() {
		amount := decimal.NewFromInt(100 * int64(min(yearsOverdue, 5)))
		fy.PenaltyDetails = append(fy.PenaltyDetails, models.PenaltyDetail{
			Type:   "Renewal Fee Penalty",
			Rate:   "Flat Rate",
			Amount: amount,
		})
		fy.Penalty = fy.Penalty.Add(amount)
	}
	fy.CaseNote = fmt.Sprintf("Overdue by %d fiscal year(s)", yearsOverdue)
}

func pickBand(cat category, ccPower string) (band, error) {
	if len(cat.bands) == 1 && cat.bands[0].upTo == 0 {
		return cat.bands[0], nil
	}

	ccPower = strings.TrimSpace(ccPower)
	if ccPower == "" {
		return band{}, ErrCCRequired
	}
	cc, err := decimal.NewFromString(ccPower)
	if err != nil || !cc.IsPositive() {
		return band{}, errors.New("CC/Power must be a positive number.")
	}

	for _, b := range cat.bands {
		if b.upTo == 0 || cc.LessThanOrEqual(decimal.NewFromInt(b.upTo)) {
			return b, nil
		}
	}
	return cat.bands[len(cat.bands)-1], nil
}
