package models

import "github.com/shopspring/decimal"

// VehicleInfo сведения о транспортном средстве из ответа сервера.
type VehicleInfo struct {
	RegType  string `json:"reg_type"`
	Category string `json:"category"`
	CCRange  string `json:"cc_range"`
}

// PenaltyDetail строка детализации штрафа.
type PenaltyDetail struct {
	Type   string          `json:"type"`
	Rate   string          `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// FiscalYearBreakdown расчёт за один фискальный год.
type FiscalYearBreakdown struct {
	FiscalYear     string          `json:"fiscal_year"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	RenewalFee     decimal.Decimal `json:"renewal_fee"`
	IncomeTax      decimal.Decimal `json:"income_tax"`
	Penalty        decimal.Decimal `json:"penalty"`
	CaseNote       string          `json:"case_note,omitempty"`
	PenaltyDetails []PenaltyDetail `json:"penalty_details,omitempty"`
	IsRenewalOnly  bool            `json:"is_renewal_only"`
}

// CalculationResult результат расчёта, полученный от сервера. После получения не изменяется.
type CalculationResult struct {
	VehicleInfo     VehicleInfo           `json:"vehicle_info"`
	CaseMethod      string                `json:"case_method,omitempty"`
	FiscalYears     []FiscalYearBreakdown `json:"fiscal_years"`
	TotalTax        decimal.Decimal       `json:"total_tax"`
	TotalRenewalFee decimal.Decimal       `json:"total_renewal_fee"`
	TotalIncomeTax  decimal.Decimal       `json:"total_income_tax"`
	TotalPenalty    decimal.Decimal       `json:"total_penalty"`
	GrandTotal      decimal.Decimal       `json:"grand_total"`
}

// CalculationResponse конверт ответа расчётного эндпоинта.
type CalculationResponse struct {
	Success bool               `json:"success"`
	Result  *CalculationResult `json:"result,omitempty"`
	Error   string             `json:"error,omitempty"`
	Errors  map[string]any     `json:"errors,omitempty"`
}
