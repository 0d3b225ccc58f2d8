package entity

import "time"

// ServiceCost represents a cost amount for a specific AWS service.
type ServiceCost struct {
	ServiceName string  `json:"service_name"`
	Cost        float64 `json:"cost"`
}

// MonthlyCost represents the cost for a specific month, used for trend analysis.
type MonthlyCost struct {
	Month string  `json:"month"`
	Cost  float64 `json:"cost"`
}

// BudgetInfo represents a budget with actual and forecasted spend.
type BudgetInfo struct {
	Name     string  `json:"name"`
	Limit    float64 `json:"limit"`
	Actual   float64 `json:"actual"`
	Forecast float64 `json:"forecast,omitempty"`
}

// CostReport is the cost model produced by the capstone lesson, either from
// generated numbers or from Cost Explorer when running against live data.
type CostReport struct {
	Profile          string        `json:"profile"`
	AccountID        string        `json:"account_id"`
	GeneratedAt      time.Time     `json:"generated_at"`
	PeriodName       string        `json:"period_name"`
	MonthToDate      float64       `json:"month_to_date"`
	LastMonth        float64       `json:"last_month"`
	WeeklyRunRate    float64       `json:"weekly_run_rate"`
	ForecastMonthEnd float64       `json:"forecast_month_end"`
	PercentChange    *float64      `json:"percent_change,omitempty"`
	ServiceCosts     []ServiceCost `json:"service_costs"`
	MonthlyCosts     []MonthlyCost `json:"monthly_costs"`
	Budgets          []BudgetInfo  `json:"budgets"`
	Simulated        bool          `json:"simulated"`
	Seed             int64         `json:"seed,omitempty"`
}

// TotalServiceCost soma os custos por serviço do relatório.
func (r CostReport) TotalServiceCost() float64 {
	var total float64
	for _, sc := range r.ServiceCosts {
		total += sc.Cost
	}
	return total
}
