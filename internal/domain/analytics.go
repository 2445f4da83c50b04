package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period names a relative date range resolved against the current clock.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// Valid reports whether p is a recognized named period.
func (p Period) Valid() bool {
	switch p {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return true
	}
	return false
}

// AnalyticsOptions narrows the working set for an analytics query.
// Explicit date bounds and a named period may both apply; the bounds
// narrow further.
type AnalyticsOptions struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID string
	Period     Period
}

// CategoryBreakdownEntry is the per-category slice of a spending summary.
type CategoryBreakdownEntry struct {
	CategoryID    string          `json:"categoryId"`
	CategoryName  string          `json:"categoryName"`
	CategoryColor string          `json:"categoryColor"`
	CategoryIcon  string          `json:"categoryIcon"`
	Total         decimal.Decimal `json:"total"`
	Count         int             `json:"count"`
	Percentage    decimal.Decimal `json:"percentage"`
	Average       decimal.Decimal `json:"average"`
}

// SpendingSummary aggregates a filtered expense set.
type SpendingSummary struct {
	Total             decimal.Decimal           `json:"total"`
	Count             int                       `json:"count"`
	Average           decimal.Decimal           `json:"average"`
	DailyAverage      decimal.Decimal           `json:"dailyAverage"`
	CategoryBreakdown []*CategoryBreakdownEntry `json:"categoryBreakdown"`
	TopExpenses       []*Expense                `json:"topExpenses"`
	Period            Period                    `json:"period"`
}

// DailyTrendPoint is one day's spending total.
type DailyTrendPoint struct {
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// MonthlyTrendPoint is one calendar month's spending aggregate.
type MonthlyTrendPoint struct {
	Month       string          `json:"month"`
	Year        int             `json:"year"`
	MonthNumber int             `json:"monthNumber"`
	MonthName   string          `json:"monthName"`
	Total       decimal.Decimal `json:"total"`
	Count       int             `json:"count"`
	Average     decimal.Decimal `json:"average"`
}

type BudgetStatus string

const (
	BudgetStatusActive   BudgetStatus = "active"
	BudgetStatusUpcoming BudgetStatus = "upcoming"
	BudgetStatusExpired  BudgetStatus = "expired"
	BudgetStatusInactive BudgetStatus = "inactive"
)

type BudgetHealth string

const (
	BudgetHealthGood    BudgetHealth = "good"
	BudgetHealthWarning BudgetHealth = "warning"
	BudgetHealthDanger  BudgetHealth = "danger"
)

// BudgetAnalysis is the derived view of a single budget. Spent is always
// recomputed from the expense set; the stored budget spent field is not
// trusted.
type BudgetAnalysis struct {
	BudgetID              string          `json:"budgetId"`
	CategoryID            string          `json:"categoryId"`
	CategoryName          string          `json:"categoryName"`
	BudgetAmount          decimal.Decimal `json:"budgetAmount"`
	SpentAmount           decimal.Decimal `json:"spentAmount"`
	RemainingAmount       decimal.Decimal `json:"remainingAmount"`
	UtilizationPercentage decimal.Decimal `json:"utilizationPercentage"`
	Status                BudgetStatus    `json:"status"`
	Health                BudgetHealth    `json:"health"`
	DaysRemaining         int             `json:"daysRemaining"`
	IsOverBudget          bool            `json:"isOverBudget"`
	IsNearLimit           bool            `json:"isNearLimit"`
	OverageAmount         decimal.Decimal `json:"overageAmount"`
	Period                BudgetPeriod    `json:"period"`
	StartDate             time.Time       `json:"startDate"`
	EndDate               time.Time       `json:"endDate"`
}

// BudgetProjection forecasts period-end spending from the current burn rate.
type BudgetProjection struct {
	BudgetAmount          decimal.Decimal `json:"budgetAmount"`
	CurrentSpent          decimal.Decimal `json:"currentSpent"`
	DailyAverage          decimal.Decimal `json:"dailyAverage"`
	ProjectedTotal        decimal.Decimal `json:"projectedTotal"`
	WillExceedBudget      bool            `json:"willExceedBudget"`
	ProjectedOverage      decimal.Decimal `json:"projectedOverage"`
	DaysRemaining         int             `json:"daysRemaining"`
	RecommendedDailySpend decimal.Decimal `json:"recommendedDailySpend"`
}

type ChangeDirection string

const (
	ChangeIncrease ChangeDirection = "increase"
	ChangeDecrease ChangeDirection = "decrease"
	ChangeNone     ChangeDirection = "no_change"
)

// PeriodTotals aggregates one side of a period comparison.
type PeriodTotals struct {
	StartDate time.Time       `json:"startDate"`
	EndDate   time.Time       `json:"endDate"`
	Total     decimal.Decimal `json:"total"`
	Count     int             `json:"count"`
	Average   decimal.Decimal `json:"average"`
}

// PeriodChange describes the movement between two compared periods.
// Amount may be negative; Percentage is 0 when the base total is 0.
type PeriodChange struct {
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
	Direction  ChangeDirection `json:"direction"`
}

// PeriodComparison compares two arbitrary date ranges.
type PeriodComparison struct {
	Previous *PeriodTotals `json:"previous"`
	Current  *PeriodTotals `json:"current"`
	Change   *PeriodChange `json:"change"`
}

// SavingsRecommendation is a heuristic savings opportunity.
type SavingsRecommendation struct {
	Type             string          `json:"type"`
	CategoryID       string          `json:"categoryId"`
	CategoryName     string          `json:"categoryName"`
	Description      string          `json:"description"`
	PotentialSavings decimal.Decimal `json:"potentialSavings"`
}

const (
	SavingsTypeFrequentSmall = "frequent_small_expenses"
	SavingsTypeHighCategory  = "high_category_spending"
)
