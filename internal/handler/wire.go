package handler

import (
	"time"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/util"
	"github.com/shopspring/decimal"
)

// Response DTOs. Internal math runs at full decimal precision; every money
// value and percentage is rendered with two decimals at this boundary only.
// Calendar dates go out as YYYY-MM-DD, matching the request format.

// ExpenseResponse is the wire form of an expense.
type ExpenseResponse struct {
	ID          string    `json:"id"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	CategoryID  string    `json:"categoryId"`
	ReceiptPath string    `json:"receiptPath,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toExpenseResponse(expense *domain.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          expense.ID,
		Amount:      expense.Amount.StringFixed(2),
		Description: expense.Description,
		Date:        util.FormatDate(expense.Date),
		CategoryID:  expense.CategoryID,
		ReceiptPath: expense.ReceiptPath,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}

func toExpenseResponses(expenses []*domain.Expense) []*ExpenseResponse {
	out := make([]*ExpenseResponse, 0, len(expenses))
	for _, expense := range expenses {
		out = append(out, toExpenseResponse(expense))
	}
	return out
}

// BudgetResponse is the wire form of a budget.
type BudgetResponse struct {
	ID         string              `json:"id"`
	CategoryID string              `json:"categoryId"`
	Amount     string              `json:"amount"`
	Period     domain.BudgetPeriod `json:"period"`
	StartDate  string              `json:"startDate"`
	EndDate    string              `json:"endDate"`
	Spent      string              `json:"spent"`
	IsActive   bool                `json:"isActive"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

func toBudgetResponse(budget *domain.Budget) *BudgetResponse {
	return &BudgetResponse{
		ID:         budget.ID,
		CategoryID: budget.CategoryID,
		Amount:     budget.Amount.StringFixed(2),
		Period:     budget.Period,
		StartDate:  util.FormatDate(budget.StartDate),
		EndDate:    util.FormatDate(budget.EndDate),
		Spent:      budget.Spent.StringFixed(2),
		IsActive:   budget.IsActive,
		CreatedAt:  budget.CreatedAt,
		UpdatedAt:  budget.UpdatedAt,
	}
}

func toBudgetResponses(budgets []*domain.Budget) []*BudgetResponse {
	out := make([]*BudgetResponse, 0, len(budgets))
	for _, budget := range budgets {
		out = append(out, toBudgetResponse(budget))
	}
	return out
}

// CategoryBreakdownResponse is the wire form of one breakdown entry.
type CategoryBreakdownResponse struct {
	CategoryID    string `json:"categoryId"`
	CategoryName  string `json:"categoryName"`
	CategoryColor string `json:"categoryColor"`
	CategoryIcon  string `json:"categoryIcon"`
	Total         string `json:"total"`
	Count         int    `json:"count"`
	Percentage    string `json:"percentage"`
	Average       string `json:"average"`
}

func toBreakdownResponses(entries []*domain.CategoryBreakdownEntry) []*CategoryBreakdownResponse {
	out := make([]*CategoryBreakdownResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, &CategoryBreakdownResponse{
			CategoryID:    entry.CategoryID,
			CategoryName:  entry.CategoryName,
			CategoryColor: entry.CategoryColor,
			CategoryIcon:  entry.CategoryIcon,
			Total:         entry.Total.StringFixed(2),
			Count:         entry.Count,
			Percentage:    entry.Percentage.StringFixed(2),
			Average:       entry.Average.StringFixed(2),
		})
	}
	return out
}

// SummaryResponse is the wire form of a spending summary.
type SummaryResponse struct {
	Total             string                       `json:"total"`
	Count             int                          `json:"count"`
	Average           string                       `json:"average"`
	DailyAverage      string                       `json:"dailyAverage"`
	CategoryBreakdown []*CategoryBreakdownResponse `json:"categoryBreakdown"`
	TopExpenses       []*ExpenseResponse           `json:"topExpenses"`
	Period            domain.Period                `json:"period"`
}

func toSummaryResponse(summary *domain.SpendingSummary) *SummaryResponse {
	return &SummaryResponse{
		Total:             summary.Total.StringFixed(2),
		Count:             summary.Count,
		Average:           summary.Average.StringFixed(2),
		DailyAverage:      summary.DailyAverage.StringFixed(2),
		CategoryBreakdown: toBreakdownResponses(summary.CategoryBreakdown),
		TopExpenses:       toExpenseResponses(summary.TopExpenses),
		Period:            summary.Period,
	}
}

// DailyTrendResponse is the wire form of one day's total.
type DailyTrendResponse struct {
	Date  string `json:"date"`
	Total string `json:"total"`
}

func toDailyTrendResponses(points []*domain.DailyTrendPoint) []*DailyTrendResponse {
	out := make([]*DailyTrendResponse, 0, len(points))
	for _, point := range points {
		out = append(out, &DailyTrendResponse{
			Date:  util.FormatDate(point.Date),
			Total: point.Total.StringFixed(2),
		})
	}
	return out
}

// MonthlyTrendResponse is the wire form of one month's aggregate.
type MonthlyTrendResponse struct {
	Month       string `json:"month"`
	Year        int    `json:"year"`
	MonthNumber int    `json:"monthNumber"`
	MonthName   string `json:"monthName"`
	Total       string `json:"total"`
	Count       int    `json:"count"`
	Average     string `json:"average"`
}

func toMonthlyTrendResponses(points []*domain.MonthlyTrendPoint) []*MonthlyTrendResponse {
	out := make([]*MonthlyTrendResponse, 0, len(points))
	for _, point := range points {
		out = append(out, &MonthlyTrendResponse{
			Month:       point.Month,
			Year:        point.Year,
			MonthNumber: point.MonthNumber,
			MonthName:   point.MonthName,
			Total:       point.Total.StringFixed(2),
			Count:       point.Count,
			Average:     point.Average.StringFixed(2),
		})
	}
	return out
}

// BudgetAnalysisResponse is the wire form of a derived budget view.
type BudgetAnalysisResponse struct {
	BudgetID              string              `json:"budgetId"`
	CategoryID            string              `json:"categoryId"`
	CategoryName          string              `json:"categoryName"`
	BudgetAmount          string              `json:"budgetAmount"`
	SpentAmount           string              `json:"spentAmount"`
	RemainingAmount       string              `json:"remainingAmount"`
	UtilizationPercentage string              `json:"utilizationPercentage"`
	Status                domain.BudgetStatus `json:"status"`
	Health                domain.BudgetHealth `json:"health"`
	DaysRemaining         int                 `json:"daysRemaining"`
	IsOverBudget          bool                `json:"isOverBudget"`
	IsNearLimit           bool                `json:"isNearLimit"`
	OverageAmount         string              `json:"overageAmount"`
	Period                domain.BudgetPeriod `json:"period"`
	StartDate             string              `json:"startDate"`
	EndDate               string              `json:"endDate"`
}

func toBudgetAnalysisResponse(analysis *domain.BudgetAnalysis) *BudgetAnalysisResponse {
	return &BudgetAnalysisResponse{
		BudgetID:              analysis.BudgetID,
		CategoryID:            analysis.CategoryID,
		CategoryName:          analysis.CategoryName,
		BudgetAmount:          analysis.BudgetAmount.StringFixed(2),
		SpentAmount:           analysis.SpentAmount.StringFixed(2),
		RemainingAmount:       analysis.RemainingAmount.StringFixed(2),
		UtilizationPercentage: analysis.UtilizationPercentage.StringFixed(2),
		Status:                analysis.Status,
		Health:                analysis.Health,
		DaysRemaining:         analysis.DaysRemaining,
		IsOverBudget:          analysis.IsOverBudget,
		IsNearLimit:           analysis.IsNearLimit,
		OverageAmount:         analysis.OverageAmount.StringFixed(2),
		Period:                analysis.Period,
		StartDate:             util.FormatDate(analysis.StartDate),
		EndDate:               util.FormatDate(analysis.EndDate),
	}
}

func toBudgetAnalysisResponses(analyses []*domain.BudgetAnalysis) []*BudgetAnalysisResponse {
	out := make([]*BudgetAnalysisResponse, 0, len(analyses))
	for _, analysis := range analyses {
		out = append(out, toBudgetAnalysisResponse(analysis))
	}
	return out
}

// BudgetProjectionResponse is the wire form of a burn-rate projection.
type BudgetProjectionResponse struct {
	BudgetAmount          string `json:"budgetAmount"`
	CurrentSpent          string `json:"currentSpent"`
	DailyAverage          string `json:"dailyAverage"`
	ProjectedTotal        string `json:"projectedTotal"`
	WillExceedBudget      bool   `json:"willExceedBudget"`
	ProjectedOverage      string `json:"projectedOverage"`
	DaysRemaining         int    `json:"daysRemaining"`
	RecommendedDailySpend string `json:"recommendedDailySpend"`
}

func toBudgetProjectionResponse(projection *domain.BudgetProjection) *BudgetProjectionResponse {
	return &BudgetProjectionResponse{
		BudgetAmount:          projection.BudgetAmount.StringFixed(2),
		CurrentSpent:          projection.CurrentSpent.StringFixed(2),
		DailyAverage:          projection.DailyAverage.StringFixed(2),
		ProjectedTotal:        projection.ProjectedTotal.StringFixed(2),
		WillExceedBudget:      projection.WillExceedBudget,
		ProjectedOverage:      projection.ProjectedOverage.StringFixed(2),
		DaysRemaining:         projection.DaysRemaining,
		RecommendedDailySpend: projection.RecommendedDailySpend.StringFixed(2),
	}
}

// InsightResponse is the wire form of a generated insight.
type InsightResponse struct {
	ID          string                 `json:"id"`
	Type        domain.InsightType     `json:"type"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Priority    domain.InsightPriority `json:"priority"`
	Actionable  bool                   `json:"actionable"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

func toInsightResponses(insights []*domain.Insight) []*InsightResponse {
	out := make([]*InsightResponse, 0, len(insights))
	for _, insight := range insights {
		out = append(out, &InsightResponse{
			ID:          insight.ID,
			Type:        insight.Type,
			Title:       insight.Title,
			Description: insight.Description,
			Priority:    insight.Priority,
			Actionable:  insight.Actionable,
			Data:        renderInsightData(insight.Data),
		})
	}
	return out
}

// renderInsightData rewrites decimal values in an insight data map to their
// two-decimal wire form.
func renderInsightData(data map[string]interface{}) map[string]interface{} {
	if data == nil {
		return nil
	}
	out := make(map[string]interface{}, len(data))
	for key, value := range data {
		if d, ok := value.(decimal.Decimal); ok {
			out[key] = d.StringFixed(2)
		} else {
			out[key] = value
		}
	}
	return out
}

// AnomalyResponse is the wire form of a flagged expense.
type AnomalyResponse struct {
	Type              string                 `json:"type"`
	Expense           *ExpenseResponse       `json:"expense"`
	Severity          domain.AnomalySeverity `json:"severity"`
	Reason            string                 `json:"reason"`
	DeviationMultiple string                 `json:"deviationMultiple"`
}

func toAnomalyResponses(anomalies []*domain.Anomaly) []*AnomalyResponse {
	out := make([]*AnomalyResponse, 0, len(anomalies))
	for _, anomaly := range anomalies {
		out = append(out, &AnomalyResponse{
			Type:              anomaly.Type,
			Expense:           toExpenseResponse(anomaly.Expense),
			Severity:          anomaly.Severity,
			Reason:            anomaly.Reason,
			DeviationMultiple: anomaly.DeviationMultiple.StringFixed(2),
		})
	}
	return out
}

// PeriodTotalsResponse is the wire form of one side of a comparison.
type PeriodTotalsResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Total     string `json:"total"`
	Count     int    `json:"count"`
	Average   string `json:"average"`
}

// PeriodChangeResponse is the wire form of the movement between two periods.
type PeriodChangeResponse struct {
	Amount     string                 `json:"amount"`
	Percentage string                 `json:"percentage"`
	Direction  domain.ChangeDirection `json:"direction"`
}

// PeriodComparisonResponse is the wire form of a period comparison.
type PeriodComparisonResponse struct {
	Previous *PeriodTotalsResponse `json:"previous"`
	Current  *PeriodTotalsResponse `json:"current"`
	Change   *PeriodChangeResponse `json:"change"`
}

func toPeriodTotalsResponse(totals *domain.PeriodTotals) *PeriodTotalsResponse {
	return &PeriodTotalsResponse{
		StartDate: util.FormatDate(totals.StartDate),
		EndDate:   util.FormatDate(totals.EndDate),
		Total:     totals.Total.StringFixed(2),
		Count:     totals.Count,
		Average:   totals.Average.StringFixed(2),
	}
}

func toPeriodComparisonResponse(comparison *domain.PeriodComparison) *PeriodComparisonResponse {
	return &PeriodComparisonResponse{
		Previous: toPeriodTotalsResponse(comparison.Previous),
		Current:  toPeriodTotalsResponse(comparison.Current),
		Change: &PeriodChangeResponse{
			Amount:     comparison.Change.Amount.StringFixed(2),
			Percentage: comparison.Change.Percentage.StringFixed(2),
			Direction:  comparison.Change.Direction,
		},
	}
}

// SavingsRecommendationResponse is the wire form of a savings opportunity.
type SavingsRecommendationResponse struct {
	Type             string `json:"type"`
	CategoryID       string `json:"categoryId"`
	CategoryName     string `json:"categoryName"`
	Description      string `json:"description"`
	PotentialSavings string `json:"potentialSavings"`
}

func toSavingsResponses(recommendations []*domain.SavingsRecommendation) []*SavingsRecommendationResponse {
	out := make([]*SavingsRecommendationResponse, 0, len(recommendations))
	for _, r := range recommendations {
		out = append(out, &SavingsRecommendationResponse{
			Type:             r.Type,
			CategoryID:       r.CategoryID,
			CategoryName:     r.CategoryName,
			Description:      r.Description,
			PotentialSavings: r.PotentialSavings.StringFixed(2),
		})
	}
	return out
}
