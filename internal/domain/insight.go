package domain

import "github.com/shopspring/decimal"

type InsightPriority string

const (
	PriorityLow    InsightPriority = "low"
	PriorityMedium InsightPriority = "medium"
	PriorityHigh   InsightPriority = "high"
)

// priorityRank orders priorities for sorting; higher sorts first.
var priorityRank = map[InsightPriority]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// Rank returns the sort weight of the priority; unknown values rank lowest.
func (p InsightPriority) Rank() int {
	return priorityRank[p]
}

type InsightType string

const (
	InsightHighSpendingCategory InsightType = "high_spending_category"
	InsightSpendingIncrease     InsightType = "spending_increase"
	InsightSpendingDecrease     InsightType = "spending_decrease"
	InsightBudgetExceeded       InsightType = "budget_exceeded"
	InsightBudgetNearLimit      InsightType = "budget_near_limit"
	InsightSavingsOpportunity   InsightType = "savings_opportunity"
	InsightUnusualPattern       InsightType = "unusual_pattern"
)

// Insight is a generated, prioritized observation about spending behavior.
type Insight struct {
	ID          string                 `json:"id"`
	Type        InsightType            `json:"type"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Priority    InsightPriority        `json:"priority"`
	Actionable  bool                   `json:"actionable"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

type AnomalySeverity string

const (
	SeverityMedium AnomalySeverity = "medium"
	SeverityHigh   AnomalySeverity = "high"
)

// Anomaly flags an expense whose amount substantially exceeds the local
// average.
type Anomaly struct {
	Type              string          `json:"type"`
	Expense           *Expense        `json:"expense"`
	Severity          AnomalySeverity `json:"severity"`
	Reason            string          `json:"reason"`
	DeviationMultiple decimal.Decimal `json:"deviationMultiple"`
}

const AnomalyTypeUnusualAmount = "unusual_amount"
