package service

import (
	"fmt"
	"sort"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Tuning thresholds for the generated insights, in percent.
var (
	topCategoryNotable  = decimal.NewFromInt(40)
	topCategoryDominant = decimal.NewFromInt(60)
	trendNotable        = decimal.NewFromInt(20)
	trendSharp          = decimal.NewFromInt(50)
	nearLimitUrgent     = decimal.NewFromInt(90)
	underBudgetCeiling  = decimal.NewFromInt(50)
	patternNotable      = decimal.NewFromInt(30)
	patternSevere       = decimal.NewFromInt(50)
)

// MinAnomalySampleSize is the smallest expense set anomaly detection runs on.
const MinAnomalySampleSize = 5

var anomalyMultiplier = decimal.NewFromInt(3)

// InsightService synthesizes prioritized, human-readable insights from the
// summary, trend and budget engines, and flags statistical outliers.
type InsightService struct {
	summaryService *SummaryService
	trendService   *TrendService
	budgetService  *BudgetAnalysisService
	expenseRepo    domain.ExpenseRepository
	clock          Clock
}

// NewInsightService creates a new InsightService
func NewInsightService(
	summaryService *SummaryService,
	trendService *TrendService,
	budgetService *BudgetAnalysisService,
	expenseRepo domain.ExpenseRepository,
	clock Clock,
) *InsightService {
	return &InsightService{
		summaryService: summaryService,
		trendService:   trendService,
		budgetService:  budgetService,
		expenseRepo:    expenseRepo,
		clock:          clock,
	}
}

// DetectAnomalies flags expenses whose amount exceeds three times the mean
// of the filtered set. Fewer than MinAnomalySampleSize records is a normal,
// silent case and yields an empty list.
func (s *InsightService) DetectAnomalies(opts domain.AnalyticsOptions) ([]*domain.Anomaly, error) {
	expenses, err := s.expenseRepo.List()
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	filtered := filterExpenses(expenses, opts, s.clock.Now())
	if len(filtered) < MinAnomalySampleSize {
		return []*domain.Anomaly{}, nil
	}

	total := decimal.Zero
	for _, exp := range filtered {
		total = total.Add(exp.Amount)
	}
	mean := total.Div(decimal.NewFromInt(int64(len(filtered))))
	if !mean.IsPositive() {
		return []*domain.Anomaly{}, nil
	}
	threshold := mean.Mul(anomalyMultiplier)

	anomalies := make([]*domain.Anomaly, 0)
	for _, exp := range filtered {
		if !exp.Amount.GreaterThan(threshold) {
			continue
		}
		severity := domain.SeverityMedium
		if exp.Amount.GreaterThan(threshold.Mul(decimal.NewFromInt(2))) {
			severity = domain.SeverityHigh
		}
		multiple := exp.Amount.Div(mean)
		anomalies = append(anomalies, &domain.Anomaly{
			Type:              domain.AnomalyTypeUnusualAmount,
			Expense:           exp,
			Severity:          severity,
			Reason:            fmt.Sprintf("Amount is %sx the average expense of %s", multiple.StringFixed(1), mean.StringFixed(2)),
			DeviationMultiple: multiple,
		})
	}

	sort.SliceStable(anomalies, func(i, j int) bool {
		return anomalies[i].DeviationMultiple.GreaterThan(anomalies[j].DeviationMultiple)
	})
	return anomalies, nil
}

// GenerateInsights runs every insight rule and returns the combined list
// sorted by priority, high first; ties keep generation order.
func (s *InsightService) GenerateInsights() ([]*domain.Insight, error) {
	insights := make([]*domain.Insight, 0)

	if insight, err := s.topCategoryInsight(); err != nil {
		return nil, err
	} else if insight != nil {
		insights = append(insights, insight)
	}

	if insight, err := s.spendingTrendInsight(); err != nil {
		return nil, err
	} else if insight != nil {
		insights = append(insights, insight)
	}

	budgetInsights, err := s.budgetInsights()
	if err != nil {
		return nil, err
	}
	insights = append(insights, budgetInsights...)

	if insight, err := s.monthlyPatternInsight(); err != nil {
		return nil, err
	} else if insight != nil {
		insights = append(insights, insight)
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority.Rank() > insights[j].Priority.Rank()
	})
	return insights, nil
}

// topCategoryInsight flags the current month's dominant category when it
// carries more than 40% of spending.
func (s *InsightService) topCategoryInsight() (*domain.Insight, error) {
	breakdown, err := s.summaryService.GetCategoryBreakdown(domain.AnalyticsOptions{Period: domain.PeriodMonth})
	if err != nil {
		return nil, err
	}
	if len(breakdown) == 0 {
		return nil, nil
	}

	top := breakdown[0]
	if !top.Percentage.GreaterThan(topCategoryNotable) {
		return nil, nil
	}

	priority := domain.PriorityMedium
	if top.Percentage.GreaterThan(topCategoryDominant) {
		priority = domain.PriorityHigh
	}
	return &domain.Insight{
		ID:          "high-spending-category",
		Type:        domain.InsightHighSpendingCategory,
		Title:       fmt.Sprintf("High spending on %s", top.CategoryName),
		Description: fmt.Sprintf("%s accounts for %s%% of your spending this month.", top.CategoryName, top.Percentage.StringFixed(1)),
		Priority:    priority,
		Actionable:  true,
		Data: map[string]interface{}{
			"categoryId": top.CategoryID,
			"percentage": top.Percentage,
			"total":      top.Total,
		},
	}, nil
}

// spendingTrendInsight compares the current and previous calendar months and
// flags swings above 20%.
func (s *InsightService) spendingTrendInsight() (*domain.Insight, error) {
	trends, err := s.trendService.GetMonthlyTrends(2)
	if err != nil {
		return nil, err
	}
	if len(trends) < 2 {
		return nil, nil
	}

	previous, current := trends[0], trends[1]
	if previous.Count == 0 || current.Count == 0 {
		return nil, nil
	}

	change := current.Total.Sub(previous.Total).Mul(oneHundred).Div(previous.Total)
	if !change.Abs().GreaterThan(trendNotable) {
		return nil, nil
	}

	priority := domain.PriorityMedium
	if change.Abs().GreaterThan(trendSharp) {
		priority = domain.PriorityHigh
	}

	insight := &domain.Insight{
		ID:       "spending-trend",
		Priority: priority,
		Data: map[string]interface{}{
			"currentTotal":  current.Total,
			"previousTotal": previous.Total,
			"percentChange": change,
		},
	}
	if change.IsPositive() {
		insight.Type = domain.InsightSpendingIncrease
		insight.Title = "Spending is up"
		insight.Description = fmt.Sprintf("You spent %s%% more than last month.", change.StringFixed(1))
		insight.Actionable = true
	} else {
		insight.Type = domain.InsightSpendingDecrease
		insight.Title = "Spending is down"
		insight.Description = fmt.Sprintf("You spent %s%% less than last month.", change.Abs().StringFixed(1))
	}
	return insight, nil
}

// budgetInsights emits a warning per analyzed budget: exceeded, near the
// limit, or quietly under budget near period end.
func (s *InsightService) budgetInsights() ([]*domain.Insight, error) {
	analyses, err := s.budgetService.AnalyzeBudgets(BudgetAnalysisOptions{})
	if err != nil {
		return nil, err
	}

	insights := make([]*domain.Insight, 0)
	for _, analysis := range analyses {
		switch {
		case analysis.IsOverBudget:
			insights = append(insights, &domain.Insight{
				ID:          "budget-exceeded-" + analysis.BudgetID,
				Type:        domain.InsightBudgetExceeded,
				Title:       fmt.Sprintf("Over budget: %s", analysis.CategoryName),
				Description: fmt.Sprintf("You are %s over your %s budget.", analysis.OverageAmount.StringFixed(2), analysis.CategoryName),
				Priority:    domain.PriorityHigh,
				Actionable:  true,
				Data: map[string]interface{}{
					"budgetId":    analysis.BudgetID,
					"utilization": analysis.UtilizationPercentage,
					"overage":     analysis.OverageAmount,
				},
			})
		case analysis.IsNearLimit:
			priority := domain.PriorityMedium
			if analysis.UtilizationPercentage.GreaterThan(nearLimitUrgent) {
				priority = domain.PriorityHigh
			}
			insights = append(insights, &domain.Insight{
				ID:          "budget-near-limit-" + analysis.BudgetID,
				Type:        domain.InsightBudgetNearLimit,
				Title:       fmt.Sprintf("Approaching budget: %s", analysis.CategoryName),
				Description: fmt.Sprintf("You have used %s%% of your %s budget.", analysis.UtilizationPercentage.StringFixed(0), analysis.CategoryName),
				Priority:    priority,
				Actionable:  true,
				Data: map[string]interface{}{
					"budgetId":    analysis.BudgetID,
					"utilization": analysis.UtilizationPercentage,
				},
			})
		case analysis.UtilizationPercentage.LessThan(underBudgetCeiling) && analysis.DaysRemaining < 7:
			insights = append(insights, &domain.Insight{
				ID:          "budget-under-" + analysis.BudgetID,
				Type:        domain.InsightSavingsOpportunity,
				Title:       fmt.Sprintf("Under budget: %s", analysis.CategoryName),
				Description: fmt.Sprintf("Only %s%% of your %s budget used with the period nearly over.", analysis.UtilizationPercentage.StringFixed(0), analysis.CategoryName),
				Priority:    domain.PriorityLow,
				Data: map[string]interface{}{
					"budgetId":    analysis.BudgetID,
					"utilization": analysis.UtilizationPercentage,
					"remaining":   analysis.RemainingAmount,
				},
			})
		}
	}
	return insights, nil
}

// monthlyPatternInsight flags the latest month when it deviates more than
// 30% from the recent monthly mean.
func (s *InsightService) monthlyPatternInsight() (*domain.Insight, error) {
	trends, err := s.trendService.GetMonthlyTrends(DefaultTrendMonths)
	if err != nil {
		return nil, err
	}
	if len(trends) < 3 {
		return nil, nil
	}

	mean := decimal.Zero
	for _, point := range trends {
		mean = mean.Add(point.Total)
	}
	mean = mean.Div(decimal.NewFromInt(int64(len(trends))))
	if !mean.IsPositive() {
		return nil, nil
	}

	latest := trends[len(trends)-1]
	deviation := latest.Total.Sub(mean).Mul(oneHundred).Div(mean)
	if !deviation.Abs().GreaterThan(patternNotable) {
		return nil, nil
	}

	priority := domain.PriorityMedium
	if deviation.Abs().GreaterThan(patternSevere) {
		priority = domain.PriorityHigh
	}

	direction := "above"
	if deviation.IsNegative() {
		direction = "below"
	}
	return &domain.Insight{
		ID:          "monthly-pattern",
		Type:        domain.InsightUnusualPattern,
		Title:       "Unusual monthly spending",
		Description: fmt.Sprintf("This month is %s%% %s your recent average.", deviation.Abs().StringFixed(1), direction),
		Priority:    priority,
		Data: map[string]interface{}{
			"month":     latest.Month,
			"total":     latest.Total,
			"mean":      mean,
			"deviation": deviation,
		},
	}, nil
}
