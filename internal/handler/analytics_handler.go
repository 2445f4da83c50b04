package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/service"
	"github.com/moneta-app/moneta-backend/internal/util"
)

// AnalyticsHandler handles analytics-related HTTP requests
type AnalyticsHandler struct {
	summaryService    *service.SummaryService
	trendService      *service.TrendService
	budgetAnalysis    *service.BudgetAnalysisService
	insightService    *service.InsightService
	comparisonService *service.ComparisonService
	savingsService    *service.SavingsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(
	summaryService *service.SummaryService,
	trendService *service.TrendService,
	budgetAnalysis *service.BudgetAnalysisService,
	insightService *service.InsightService,
	comparisonService *service.ComparisonService,
	savingsService *service.SavingsService,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		summaryService:    summaryService,
		trendService:      trendService,
		budgetAnalysis:    budgetAnalysis,
		insightService:    insightService,
		comparisonService: comparisonService,
		savingsService:    savingsService,
	}
}

// parseAnalyticsOptions reads the shared analytics query parameters:
// startDate, endDate (YYYY-MM-DD), categoryId and period.
func parseAnalyticsOptions(c echo.Context) (domain.AnalyticsOptions, []ValidationError) {
	var (
		opts domain.AnalyticsOptions
		errs []ValidationError
	)

	if raw := c.QueryParam("startDate"); raw != "" {
		date, err := util.ParseDate(raw)
		if err != nil {
			errs = append(errs, ValidationError{Field: "startDate", Message: "Start date must be formatted YYYY-MM-DD"})
		} else {
			opts.StartDate = &date
		}
	}
	if raw := c.QueryParam("endDate"); raw != "" {
		date, err := util.ParseDate(raw)
		if err != nil {
			errs = append(errs, ValidationError{Field: "endDate", Message: "End date must be formatted YYYY-MM-DD"})
		} else {
			opts.EndDate = &date
		}
	}
	opts.CategoryID = c.QueryParam("categoryId")
	if raw := c.QueryParam("period"); raw != "" {
		period := domain.Period(raw)
		if !period.Valid() {
			errs = append(errs, ValidationError{Field: "period", Message: "Period must be one of today, week, month, year, all"})
		} else {
			opts.Period = period
		}
	}

	return opts, errs
}

// GetSummary handles GET /analytics/summary
func (h *AnalyticsHandler) GetSummary(c echo.Context) error {
	opts, errs := parseAnalyticsOptions(c)
	if errs != nil {
		return NewValidationError(c, "Validation failed", errs)
	}

	summary, err := h.summaryService.GetSpendingSummary(opts)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toSummaryResponse(summary))
}

// GetCategoryBreakdown handles GET /analytics/categories
func (h *AnalyticsHandler) GetCategoryBreakdown(c echo.Context) error {
	opts, errs := parseAnalyticsOptions(c)
	if errs != nil {
		return NewValidationError(c, "Validation failed", errs)
	}

	breakdown, err := h.summaryService.GetCategoryBreakdown(opts)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toBreakdownResponses(breakdown))
}

// GetDailyTrends handles GET /analytics/trends/daily
func (h *AnalyticsHandler) GetDailyTrends(c echo.Context) error {
	opts, errs := parseAnalyticsOptions(c)
	if errs != nil {
		return NewValidationError(c, "Validation failed", errs)
	}

	trends, err := h.trendService.GetDailyTrends(opts)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toDailyTrendResponses(trends))
}

// GetMonthlyTrends handles GET /analytics/trends/monthly
func (h *AnalyticsHandler) GetMonthlyTrends(c echo.Context) error {
	months := service.DefaultTrendMonths
	if raw := c.QueryParam("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "months", Message: "Months must be a positive integer"},
			})
		}
		months = parsed
	}

	trends, err := h.trendService.GetMonthlyTrends(months)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toMonthlyTrendResponses(trends))
}

// GetBudgetAnalysis handles GET /analytics/budgets
func (h *AnalyticsHandler) GetBudgetAnalysis(c echo.Context) error {
	opts := service.BudgetAnalysisOptions{
		CategoryID: c.QueryParam("categoryId"),
		Month:      c.QueryParam("month"),
	}

	analyses, err := h.budgetAnalysis.AnalyzeBudgets(opts)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toBudgetAnalysisResponses(analyses))
}

// GetCategoryBudgetAnalysis handles GET /analytics/budgets/category
func (h *AnalyticsHandler) GetCategoryBudgetAnalysis(c echo.Context) error {
	analysis, err := h.budgetAnalysis.AnalyzeBudgetForCategory(c.QueryParam("categoryId"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if analysis == nil {
		return NewNotFoundError(c, "No active budget for this category")
	}
	return c.JSON(http.StatusOK, toBudgetAnalysisResponse(analysis))
}

// GetBudgetProjection handles GET /analytics/projection
func (h *AnalyticsHandler) GetBudgetProjection(c echo.Context) error {
	projection, err := h.budgetAnalysis.ProjectBudget(c.QueryParam("categoryId"), c.QueryParam("month"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toBudgetProjectionResponse(projection))
}

// GetInsights handles GET /analytics/insights
func (h *AnalyticsHandler) GetInsights(c echo.Context) error {
	insights, err := h.insightService.GenerateInsights()
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toInsightResponses(insights))
}

// GetAnomalies handles GET /analytics/anomalies
func (h *AnalyticsHandler) GetAnomalies(c echo.Context) error {
	opts, errs := parseAnalyticsOptions(c)
	if errs != nil {
		return NewValidationError(c, "Validation failed", errs)
	}

	anomalies, err := h.insightService.DetectAnomalies(opts)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toAnomalyResponses(anomalies))
}

// ComparePeriods handles GET /analytics/comparison
func (h *AnalyticsHandler) ComparePeriods(c echo.Context) error {
	previous, errs := parseDateRange(c, "previousStart", "previousEnd")
	current, curErrs := parseDateRange(c, "currentStart", "currentEnd")
	errs = append(errs, curErrs...)
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	comparison, err := h.comparisonService.ComparePeriods(previous, current)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toPeriodComparisonResponse(comparison))
}

// GetSavingsOpportunities handles GET /analytics/savings
func (h *AnalyticsHandler) GetSavingsOpportunities(c echo.Context) error {
	opts, errs := parseAnalyticsOptions(c)
	if errs != nil {
		return NewValidationError(c, "Validation failed", errs)
	}

	recommendations, err := h.savingsService.GetSavingsOpportunities(opts)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toSavingsResponses(recommendations))
}

// parseDateRange reads a start/end query parameter pair. A range is nil when
// both parameters are absent; a half-specified range is a validation error.
func parseDateRange(c echo.Context, startKey, endKey string) (*service.DateRange, []ValidationError) {
	rawStart := c.QueryParam(startKey)
	rawEnd := c.QueryParam(endKey)
	if rawStart == "" && rawEnd == "" {
		return nil, nil
	}

	var errs []ValidationError
	start, err := util.ParseDate(rawStart)
	if err != nil {
		errs = append(errs, ValidationError{Field: startKey, Message: "Date must be formatted YYYY-MM-DD"})
	}
	end, err := util.ParseDate(rawEnd)
	if err != nil {
		errs = append(errs, ValidationError{Field: endKey, Message: "Date must be formatted YYYY-MM-DD"})
	}
	if errs != nil {
		return nil, errs
	}
	return &service.DateRange{Start: start, End: end}, nil
}
