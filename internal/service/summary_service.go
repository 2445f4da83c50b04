package service

import (
	"sort"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TopExpenseLimit caps the number of expenses returned in a summary.
const TopExpenseLimit = 10

var oneHundred = decimal.NewFromInt(100)

// SummaryService aggregates filtered expense sets into spending summaries
// and per-category breakdowns.
type SummaryService struct {
	expenseRepo  domain.ExpenseRepository
	categoryRepo domain.CategoryRepository
	clock        Clock
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(expenseRepo domain.ExpenseRepository, categoryRepo domain.CategoryRepository, clock Clock) *SummaryService {
	return &SummaryService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// GetSpendingSummary computes totals, averages, the top expenses and the
// category breakdown for the expenses matching opts. Ledger read failures
// degrade to a zeroed summary so display surfaces stay up.
func (s *SummaryService) GetSpendingSummary(opts domain.AnalyticsOptions) (*domain.SpendingSummary, error) {
	expenses, err := s.expenseRepo.List()
	if err != nil {
		log.Warn().Err(err).Msg("Expense read failed, returning empty summary")
		return emptySummary(opts.Period), nil
	}

	filtered := filterExpenses(expenses, opts, s.clock.Now())
	summary := summarize(filtered, opts.Period)
	summary.CategoryBreakdown = s.breakdown(filtered, summary.Total)
	return summary, nil
}

// GetCategoryBreakdown computes just the per-category slice of a summary.
func (s *SummaryService) GetCategoryBreakdown(opts domain.AnalyticsOptions) ([]*domain.CategoryBreakdownEntry, error) {
	expenses, err := s.expenseRepo.List()
	if err != nil {
		log.Warn().Err(err).Msg("Expense read failed, returning empty breakdown")
		return []*domain.CategoryBreakdownEntry{}, nil
	}

	filtered := filterExpenses(expenses, opts, s.clock.Now())
	total := decimal.Zero
	for _, exp := range filtered {
		total = total.Add(exp.Amount)
	}
	return s.breakdown(filtered, total), nil
}

// InvalidateCache is a reserved extension point for derived-result caching.
// Nothing is cached today; the CRUD services call it after every mutation so
// a future cache only needs to fill in this hook.
func (s *SummaryService) InvalidateCache() {}

func emptySummary(period domain.Period) *domain.SpendingSummary {
	return &domain.SpendingSummary{
		Total:             decimal.Zero,
		Average:           decimal.Zero,
		DailyAverage:      decimal.Zero,
		CategoryBreakdown: []*domain.CategoryBreakdownEntry{},
		TopExpenses:       []*domain.Expense{},
		Period:            period,
	}
}

// summarize computes the scalar aggregates and top expenses of a filtered
// set. The daily average divides by the count of distinct dates that carry
// an expense, not by the span of the period.
func summarize(filtered []*domain.Expense, period domain.Period) *domain.SpendingSummary {
	summary := emptySummary(period)
	if len(filtered) == 0 {
		return summary
	}

	total := decimal.Zero
	days := make(map[string]struct{})
	for _, exp := range filtered {
		total = total.Add(exp.Amount)
		days[util.FormatDate(exp.Date)] = struct{}{}
	}

	summary.Total = total
	summary.Count = len(filtered)
	summary.Average = total.Div(decimal.NewFromInt(int64(len(filtered))))
	summary.DailyAverage = total.Div(decimal.NewFromInt(int64(len(days))))
	summary.TopExpenses = topExpenses(filtered, TopExpenseLimit)
	return summary
}

// topExpenses returns the n largest expenses by amount; ties keep the
// original order.
func topExpenses(filtered []*domain.Expense, n int) []*domain.Expense {
	ranked := make([]*domain.Expense, len(filtered))
	copy(ranked, filtered)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.GreaterThan(ranked[j].Amount)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// breakdown groups the filtered set by category, resolving metadata from the
// category list. Entries are sorted by total descending; ties keep the order
// in which the category was first seen.
func (s *SummaryService) breakdown(filtered []*domain.Expense, summaryTotal decimal.Decimal) []*domain.CategoryBreakdownEntry {
	categories, err := s.categoryRepo.List()
	if err != nil {
		log.Warn().Err(err).Msg("Category read failed, using fallback metadata")
		categories = nil
	}
	byID := make(map[string]*domain.Category, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	groups := make(map[string]*domain.CategoryBreakdownEntry)
	order := make([]string, 0)
	for _, exp := range filtered {
		entry, ok := groups[exp.CategoryID]
		if !ok {
			entry = &domain.CategoryBreakdownEntry{
				CategoryID:    exp.CategoryID,
				CategoryName:  domain.UnknownCategoryName,
				CategoryColor: domain.UnknownCategoryColor,
				CategoryIcon:  domain.UnknownCategoryIcon,
			}
			if cat, found := byID[exp.CategoryID]; found {
				entry.CategoryName = cat.Name
				entry.CategoryColor = cat.Color
				entry.CategoryIcon = cat.Icon
			}
			groups[exp.CategoryID] = entry
			order = append(order, exp.CategoryID)
		}
		entry.Total = entry.Total.Add(exp.Amount)
		entry.Count++
	}

	entries := make([]*domain.CategoryBreakdownEntry, 0, len(order))
	for _, id := range order {
		entry := groups[id]
		if summaryTotal.IsPositive() {
			entry.Percentage = entry.Total.Mul(oneHundred).Div(summaryTotal)
		}
		entry.Average = entry.Total.Div(decimal.NewFromInt(int64(entry.Count)))
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total.GreaterThan(entries[j].Total)
	})
	return entries
}
