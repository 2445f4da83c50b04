package service

import (
	"fmt"
	"sort"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Heuristic tuning for savings recommendations.
var (
	smallExpenseCeiling    = decimal.NewFromInt(25)
	recoverableSmallShare  = decimal.NewFromFloat(0.30)
	recoverableLargeShare  = decimal.NewFromFloat(0.15)
	minRecommendedSavings  = decimal.NewFromInt(10)
	highCategoryThreshold  = decimal.NewFromInt(40)
	monthlyProjectionDays  = decimal.NewFromInt(30)
	minFrequentOccurrences = 5
)

// SavingsService finds heuristic savings opportunities: clusters of frequent
// small purchases and categories dominating overall spending.
type SavingsService struct {
	summaryService *SummaryService
	expenseRepo    domain.ExpenseRepository
	categoryRepo   domain.CategoryRepository
	clock          Clock
}

// NewSavingsService creates a new SavingsService
func NewSavingsService(
	summaryService *SummaryService,
	expenseRepo domain.ExpenseRepository,
	categoryRepo domain.CategoryRepository,
	clock Clock,
) *SavingsService {
	return &SavingsService{
		summaryService: summaryService,
		expenseRepo:    expenseRepo,
		categoryRepo:   categoryRepo,
		clock:          clock,
	}
}

// GetSavingsOpportunities runs both heuristics over the filtered expense set
// and returns the combined list sorted by potential savings descending.
func (s *SavingsService) GetSavingsOpportunities(opts domain.AnalyticsOptions) ([]*domain.SavingsRecommendation, error) {
	expenses, err := s.expenseRepo.List()
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	filtered := filterExpenses(expenses, opts, s.clock.Now())
	names := s.categoryNames()

	recommendations := s.frequentSmallExpenses(filtered, names)

	breakdown, err := s.summaryService.GetCategoryBreakdown(opts)
	if err != nil {
		return nil, err
	}
	for _, entry := range breakdown {
		if !entry.Percentage.GreaterThan(highCategoryThreshold) {
			continue
		}
		savings := entry.Total.Mul(recoverableLargeShare)
		recommendations = append(recommendations, &domain.SavingsRecommendation{
			Type:             domain.SavingsTypeHighCategory,
			CategoryID:       entry.CategoryID,
			CategoryName:     entry.CategoryName,
			Description:      fmt.Sprintf("%s takes up %s%% of your spending. Cutting 15%% would save %s.", entry.CategoryName, entry.Percentage.StringFixed(1), savings.StringFixed(2)),
			PotentialSavings: savings,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].PotentialSavings.GreaterThan(recommendations[j].PotentialSavings)
	})
	return recommendations, nil
}

// frequentSmallExpenses clusters sub-25 purchases by category and rounded
// price point, projects each cluster to a 30-day total scaled by the size of
// the filtered set, and assumes 30% of that is recoverable.
func (s *SavingsService) frequentSmallExpenses(filtered []*domain.Expense, names map[string]string) []*domain.SavingsRecommendation {
	if len(filtered) == 0 {
		return []*domain.SavingsRecommendation{}
	}

	type cluster struct {
		categoryID string
		pricePoint decimal.Decimal
		total      decimal.Decimal
		count      int
	}
	clusters := make(map[string]*cluster)
	order := make([]string, 0)
	for _, exp := range filtered {
		if !exp.Amount.LessThan(smallExpenseCeiling) {
			continue
		}
		price := exp.Amount.Floor()
		key := exp.CategoryID + "|" + price.String()
		c, ok := clusters[key]
		if !ok {
			c = &cluster{categoryID: exp.CategoryID, pricePoint: price}
			clusters[key] = c
			order = append(order, key)
		}
		c.total = c.total.Add(exp.Amount)
		c.count++
	}

	setSize := decimal.NewFromInt(int64(len(filtered)))
	recommendations := make([]*domain.SavingsRecommendation, 0)
	for _, key := range order {
		c := clusters[key]
		if c.count < minFrequentOccurrences {
			continue
		}
		monthly := c.total.Mul(monthlyProjectionDays).Div(setSize)
		savings := monthly.Mul(recoverableSmallShare)
		if !savings.GreaterThan(minRecommendedSavings) {
			continue
		}
		name, ok := names[c.categoryID]
		if !ok {
			name = domain.UnknownCategoryName
		}
		recommendations = append(recommendations, &domain.SavingsRecommendation{
			Type:             domain.SavingsTypeFrequentSmall,
			CategoryID:       c.categoryID,
			CategoryName:     name,
			Description:      fmt.Sprintf("You made %d purchases around %s in %s. Trimming these could save about %s a month.", c.count, c.pricePoint.StringFixed(0), name, savings.StringFixed(2)),
			PotentialSavings: savings,
		})
	}
	return recommendations
}

func (s *SavingsService) categoryNames() map[string]string {
	categories, err := s.categoryRepo.List()
	if err != nil {
		log.Warn().Err(err).Msg("Category read failed, using fallback names")
		return map[string]string{}
	}
	names := make(map[string]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}
	return names
}
