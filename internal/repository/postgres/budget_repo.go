package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moneta-app/moneta-backend/internal/domain"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

const budgetColumns = `id, category_id, amount, period, start_date, end_date, is_active, created_at, updated_at`

// Create inserts a new budget
func (r *BudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(budget.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO budgets (id, category_id, amount, period, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+budgetColumns,
		uuid.NewString(), budget.CategoryID, amount, string(budget.Period),
		timeToPgDate(budget.StartDate), timeToPgDate(budget.EndDate), budget.IsActive,
	)
	return scanBudget(row)
}

// GetByID retrieves a budget by its ID
func (r *BudgetRepository) GetByID(id string) (*domain.Budget, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE id = $1`, id)
	budget, err := scanBudget(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// List retrieves all budgets ordered by start date
func (r *BudgetRepository) List() ([]*domain.Budget, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+budgetColumns+` FROM budgets ORDER BY start_date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := make([]*domain.Budget, 0)
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

// Update applies a budget update
func (r *BudgetRepository) Update(id string, data *domain.UpdateBudgetData) (*domain.Budget, error) {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(data.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE budgets
		SET amount = $2, period = $3, start_date = $4, end_date = $5, is_active = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+budgetColumns,
		id, amount, string(data.Period), timeToPgDate(data.StartDate), timeToPgDate(data.EndDate), data.IsActive,
	)
	budget, err := scanBudget(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// Delete removes a budget
func (r *BudgetRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var (
		budget    domain.Budget
		amount    pgtype.Numeric
		period    string
		startDate pgtype.Date
		endDate   pgtype.Date
	)
	err := row.Scan(
		&budget.ID,
		&budget.CategoryID,
		&amount,
		&period,
		&startDate,
		&endDate,
		&budget.IsActive,
		&budget.CreatedAt,
		&budget.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	budget.Amount = pgNumericToDecimal(amount)
	budget.Period = domain.BudgetPeriod(period)
	budget.StartDate = pgDateToTime(startDate)
	budget.EndDate = pgDateToTime(endDate)
	return &budget, nil
}
