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

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `id, amount, description, date, category_id, receipt_path, created_at, updated_at`

// Create inserts a new expense
func (r *ExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO expenses (id, amount, description, date, category_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+expenseColumns,
		uuid.NewString(), amount, expense.Description, timeToPgDate(expense.Date), expense.CategoryID,
	)
	return scanExpense(row)
}

// GetByID retrieves an expense by its ID
func (r *ExpenseRepository) GetByID(id string) (*domain.Expense, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id)
	expense, err := scanExpense(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// List retrieves all expenses ordered by insertion
func (r *ExpenseRepository) List() ([]*domain.Expense, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+expenseColumns+` FROM expenses ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

// Update applies an expense update
func (r *ExpenseRepository) Update(id string, data *domain.UpdateExpenseData) (*domain.Expense, error) {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(data.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE expenses
		SET amount = $2, description = $3, date = $4, category_id = $5, updated_at = now()
		WHERE id = $1
		RETURNING `+expenseColumns,
		id, amount, data.Description, timeToPgDate(data.Date), data.CategoryID,
	)
	expense, err := scanExpense(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// Delete removes an expense
func (r *ExpenseRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// SetReceiptPath records or clears the receipt object path for an expense
func (r *ExpenseRepository) SetReceiptPath(id, receiptPath string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `UPDATE expenses SET receipt_path = $2, updated_at = now() WHERE id = $1`, id, receiptPath)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// ReassignCategory moves all expenses from one category to another and
// returns the number of rows moved
func (r *ExpenseRepository) ReassignCategory(fromCategoryID, toCategoryID string) (int64, error) {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx,
		`UPDATE expenses SET category_id = $2, updated_at = now() WHERE category_id = $1`,
		fromCategoryID, toCategoryID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		expense domain.Expense
		amount  pgtype.Numeric
		date    pgtype.Date
	)
	err := row.Scan(
		&expense.ID,
		&amount,
		&expense.Description,
		&date,
		&expense.CategoryID,
		&expense.ReceiptPath,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	expense.Amount = pgNumericToDecimal(amount)
	expense.Date = pgDateToTime(date)
	return &expense, nil
}
