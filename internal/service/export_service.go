package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/repository/storage"
	"github.com/moneta-app/moneta-backend/internal/util"
	"github.com/rs/zerolog/log"
)

const csvHeader = "Date,Amount,Category,Description"

// ExportService renders the expense ledger as CSV and optionally pushes
// snapshots to object storage.
type ExportService struct {
	expenseRepo  domain.ExpenseRepository
	categoryRepo domain.CategoryRepository
	store        storage.ObjectStore
	clock        Clock
}

// NewExportService creates a new ExportService. The store may be nil when
// object storage is not configured.
func NewExportService(expenseRepo domain.ExpenseRepository, categoryRepo domain.CategoryRepository, store storage.ObjectStore, clock Clock) *ExportService {
	return &ExportService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		store:        store,
		clock:        clock,
	}
}

// ExportCSV renders the filtered expense set as a CSV document with the
// columns Date, Amount, Category and Description. Descriptions are always
// double-quoted, with embedded quotes doubled.
func (s *ExportService) ExportCSV(opts domain.AnalyticsOptions) ([]byte, error) {
	expenses, err := s.expenseRepo.List()
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	filtered := filterExpenses(expenses, opts, s.clock.Now())

	names := make(map[string]string)
	categories, err := s.categoryRepo.List()
	if err != nil {
		log.Warn().Err(err).Msg("Category read failed, exporting with fallback names")
	} else {
		for _, cat := range categories {
			names[cat.ID] = cat.Name
		}
	}

	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')
	for _, exp := range filtered {
		name, ok := names[exp.CategoryID]
		if !ok {
			name = domain.UnknownCategoryName
		}
		b.WriteString(util.FormatDate(exp.Date))
		b.WriteByte(',')
		b.WriteString(exp.Amount.StringFixed(2))
		b.WriteByte(',')
		b.WriteString(quoteField(name))
		b.WriteByte(',')
		b.WriteString(quoteField(exp.Description))
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}

// ExportAndBackup renders the CSV and, when object storage is configured,
// uploads a timestamped snapshot under exports/. It returns the CSV bytes and
// the object path of the uploaded snapshot (empty when storage is disabled).
func (s *ExportService) ExportAndBackup(ctx context.Context, opts domain.AnalyticsOptions) ([]byte, string, error) {
	data, err := s.ExportCSV(opts)
	if err != nil {
		return nil, "", err
	}
	if s.store == nil {
		return data, "", nil
	}

	objectPath := fmt.Sprintf("exports/expenses-%s.csv", s.clock.Now().UTC().Format("20060102-150405"))
	if _, err := s.store.Upload(ctx, objectPath, strings.NewReader(string(data)), "text/csv", int64(len(data))); err != nil {
		return nil, "", fmt.Errorf("upload export snapshot: %w", err)
	}
	log.Info().Str("object_path", objectPath).Msg("Uploaded CSV export snapshot")
	return data, objectPath, nil
}

// BackupURL presigns a previously uploaded snapshot for download.
func (s *ExportService) BackupURL(ctx context.Context, objectPath string) (string, error) {
	if s.store == nil {
		return "", domain.ErrStorageDisabled
	}
	return s.store.GeneratePresignedURL(ctx, objectPath, 15*time.Minute)
}

// quoteField wraps a CSV field in double quotes, doubling embedded quotes.
func quoteField(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
