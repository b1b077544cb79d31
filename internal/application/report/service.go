// Package report compiles back-office reports: it fetches records through a
// RecordSource, runs them through the pure domain core and returns report
// trees, statistics and assignee merges.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/period"
	"github.com/erp/backoffice/internal/domain/record"
	"github.com/erp/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// RecordSource loads the records a report is compiled from
type RecordSource interface {
	FindRecords(ctx context.Context, q record.Query) ([]record.BusinessRecord, error)
	FindExpenses(ctx context.Context, q record.Query) ([]record.Expense, error)
	FindPaymentMethods(ctx context.Context) ([]record.PaymentMethod, error)
	FindUnits(ctx context.Context) ([]record.Unit, error)
}

// AssigneeRenamer persists an assignee merge. Implementations must rename
// every target or none.
type AssigneeRenamer interface {
	RenameAssignee(ctx context.Context, targets []record.Ref, newName string) (int64, error)
}

// Options tunes the service
type Options struct {
	Locale string
	// MaxBatchSize bounds how many records of one kind a request may load.
	// Zero disables the bound.
	MaxBatchSize   int
	IdempotencyTTL time.Duration
}

// ReportService provides application-level report operations
type ReportService struct {
	source      RecordSource
	renamer     AssigneeRenamer
	idempotency shared.IdempotencyStore
	logger      *zap.Logger
	opts        Options
}

// NewReportService creates a new ReportService
func NewReportService(
	source RecordSource,
	renamer AssigneeRenamer,
	idempotency shared.IdempotencyStore,
	logger *zap.Logger,
	opts Options,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !period.SupportedLocale(opts.Locale) {
		opts.Locale = period.DefaultLocale
	}
	if opts.IdempotencyTTL <= 0 {
		opts.IdempotencyTTL = shared.DefaultIdempotencyConfig().TTL
	}
	return &ReportService{
		source:      source,
		renamer:     renamer,
		idempotency: idempotency,
		logger:      logger,
		opts:        opts,
	}
}

// limit is the per-kind row limit pushed to the source. One extra row lets
// an oversized batch be detected without loading all of it.
func (s *ReportService) limit() int {
	if s.opts.MaxBatchSize <= 0 {
		return 0
	}
	return s.opts.MaxBatchSize + 1
}

func (s *ReportService) oversized(kind record.Kind, n int) error {
	if s.opts.MaxBatchSize > 0 && n > s.opts.MaxBatchSize {
		return shared.NewValidationError(fmt.Sprintf(
			"more than %d %s records match; narrow the unit or period",
			s.opts.MaxBatchSize, kind.DisplayName()))
	}
	return nil
}

// loadRecords fetches dated records of the period and enforces the batch
// bound per kind. year and month of zero mean any.
func (s *ReportService) loadRecords(ctx context.Context, unitID *record.ID, year, month int, kinds ...record.Kind) ([]record.BusinessRecord, error) {
	records, err := s.source.FindRecords(ctx, record.Query{
		UnitID: unitID,
		Kinds:  kinds,
		Year:   year,
		Month:  month,
		Limit:  s.limit(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	counts := make(map[record.Kind]int)
	for _, r := range records {
		counts[r.Kind()]++
	}
	for _, kind := range record.AllKinds() {
		if err := s.oversized(kind, counts[kind]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// loadExpenses fetches expenses; year and month of zero mean any
func (s *ReportService) loadExpenses(ctx context.Context, unitID *record.ID, year, month int) ([]record.Expense, error) {
	expenses, err := s.source.FindExpenses(ctx, record.Query{
		UnitID: unitID,
		Kinds:  []record.Kind{record.KindExpense},
		Year:   year,
		Month:  month,
		Limit:  s.limit(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expenses: %w", err)
	}
	if err := s.oversized(record.KindExpense, len(expenses)); err != nil {
		return nil, err
	}
	return expenses, nil
}

func (s *ReportService) loadMethods(ctx context.Context) (record.PaymentMethods, error) {
	methods, err := s.source.FindPaymentMethods(ctx)
	if err != nil {
		return record.PaymentMethods{}, fmt.Errorf("failed to fetch payment methods: %w", err)
	}
	return record.NewPaymentMethods(methods), nil
}

func (s *ReportService) loadUnits(ctx context.Context) ([]record.Unit, error) {
	units, err := s.source.FindUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch units: %w", err)
	}
	return units, nil
}

// warnUndated logs records that no period can be derived for. They are left
// out of every report rather than failing it.
func (s *ReportService) warnUndated(op string, records []record.BusinessRecord) {
	skipped := 0
	for _, r := range records {
		if _, _, ok := r.Period(); !ok {
			skipped++
		}
	}
	if skipped > 0 {
		s.logger.Warn("Skipped records without a usable date",
			zap.String("operation", op),
			zap.Int("skipped", skipped),
		)
	}
}

// warnTotals logs the figures that were summed without full reference data
func (s *ReportService) warnTotals(op string, t finance.AggregateTotals) {
	if t.UnknownMethodPayments > 0 {
		s.logger.Warn("Payments with unknown method summed at raw amount",
			zap.String("operation", op),
			zap.Int("payments", t.UnknownMethodPayments),
		)
	}
	if t.UnclassifiedSessions > 0 {
		s.logger.Warn("Sessions without location counted as internal",
			zap.String("operation", op),
			zap.Int("sessions", t.UnclassifiedSessions),
		)
	}
}
