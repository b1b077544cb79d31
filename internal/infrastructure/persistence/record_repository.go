package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/erp/backoffice/internal/domain/record"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRecordRepository implements record.Repository using GORM
type GormRecordRepository struct {
	db *gorm.DB
}

// NewGormRecordRepository creates a new GormRecordRepository
func NewGormRecordRepository(db *gorm.DB) *GormRecordRepository {
	return &GormRecordRepository{db: db}
}

func (r *GormRecordRepository) scoped(ctx context.Context, model any, q record.Query) *gorm.DB {
	query := r.db.WithContext(ctx).Model(model)
	if q.UnitID != nil {
		query = query.Where("unit_id = ?", int64(*q.UnitID))
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	return query.Order("id")
}

// dated narrows a dated record table to the query's period by date prefix
func (r *GormRecordRepository) dated(ctx context.Context, model any, q record.Query) *gorm.DB {
	query := r.scoped(ctx, model, q)
	prefixes := record.PeriodPrefixes(q.Year, q.Month)
	if len(prefixes) == 0 {
		return query
	}
	clauses := make([]string, len(prefixes))
	args := make([]any, len(prefixes))
	for i, p := range prefixes {
		clauses[i] = "TRIM(occurred_on) LIKE ?"
		args[i] = p + "%"
	}
	return query.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

// FindRecords loads sessions, contracts with payments and daily reports
// with visits, in that order. The period is applied as a date prefilter.
func (r *GormRecordRepository) FindRecords(ctx context.Context, q record.Query) ([]record.BusinessRecord, error) {
	var out []record.BusinessRecord

	if q.Wants(record.KindSession) {
		var rows []models.SessionModel
		if err := r.dated(ctx, &models.SessionModel{}, q).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to load sessions: %w", err)
		}
		for i := range rows {
			out = append(out, rows[i].ToDomain())
		}
	}

	if q.Wants(record.KindContract) {
		var rows []models.ContractModel
		err := r.dated(ctx, &models.ContractModel{}, q).
			Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
			Find(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load contracts: %w", err)
		}
		for i := range rows {
			out = append(out, rows[i].ToDomain())
		}
	}

	if q.Wants(record.KindDailyReport) {
		var rows []models.DailyReportModel
		err := r.dated(ctx, &models.DailyReportModel{}, q).
			Preload("Visits", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
			Find(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load daily reports: %w", err)
		}
		for i := range rows {
			out = append(out, rows[i].ToDomain())
		}
	}

	return out, nil
}

// FindExpenses loads expenses, narrowed by the query's explicit period
func (r *GormRecordRepository) FindExpenses(ctx context.Context, q record.Query) ([]record.Expense, error) {
	if !q.Wants(record.KindExpense) {
		return nil, nil
	}
	query := r.scoped(ctx, &models.ExpenseModel{}, q)
	if q.Year > 0 {
		query = query.Where("year = ?", q.Year)
	}
	if q.Month > 0 {
		query = query.Where("month = ?", q.Month)
	}

	var rows []models.ExpenseModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	expenses := make([]record.Expense, len(rows))
	for i := range rows {
		expenses[i] = rows[i].ToDomain()
	}
	return expenses, nil
}

// FindPaymentMethods loads every payment method
func (r *GormRecordRepository) FindPaymentMethods(ctx context.Context) ([]record.PaymentMethod, error) {
	var rows []models.PaymentMethodModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load payment methods: %w", err)
	}
	methods := make([]record.PaymentMethod, len(rows))
	for i := range rows {
		methods[i] = rows[i].ToDomain()
	}
	return methods, nil
}

// FindUnits loads every unit ordered by ID
func (r *GormRecordRepository) FindUnits(ctx context.Context) ([]record.Unit, error) {
	var rows []models.UnitModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load units: %w", err)
	}
	units := make([]record.Unit, len(rows))
	for i := range rows {
		units[i] = rows[i].ToDomain()
	}
	return units, nil
}

// RenameAssignee relabels the targets inside one transaction. Either every
// kind is updated or none is.
func (r *GormRecordRepository) RenameAssignee(ctx context.Context, targets []record.Ref, newName string) (int64, error) {
	byKind := make(map[record.Kind][]int64)
	var order []record.Kind
	for _, t := range targets {
		if !t.ID.Known() {
			continue
		}
		if _, ok := modelFor(t.Kind); !ok {
			return 0, shared.NewValidationError(fmt.Sprintf("unknown record kind %q", t.Kind))
		}
		if _, seen := byKind[t.Kind]; !seen {
			order = append(order, t.Kind)
		}
		byKind[t.Kind] = append(byKind[t.Kind], int64(t.ID))
	}

	var total int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, kind := range order {
			model, _ := modelFor(kind)
			result := tx.Model(model).Where("id IN ?", byKind[kind]).Update("assignee_name", newName)
			if result.Error != nil {
				return fmt.Errorf("failed to rename %s assignees: %w", kind, result.Error)
			}
			total += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func modelFor(kind record.Kind) (any, bool) {
	switch kind {
	case record.KindSession:
		return &models.SessionModel{}, true
	case record.KindContract:
		return &models.ContractModel{}, true
	case record.KindDailyReport:
		return &models.DailyReportModel{}, true
	case record.KindExpense:
		return &models.ExpenseModel{}, true
	}
	return nil, false
}

// Ensure GormRecordRepository implements record.Repository
var _ record.Repository = (*GormRecordRepository)(nil)
