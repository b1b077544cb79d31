package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/backoffice/internal/domain/filter"
	"github.com/erp/backoffice/internal/domain/reconcile"
	"github.com/erp/backoffice/internal/domain/record"
	"github.com/erp/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// MergeApplied is the outcome of a persisted merge
type MergeApplied struct {
	*reconcile.MergeResult
	// Renamed is the number of rows the store changed
	Renamed int64 `json:"renamed"`
}

// PreviewMerge reports which records a rename would touch without
// persisting anything
func (s *ReportService) PreviewMerge(ctx context.Context, req MergeRequest) (*reconcile.MergeResult, error) {
	crit := req.criteria()
	if err := crit.Validate(); err != nil {
		return nil, err
	}

	scope, err := s.mergeScope(ctx, req, crit)
	if err != nil {
		return nil, err
	}
	return reconcile.MergeAssigneeLabel(scope, req.OldName, req.NewName)
}

// ApplyMerge renames the assignee label on every record of the scope in one
// transaction. The request must be authorized and carry an idempotency key;
// a key is released again when the merge fails so the caller can retry.
func (s *ReportService) ApplyMerge(ctx context.Context, req MergeRequest) (*MergeApplied, error) {
	if !req.Authorized {
		return nil, shared.NewDomainError(shared.CodeForbidden, "merging assignees is not permitted")
	}
	if req.IdempotencyKey == "" {
		return nil, shared.NewValidationError("idempotency key is required")
	}
	if s.renamer == nil || s.idempotency == nil {
		return nil, errors.New("merge persistence is not configured")
	}

	fresh, err := s.idempotency.MarkProcessed(ctx, req.IdempotencyKey, s.opts.IdempotencyTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to record idempotency key: %w", err)
	}
	if !fresh {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "merge request was already applied")
	}

	applied, err := s.applyMerge(ctx, req)
	if err != nil {
		if relErr := s.idempotency.Release(ctx, req.IdempotencyKey); relErr != nil {
			s.logger.Error("Failed to release idempotency key",
				zap.String("idempotency_key", req.IdempotencyKey),
				zap.Error(relErr),
			)
		}
		return nil, err
	}

	s.logger.Info("Assignee merged",
		zap.String("old_name", applied.OldName),
		zap.String("new_name", applied.NewName),
		zap.Int("targets", applied.Count()),
		zap.Int("unaddressable", applied.Unaddressable),
		zap.Int64("renamed", applied.Renamed),
	)
	return applied, nil
}

func (s *ReportService) applyMerge(ctx context.Context, req MergeRequest) (*MergeApplied, error) {
	result, err := s.PreviewMerge(ctx, req)
	if err != nil {
		return nil, err
	}
	if result.Unaddressable > 0 {
		s.logger.Warn("Matching records without an id cannot be renamed",
			zap.String("old_name", result.OldName),
			zap.Int("unaddressable", result.Unaddressable),
		)
	}

	renamed, err := s.renamer.RenameAssignee(ctx, result.Targets, result.NewName)
	if err != nil {
		s.logger.Error("Failed to persist assignee merge", zap.Error(err))
		return nil, fmt.Errorf("failed to rename assignee: %w", err)
	}
	return &MergeApplied{MergeResult: result, Renamed: renamed}, nil
}

// mergeScope loads every kind, expenses included, narrowed to the request
func (s *ReportService) mergeScope(ctx context.Context, req MergeRequest, crit filter.Criteria) ([]record.BusinessRecord, error) {
	year, month := deref(req.Year), deref(req.Month)
	records, err := s.loadRecords(ctx, crit.UnitID, year, month, record.KindSession, record.KindContract, record.KindDailyReport)
	if err != nil {
		return nil, err
	}

	expenses, err := s.loadExpenses(ctx, crit.UnitID, year, month)
	if err != nil {
		return nil, err
	}

	return filter.Apply(append(records, record.Of(expenses)...), crit), nil
}
