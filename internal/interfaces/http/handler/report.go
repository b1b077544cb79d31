package handler

import (
	"context"

	reportapp "github.com/erp/backoffice/internal/application/report"
	"github.com/erp/backoffice/internal/domain/period"
	"github.com/erp/backoffice/internal/domain/reconcile"
	"github.com/erp/backoffice/internal/domain/report"
	"github.com/erp/backoffice/internal/infrastructure/logger"
	"github.com/erp/backoffice/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader identifies one merge apply attempt across retries
const IdempotencyKeyHeader = "Idempotency-Key"

// maxIdempotencyKeyLength bounds the header so keys stay cheap to store
const maxIdempotencyKeyLength = 128

// ReportService is the application surface the report endpoints call
type ReportService interface {
	AvailablePeriods(ctx context.Context, q reportapp.PeriodQuery) (period.Available, error)
	SessionPayroll(ctx context.Context, q reportapp.ReportQuery) (*report.Node, error)
	ContractReport(ctx context.Context, q reportapp.ReportQuery) (*report.Node, error)
	ActivityReport(ctx context.Context, q reportapp.ReportQuery) (*report.Node, error)
	Comprehensive(ctx context.Context, q reportapp.ReportQuery) (*report.Node, error)
	Statistics(ctx context.Context, q reportapp.ReportQuery) (*reportapp.Statistics, error)
	PreviewMerge(ctx context.Context, req reportapp.MergeRequest) (*reconcile.MergeResult, error)
	ApplyMerge(ctx context.Context, req reportapp.MergeRequest) (*reportapp.MergeApplied, error)
}

// ReportHandler handles report and assignee merge endpoints
type ReportHandler struct {
	BaseHandler
	reportService ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GetPeriods lists the years and months that have records
// GET /reports/periods?unit_id=&kind=
func (h *ReportHandler) GetPeriods(c *gin.Context) {
	var q reportapp.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.ValidationError(c, err)
		return
	}
	tag(c, "available_periods", q.UnitID)

	available, err := h.reportService.AvailablePeriods(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, available)
}

// GetPayroll compiles the session payroll report of one unit
// GET /reports/payroll?unit_id=&year=&month=&assignee=&search=&details=
func (h *ReportHandler) GetPayroll(c *gin.Context) {
	h.compile(c, "session_payroll", h.reportService.SessionPayroll)
}

// GetContracts compiles the contracts report of one unit
func (h *ReportHandler) GetContracts(c *gin.Context) {
	h.compile(c, "contract_report", h.reportService.ContractReport)
}

// GetActivity compiles the daily activity report of one unit
func (h *ReportHandler) GetActivity(c *gin.Context) {
	h.compile(c, "activity_report", h.reportService.ActivityReport)
}

// GetComprehensive compiles every unit, or the one given by unit_id
func (h *ReportHandler) GetComprehensive(c *gin.Context) {
	h.compile(c, "comprehensive", h.reportService.Comprehensive)
}

// GetStatistics returns the flat summary of a scope
func (h *ReportHandler) GetStatistics(c *gin.Context) {
	q, ok := h.bindReportQuery(c, "statistics")
	if !ok {
		return
	}

	stats, err := h.reportService.Statistics(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// PreviewMerge lists the records a rename would touch
// POST /assignees/merge/preview
func (h *ReportHandler) PreviewMerge(c *gin.Context) {
	var req reportapp.MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	tag(c, "merge_preview", req.UnitID)

	result, err := h.reportService.PreviewMerge(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ApplyMerge renames an assignee. The gateway grants the permission and the
// Idempotency-Key header guards against applying the same merge twice.
//
// A key that already applied answers 409 ALREADY_EXISTS, including a retry of
// a request whose 200 was lost in transit; the rename is in place either way,
// so clients treat that 409 as success for their own key. A key is only
// reusable after a failed apply, which releases it.
// POST /assignees/merge
func (h *ReportHandler) ApplyMerge(c *gin.Context) {
	var req reportapp.MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	tag(c, "merge_apply", req.UnitID)

	key := c.GetHeader(IdempotencyKeyHeader)
	if len(key) > maxIdempotencyKeyLength {
		h.BadRequest(c, IdempotencyKeyHeader+" is too long")
		return
	}
	req.IdempotencyKey = key
	req.Authorized = middleware.MergeAllowed(c)

	applied, err := h.reportService.ApplyMerge(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	logger.L(c.Request.Context()).Info("Merge request applied",
		zap.String("idempotency_key", key),
		zap.Int64("renamed", applied.Renamed),
	)
	h.Success(c, applied)
}

func (h *ReportHandler) compile(c *gin.Context, op string, build func(context.Context, reportapp.ReportQuery) (*report.Node, error)) {
	q, ok := h.bindReportQuery(c, op)
	if !ok {
		return
	}

	tree, err := build(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tree)
}

func (h *ReportHandler) bindReportQuery(c *gin.Context, op string) (reportapp.ReportQuery, bool) {
	var q reportapp.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.ValidationError(c, err)
		return q, false
	}
	tag(c, op, q.UnitID)
	return q, true
}

// tag names the operation and unit on the request context so service and
// SQL logs carry them
func tag(c *gin.Context, op string, unitID *int64) {
	ctx := logger.WithOperation(c.Request.Context(), op)
	if unitID != nil {
		ctx = logger.WithUnitID(ctx, *unitID)
	}
	c.Request = c.Request.WithContext(ctx)
}
