package router

import (
	"github.com/erp/backoffice/internal/interfaces/http/handler"
)

// ReportRoutes groups the report compilation endpoints
func ReportRoutes(h *handler.ReportHandler) *RouteGroup {
	return NewRouteGroup("reports", "/reports").
		GET("/periods", h.GetPeriods).
		GET("/payroll", h.GetPayroll).
		GET("/contracts", h.GetContracts).
		GET("/activity", h.GetActivity).
		GET("/comprehensive", h.GetComprehensive).
		GET("/statistics", h.GetStatistics)
}

// AssigneeRoutes groups the assignee label merge endpoints
func AssigneeRoutes(h *handler.ReportHandler) *RouteGroup {
	return NewRouteGroup("assignees", "/assignees").
		POST("/merge/preview", h.PreviewMerge).
		POST("/merge", h.ApplyMerge)
}

// SystemRoutes groups the health endpoint
func SystemRoutes(h *handler.SystemHandler) *RouteGroup {
	return NewRouteGroup("system", "").
		GET("/health", h.Health)
}
