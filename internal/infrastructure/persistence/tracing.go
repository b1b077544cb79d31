package persistence

import (
	"fmt"

	"github.com/erp/backoffice/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig controls the client span recorded for every query
type TracingConfig struct {
	Enabled bool
	// QueryVariables keeps bound values in the recorded statement. Report
	// filters carry assignee names, so leave it off outside development.
	QueryVariables bool
	// TracerProvider defaults to the global provider, the one the HTTP
	// middleware records request spans on
	TracerProvider trace.TracerProvider
}

// TracingConfigFrom reads the tracing switches of the database section
func TracingConfigFrom(cfg *config.DatabaseConfig) TracingConfig {
	return TracingConfig{
		Enabled:        cfg.Tracing,
		QueryVariables: cfg.TraceQueryVariables,
	}
}

// UseTracing registers otelgorm so repository queries become child spans of
// the span carried by the query context
func (d *Database) UseTracing(cfg TracingConfig) error {
	if !cfg.Enabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(d.name)}
	if !cfg.QueryVariables {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgorm.WithTracerProvider(cfg.TracerProvider))
	}

	if err := d.DB.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("failed to register query tracing: %w", err)
	}
	return nil
}
