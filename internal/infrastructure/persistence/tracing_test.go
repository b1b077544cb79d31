package persistence

import (
	"context"
	"testing"

	"github.com/erp/backoffice/internal/domain/record"
	"github.com/erp/backoffice/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingProvider(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, recorder
}

func querySpans(recorder *tracetest.SpanRecorder, requestSpan string) []sdktrace.ReadOnlySpan {
	var spans []sdktrace.ReadOnlySpan
	for _, s := range recorder.Ended() {
		if s.Name() != requestSpan {
			spans = append(spans, s)
		}
	}
	return spans
}

func TestDatabase_UseTracing(t *testing.T) {
	unit := record.ID(1)
	sessionsOnly := record.Query{UnitID: &unit, Year: 2024, Month: 3, Kinds: []record.Kind{record.KindSession}}

	t.Run("queries become children of the request span", func(t *testing.T) {
		db := setupTestDB(t)
		seed(t, db)
		tp, recorder := newRecordingProvider(t)
		require.NoError(t, db.UseTracing(TracingConfig{Enabled: true, TracerProvider: tp}))

		ctx, request := tp.Tracer("test").Start(context.Background(), "GET /reports/payroll")
		recs, err := NewGormRecordRepository(db.DB).FindRecords(ctx, sessionsOnly)
		request.End()
		require.NoError(t, err)
		require.Len(t, recs, 2)

		spans := querySpans(recorder, "GET /reports/payroll")
		require.Len(t, spans, 1)
		assert.Equal(t, request.SpanContext().TraceID(), spans[0].SpanContext().TraceID())
		assert.Equal(t, request.SpanContext().SpanID(), spans[0].Parent().SpanID())
	})

	t.Run("every fetched kind is traced", func(t *testing.T) {
		db := setupTestDB(t)
		seed(t, db)
		tp, recorder := newRecordingProvider(t)
		require.NoError(t, db.UseTracing(TracingConfig{Enabled: true, TracerProvider: tp}))

		ctx, request := tp.Tracer("test").Start(context.Background(), "GET /reports/comprehensive")
		repo := NewGormRecordRepository(db.DB)
		_, err := repo.FindRecords(ctx, record.Query{UnitID: &unit, Year: 2024, Month: 3})
		require.NoError(t, err)
		_, err = repo.FindExpenses(ctx, record.Query{UnitID: &unit, Year: 2024, Month: 3})
		require.NoError(t, err)
		request.End()

		spans := querySpans(recorder, "GET /reports/comprehensive")
		require.GreaterOrEqual(t, len(spans), 4)
		for _, s := range spans {
			assert.Equal(t, request.SpanContext().TraceID(), s.SpanContext().TraceID())
		}
	})

	t.Run("disabled records nothing", func(t *testing.T) {
		db := setupTestDB(t)
		seed(t, db)
		tp, recorder := newRecordingProvider(t)
		require.NoError(t, db.UseTracing(TracingConfig{Enabled: false, TracerProvider: tp}))

		ctx, request := tp.Tracer("test").Start(context.Background(), "GET /reports/payroll")
		_, err := NewGormRecordRepository(db.DB).FindRecords(ctx, sessionsOnly)
		request.End()
		require.NoError(t, err)

		assert.Empty(t, querySpans(recorder, "GET /reports/payroll"))
	})
}

func TestTracingConfigFrom(t *testing.T) {
	cfg := TracingConfigFrom(&config.DatabaseConfig{Tracing: true, TraceQueryVariables: true})
	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.QueryVariables)
	assert.Nil(t, cfg.TracerProvider)
}
