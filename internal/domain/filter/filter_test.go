package filter

import (
	"testing"

	"github.com/erp/backoffice/internal/domain/record"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func fixtures() []record.BusinessRecord {
	return []record.BusinessRecord{
		record.Session{Header: record.Header{ID: 1, UnitID: 1, OccurredOn: "2024-03-05", AssigneeName: "Ali"}, StudentName: "Mona"},
		record.Session{Header: record.Header{ID: 2, UnitID: 2, OccurredOn: "2024-04-05", AssigneeName: "Sara"}},
		record.Contract{Header: record.Header{ID: 3, UnitID: 1, OccurredOn: "2023-03-10", AssigneeName: "ali "}, ContractNumber: "CN-2023-77", Phone: "01001234567"},
		record.DailyReport{Header: record.Header{ID: 4, UnitID: 1, OccurredOn: "bad", AssigneeName: "Omar"}},
		record.Expense{Header: record.Header{ID: 5, UnitID: 1}, Title: "Rent", Year: 2024, Month: 3},
	}
}

func ids(records []record.BusinessRecord) []record.ID {
	out := make([]record.ID, len(records))
	for i, r := range records {
		out[i] = r.Meta().ID
	}
	return out
}

func TestApply(t *testing.T) {
	all := fixtures()

	tests := []struct {
		name     string
		criteria Criteria
		want     []record.ID
	}{
		{"empty criteria keep everything", Criteria{}, []record.ID{1, 2, 3, 4, 5}},
		{"unit only", Criteria{UnitID: ptr(record.ID(1))}, []record.ID{1, 3, 4, 5}},
		{"kind only", Criteria{Kind: record.KindContract}, []record.ID{3}},
		{"assignee ignores case and whitespace", Criteria{Assignee: " ALI"}, []record.ID{1, 3}},
		{"year and month both must match", Criteria{Year: ptr(2024), Month: ptr(3)}, []record.ID{1, 5}},
		{"month alone matches every year", Criteria{Month: ptr(3)}, []record.ID{1, 3, 5}},
		{"year alone matches every month", Criteria{Year: ptr(2024)}, []record.ID{1, 2, 5}},
		{"search matches contract number", Criteria{SearchText: "cn-2023"}, []record.ID{3}},
		{"search matches phone", Criteria{SearchText: "0100123"}, []record.ID{3}},
		{"search matches student", Criteria{SearchText: "MONA"}, []record.ID{1}},
		{"search matches expense title", Criteria{SearchText: "rent"}, []record.ID{5}},
		{"predicates combine with and", Criteria{UnitID: ptr(record.ID(1)), Assignee: "ali", Year: ptr(2024)}, []record.ID{1}},
		{"nothing matches", Criteria{SearchText: "zzz"}, []record.ID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(all, tt.criteria)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplyIsSideEffectFree(t *testing.T) {
	all := fixtures()
	before := ids(all)

	first := Apply(all, Criteria{Year: ptr(2024)})
	second := Apply(all, Criteria{UnitID: ptr(record.ID(2))})
	third := Apply(all, Criteria{Year: ptr(2024)})

	assert.Equal(t, before, ids(all))
	assert.Equal(t, ids(first), ids(third))
	assert.Equal(t, []record.ID{2}, ids(second))
}

func TestRecordsWithoutPeriodFailDateFilters(t *testing.T) {
	got := Apply(fixtures(), Criteria{Assignee: "Omar"})
	require.Len(t, got, 1)

	got = Apply(fixtures(), Criteria{Assignee: "Omar", Year: ptr(2024)})
	assert.Empty(t, got)
}

func TestCriteriaValidate(t *testing.T) {
	assert.NoError(t, Criteria{}.Validate())
	assert.NoError(t, Criteria{Year: ptr(2024), Month: ptr(12)}.Validate())

	err := Criteria{Month: ptr(13)}.Validate()
	assert.True(t, shared.IsValidation(err))

	err = Criteria{Year: ptr(0)}.Validate()
	assert.True(t, shared.IsValidation(err))

	err = Criteria{Kind: record.Kind("NOPE")}.Validate()
	assert.True(t, shared.IsValidation(err))
}

func TestCriteriaIsEmpty(t *testing.T) {
	assert.True(t, Criteria{}.IsEmpty())
	assert.True(t, Criteria{Assignee: "   ", SearchText: " "}.IsEmpty())
	assert.False(t, Criteria{Month: ptr(1)}.IsEmpty())
}

func TestSelectTyped(t *testing.T) {
	sessions := record.Sessions(fixtures())
	got := SelectTyped(sessions, ByUnit(2))
	require.Len(t, got, 1)
	assert.Equal(t, "Sara", got[0].AssigneeName)
}
