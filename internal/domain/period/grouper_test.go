package period

import (
	"testing"

	"github.com/erp/backoffice/internal/domain/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sess(id, unit record.ID, date string) record.Session {
	return record.Session{Header: record.Header{ID: id, UnitID: unit, OccurredOn: date}}
}

func TestGroupByUnitAndMonth(t *testing.T) {
	t.Run("orders units ascending and periods most recent first", func(t *testing.T) {
		records := []record.BusinessRecord{
			sess(1, 2, "2024-01-10"),
			sess(2, 1, "2023-12-01"),
			sess(3, 1, "2024-03-05"),
			sess(4, 1, "2024-03-20"),
			sess(5, 2, "2024-02-01"),
		}

		groups := GroupByUnitAndMonth(records)

		require.Len(t, groups, 4)
		assert.Equal(t, Key{UnitID: 1, Year: 2024, Month: 3, Kind: record.KindSession}, groups[0].Key)
		assert.Equal(t, Key{UnitID: 1, Year: 2023, Month: 12, Kind: record.KindSession}, groups[1].Key)
		assert.Equal(t, Key{UnitID: 2, Year: 2024, Month: 2, Kind: record.KindSession}, groups[2].Key)
		assert.Equal(t, Key{UnitID: 2, Year: 2024, Month: 1, Kind: record.KindSession}, groups[3].Key)
		assert.Equal(t, "March 2024", groups[0].Label)
		assert.Equal(t, 2, groups[0].Len())
	})

	t.Run("every dated record lands in exactly one group", func(t *testing.T) {
		records := []record.BusinessRecord{
			sess(1, 1, "2024-03-05"),
			sess(2, 1, "bad"),
			sess(3, 2, "2024-04-01"),
			sess(4, 1, ""),
			record.Expense{Header: record.Header{ID: 9, UnitID: 1}, Year: 2024, Month: 3},
		}

		p := Split(records)

		counts := map[record.Ref]int{}
		for _, g := range p.Groups {
			for _, r := range g.Records {
				counts[record.RefOf(r)]++
			}
		}
		assert.Equal(t, 1, counts[record.Ref{Kind: record.KindSession, ID: 1}])
		assert.Equal(t, 1, counts[record.Ref{Kind: record.KindSession, ID: 3}])
		assert.Equal(t, 1, counts[record.Ref{Kind: record.KindExpense, ID: 9}])
		assert.Zero(t, counts[record.Ref{Kind: record.KindSession, ID: 2}])
		assert.Zero(t, counts[record.Ref{Kind: record.KindSession, ID: 4}])
		assert.Len(t, p.Skipped, 2)
	})

	t.Run("kinds are kept in separate groups", func(t *testing.T) {
		records := []record.BusinessRecord{
			sess(1, 1, "2024-03-05"),
			record.Contract{Header: record.Header{ID: 1, UnitID: 1, OccurredOn: "2024-03-07"}},
		}

		groups := GroupByUnitAndMonth(records)

		require.Len(t, groups, 2)
		assert.Equal(t, record.KindContract, groups[0].Kind)
		assert.Equal(t, record.KindSession, groups[1].Kind)
	})

	t.Run("duplicates are folded within a group", func(t *testing.T) {
		records := []record.BusinessRecord{
			sess(1, 1, "2024-03-05"),
			sess(1, 1, "2024-03-05"),
			sess(2, 1, "2024-03-06"),
		}

		groups := GroupByUnitAndMonth(records)

		require.Len(t, groups, 1)
		assert.Equal(t, 2, groups[0].Len())
	})

	t.Run("labels follow the requested locale", func(t *testing.T) {
		groups := GroupByUnitAndMonth([]record.BusinessRecord{sess(1, 1, "2024-03-05")}, WithLocale("ar"))
		require.Len(t, groups, 1)
		assert.Equal(t, "مارس 2024", groups[0].Label)
	})

	t.Run("unknown locale falls back to english", func(t *testing.T) {
		groups := GroupByUnitAndMonth([]record.BusinessRecord{sess(1, 1, "2024-03-05")}, WithLocale("xx"))
		assert.Equal(t, "March 2024", groups[0].Label)
	})

	t.Run("is deterministic", func(t *testing.T) {
		records := []record.BusinessRecord{
			sess(1, 3, "2024-03-05"), sess(2, 1, "2024-01-05"), sess(3, 2, "2024-02-05"), sess(4, 1, "2024-03-05"),
		}
		assert.Equal(t, GroupByUnitAndMonth(records), GroupByUnitAndMonth(records))
	})
}

func TestAvailableYearsAndMonths(t *testing.T) {
	records := []record.BusinessRecord{
		sess(1, 1, "2023-11-05"),
		sess(2, 1, "2024-03-05"),
		sess(3, 2, "2024-01-05"),
		sess(4, 2, "2025-13-01"),
		sess(5, 2, "junk"),
	}

	av := AvailableYearsAndMonths(records)

	assert.Equal(t, []int{2024, 2023}, av.Years)
	assert.Equal(t, []int{1, 3, 11}, av.Months)
}

func TestAvailableMatchesGrouping(t *testing.T) {
	records := []record.BusinessRecord{
		sess(1, 1, "2024-02-29"),
		sess(2, 1, "2023-02-29"),
		sess(3, 1, "2024-06-01T08:00:00Z"),
	}

	av := AvailableYearsAndMonths(records)
	groups := GroupByUnitAndMonth(records)

	for _, g := range groups {
		assert.Contains(t, av.Years, g.Year)
		assert.Contains(t, av.Months, g.Month)
	}
	assert.Equal(t, []int{2024}, av.Years)
	assert.Equal(t, []int{2, 6}, av.Months)
}

func TestHelpers(t *testing.T) {
	groups := GroupByUnitAndMonth([]record.BusinessRecord{
		sess(1, 2, "2024-03-05"), sess(2, 1, "2024-03-05"), sess(3, 1, "2024-02-05"),
	})

	assert.Equal(t, []record.ID{1, 2}, Units(groups))
	assert.Len(t, Records(groups), 3)
	assert.Equal(t, "", MonthName("en", 0))
}
