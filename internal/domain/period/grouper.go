package period

import (
	"cmp"
	"slices"

	"github.com/erp/backoffice/internal/domain/record"
)

type options struct {
	locale string
}

// Option configures grouping
type Option func(*options)

// WithLocale selects the language of group labels
func WithLocale(locale string) Option {
	return func(o *options) {
		if SupportedLocale(locale) {
			o.locale = locale
		}
	}
}

// Partition is the outcome of grouping: the groups plus the records that
// could not be placed in any period.
type Partition struct {
	Groups  []Group
	Skipped []record.BusinessRecord
}

// GroupByUnitAndMonth partitions records by (unit, year, month, kind).
// Records without a derivable period are dropped silently; use Split to
// see them.
func GroupByUnitAndMonth(records []record.BusinessRecord, opts ...Option) []Group {
	return Split(records, opts...).Groups
}

// Split groups records like GroupByUnitAndMonth and also returns the records
// that were skipped because their period could not be derived.
//
// Groups are ordered by unit ascending, then most recent period first, then
// kind. Input is normalized first so every group is duplicate free.
func Split(records []record.BusinessRecord, opts ...Option) Partition {
	o := options{locale: DefaultLocale}
	for _, opt := range opts {
		opt(&o)
	}

	index := make(map[Key]int)
	var p Partition
	for _, r := range record.Normalize(records) {
		year, month, ok := r.Period()
		if !ok {
			p.Skipped = append(p.Skipped, r)
			continue
		}
		key := Key{UnitID: r.Meta().UnitID, Year: year, Month: month, Kind: r.Kind()}
		i, exists := index[key]
		if !exists {
			i = len(p.Groups)
			index[key] = i
			p.Groups = append(p.Groups, Group{Key: key, Label: Label(o.locale, year, month)})
		}
		p.Groups[i].Records = append(p.Groups[i].Records, r)
	}

	slices.SortStableFunc(p.Groups, func(a, b Group) int {
		return compareKeys(a.Key, b.Key)
	})
	return p
}

func compareKeys(a, b Key) int {
	if c := cmp.Compare(a.UnitID, b.UnitID); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Year, a.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Month, a.Month); c != 0 {
		return c
	}
	return cmp.Compare(a.Kind, b.Kind)
}

// AvailableYearsAndMonths returns the distinct years (descending) and months
// (ascending) present in records. It derives periods exactly as grouping does.
func AvailableYearsAndMonths(records []record.BusinessRecord) Available {
	years := make(map[int]struct{})
	months := make(map[int]struct{})
	for _, r := range records {
		if r == nil {
			continue
		}
		year, month, ok := r.Period()
		if !ok {
			continue
		}
		years[year] = struct{}{}
		months[month] = struct{}{}
	}

	av := Available{Years: make([]int, 0, len(years)), Months: make([]int, 0, len(months))}
	for y := range years {
		av.Years = append(av.Years, y)
	}
	for m := range months {
		av.Months = append(av.Months, m)
	}
	slices.SortFunc(av.Years, func(a, b int) int { return cmp.Compare(b, a) })
	slices.Sort(av.Months)
	return av
}

// Units returns the distinct unit IDs across groups, ascending
func Units(groups []Group) []record.ID {
	var ids []record.ID
	for _, g := range groups {
		if !slices.Contains(ids, g.UnitID) {
			ids = append(ids, g.UnitID)
		}
	}
	slices.Sort(ids)
	return ids
}

// Records flattens groups back into a record slice in group order
func Records(groups []Group) []record.BusinessRecord {
	var out []record.BusinessRecord
	for _, g := range groups {
		out = append(out, g.Records...)
	}
	return out
}
