package period

import (
	"fmt"
	"strconv"

	"github.com/erp/backoffice/internal/domain/record"
)

// Key identifies a period group
type Key struct {
	UnitID record.ID   `json:"unit_id"`
	Year   int         `json:"year"`
	Month  int         `json:"month"`
	Kind   record.Kind `json:"kind"`
}

// Group is the set of records of one kind that belong to one unit and month.
// Records keep their input order and are duplicate free.
type Group struct {
	Key
	Label   string                  `json:"label"`
	Records []record.BusinessRecord `json:"records"`
}

// Len returns the number of records in the group
func (g Group) Len() int {
	return len(g.Records)
}

// IsEmpty reports whether the group holds no records
func (g Group) IsEmpty() bool {
	return len(g.Records) == 0
}

// Available lists the distinct periods found in a record set, for building
// filter controls.
type Available struct {
	Years  []int `json:"years"`  // most recent first
	Months []int `json:"months"` // January first
}

// monthNames holds localized month names, index 0 is January
var monthNames = map[string][12]string{
	"en": {"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	"ar": {"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
		"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر"},
}

// DefaultLocale is used when no or an unknown locale is requested
const DefaultLocale = "en"

// SupportedLocale reports whether month names exist for locale
func SupportedLocale(locale string) bool {
	_, ok := monthNames[locale]
	return ok
}

// MonthName returns the localized name of month (1-12)
func MonthName(locale string, month int) string {
	names, ok := monthNames[locale]
	if !ok {
		names = monthNames[DefaultLocale]
	}
	if month < 1 || month > 12 {
		return ""
	}
	return names[month-1]
}

// Label returns "<month name> <year>" in the given locale
func Label(locale string, year, month int) string {
	return fmt.Sprintf("%s %d", MonthName(locale, month), year)
}

// allPeriods labels a scope with neither year nor month
var allPeriods = map[string]string{
	"en": "All periods",
	"ar": "كل الفترات",
}

// ScopeLabel labels a partial period selection: "<month> <year>", the year
// alone, the month name alone, or the all-time label when both are nil
func ScopeLabel(locale string, year, month *int) string {
	switch {
	case year != nil && month != nil:
		return Label(locale, *year, *month)
	case year != nil:
		return strconv.Itoa(*year)
	case month != nil:
		return MonthName(locale, *month)
	}
	if label, ok := allPeriods[locale]; ok {
		return label
	}
	return allPeriods[DefaultLocale]
}
