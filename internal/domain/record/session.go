package record

import "github.com/shopspring/decimal"

// LocationKind classifies where a session took place
type LocationKind string

const (
	LocationInternal LocationKind = "INTERNAL"
	LocationExternal LocationKind = "EXTERNAL"
)

// IsValid checks if the LocationKind is a valid value
func (l LocationKind) IsValid() bool {
	return l == LocationInternal || l == LocationExternal
}

// String returns the string representation of LocationKind
func (l LocationKind) String() string {
	return string(l)
}

// DisplayName returns a human readable name for the LocationKind
func (l LocationKind) DisplayName() string {
	switch l {
	case LocationInternal:
		return "Internal"
	case LocationExternal:
		return "External"
	default:
		return string(l)
	}
}

// Session is a single teaching session billed by the hour
type Session struct {
	Header
	StudentName   string          `json:"student_name,omitempty"`
	Subject       string          `json:"subject,omitempty"`
	DurationHours decimal.Decimal `json:"duration_hours"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	LocationKind  LocationKind    `json:"location_kind"`
	// ComputedAmount is set when upstream already priced the session. It is
	// authoritative and never recomputed.
	ComputedAmount *decimal.Decimal `json:"computed_amount,omitempty"`
}

// Kind implements BusinessRecord
func (s Session) Kind() Kind { return KindSession }

// Meta implements BusinessRecord
func (s Session) Meta() Header { return s.Header }

// Period implements BusinessRecord
func (s Session) Period() (int, int, bool) { return periodFromDate(s.OccurredOn) }

// SearchLabels implements BusinessRecord
func (s Session) SearchLabels() []string {
	return []string{s.AssigneeName, s.StudentName, s.Subject}
}

// Amount returns the session amount: the upstream figure when present,
// otherwise hours times rate.
func (s Session) Amount() decimal.Decimal {
	if s.ComputedAmount != nil {
		return *s.ComputedAmount
	}
	return s.DurationHours.Mul(s.HourlyRate)
}
