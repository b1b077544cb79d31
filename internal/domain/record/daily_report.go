package record

// Visit is an outbound visit logged in a daily report
type Visit struct {
	TargetUnitID ID     `json:"target_unit_id"`
	Note         string `json:"note,omitempty"`
}

// DailyReport is one staff member's activity counters for one day
type DailyReport struct {
	Header
	Calls       int64   `json:"calls"`
	HotCalls    int64   `json:"hot_calls"`
	WalkIns     int64   `json:"walk_ins"`
	UnitLeads   int64   `json:"unit_leads"`
	OnlineLeads int64   `json:"online_leads"`
	ExtraLeads  int64   `json:"extra_leads"`
	VisitCount  int64   `json:"visit_count"`
	Visits      []Visit `json:"visits,omitempty"`
}

// Kind implements BusinessRecord
func (d DailyReport) Kind() Kind { return KindDailyReport }

// Meta implements BusinessRecord
func (d DailyReport) Meta() Header { return d.Header }

// Period implements BusinessRecord
func (d DailyReport) Period() (int, int, bool) { return periodFromDate(d.OccurredOn) }

// SearchLabels implements BusinessRecord
func (d DailyReport) SearchLabels() []string {
	labels := make([]string, 0, len(d.Visits)+1)
	labels = append(labels, d.AssigneeName)
	for _, v := range d.Visits {
		labels = append(labels, v.Note)
	}
	return labels
}

// TotalLeads sums every lead counter
func (d DailyReport) TotalLeads() int64 {
	return d.UnitLeads + d.OnlineLeads + d.ExtraLeads
}

// TotalVisits prefers the itemized visit list and falls back to the counter
func (d DailyReport) TotalVisits() int64 {
	if len(d.Visits) > 0 {
		return int64(len(d.Visits))
	}
	return d.VisitCount
}
