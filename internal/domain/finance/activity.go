package finance

import "github.com/erp/backoffice/internal/domain/record"

// ActivityTotals sums the daily report counters of a scope
type ActivityTotals struct {
	Reports     int64 `json:"reports"`
	Calls       int64 `json:"calls"`
	HotCalls    int64 `json:"hot_calls"`
	WalkIns     int64 `json:"walk_ins"`
	UnitLeads   int64 `json:"unit_leads"`
	OnlineLeads int64 `json:"online_leads"`
	ExtraLeads  int64 `json:"extra_leads"`
	Visits      int64 `json:"visits"`
}

// TotalLeads sums every lead counter
func (a ActivityTotals) TotalLeads() int64 {
	return a.UnitLeads + a.OnlineLeads + a.ExtraLeads
}

func (a *ActivityTotals) add(d record.DailyReport) {
	a.Reports++
	a.Calls += d.Calls
	a.HotCalls += d.HotCalls
	a.WalkIns += d.WalkIns
	a.UnitLeads += d.UnitLeads
	a.OnlineLeads += d.OnlineLeads
	a.ExtraLeads += d.ExtraLeads
	a.Visits += d.TotalVisits()
}

// AggregateActivity sums deduplicated daily reports
func AggregateActivity(reports []record.DailyReport) ActivityTotals {
	var t ActivityTotals
	for _, d := range record.NormalizeDailyReports(reports) {
		t.add(d)
	}
	return t
}

// ActivityStat is the activity rollup of one staff member
type ActivityStat struct {
	Key  record.AssigneeKey `json:"key"`
	Name string             `json:"name"`
	ActivityTotals
}

// ActivityByAssignee rolls daily reports up per assignee in first-seen order
func ActivityByAssignee(reports []record.DailyReport) []ActivityStat {
	index := make(map[record.AssigneeKey]int)
	var stats []ActivityStat
	for _, d := range record.NormalizeDailyReports(reports) {
		key := record.NormalizeAssignee(d.AssigneeName)
		i, ok := index[key]
		if !ok {
			i = len(stats)
			index[key] = i
			stats = append(stats, ActivityStat{Key: key, Name: record.DisplayAssignee(d.AssigneeName)})
		}
		stats[i].add(d)
	}
	return stats
}
