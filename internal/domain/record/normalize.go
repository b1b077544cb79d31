package record

// Normalize drops records whose identity has already been seen, keeping the
// first occurrence and the input order. Identity is (Kind, ID); records with
// an unknown ID are always kept. The input slice is not modified.
func Normalize(records []BusinessRecord) []BusinessRecord {
	seen := make(map[Ref]struct{}, len(records))
	out := make([]BusinessRecord, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		ref := RefOf(r)
		if ref.ID.Known() {
			if _, dup := seen[ref]; dup {
				continue
			}
			seen[ref] = struct{}{}
		}
		out = append(out, r)
	}
	return out
}

// NormalizeExpenses is Normalize for a typed expense slice
func NormalizeExpenses(expenses []Expense) []Expense {
	return dedupe(expenses)
}

// NormalizeSessions is Normalize for a typed session slice
func NormalizeSessions(sessions []Session) []Session {
	return dedupe(sessions)
}

// NormalizeContracts is Normalize for a typed contract slice
func NormalizeContracts(contracts []Contract) []Contract {
	return dedupe(contracts)
}

// NormalizeDailyReports is Normalize for a typed daily report slice
func NormalizeDailyReports(reports []DailyReport) []DailyReport {
	return dedupe(reports)
}

func dedupe[T BusinessRecord](items []T) []T {
	seen := make(map[ID]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		id := item.Meta().ID
		if id.Known() {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
		}
		out = append(out, item)
	}
	return out
}

// Of converts a typed slice to BusinessRecords
func Of[T BusinessRecord](items []T) []BusinessRecord {
	out := make([]BusinessRecord, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// Sessions projects the sessions out of a mixed record slice
func Sessions(records []BusinessRecord) []Session {
	return project[Session](records)
}

// Contracts projects the contracts out of a mixed record slice
func Contracts(records []BusinessRecord) []Contract {
	return project[Contract](records)
}

// DailyReports projects the daily reports out of a mixed record slice
func DailyReports(records []BusinessRecord) []DailyReport {
	return project[DailyReport](records)
}

// Expenses projects the expenses out of a mixed record slice
func Expenses(records []BusinessRecord) []Expense {
	return project[Expense](records)
}

func project[T BusinessRecord](records []BusinessRecord) []T {
	var out []T
	for _, r := range records {
		if v, ok := r.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
