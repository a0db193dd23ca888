package attendance

import "strings"

// Filters narrow a record list. Zero values match everything.
type Filters struct {
	Status     []Status `json:"status,omitempty"`
	EmployeeID string   `json:"employeeId,omitempty"`
	DateFrom   string   `json:"dateFrom,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DateTo     string   `json:"dateTo,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Query is a free-text search term plus filters.
type Query struct {
	SearchTerm string  `json:"searchTerm"`
	Filters    Filters `json:"filters"`
}

// Match reports whether a record satisfies the query. The search term is
// matched case-insensitively against employee ID and name; dates are
// compared as ISO strings, both bounds inclusive.
func (q Query) Match(r DailyRecord) bool {
	if term := strings.TrimSpace(q.SearchTerm); term != "" {
		term = strings.ToLower(term)
		if !strings.Contains(strings.ToLower(r.EmployeeID), term) &&
			!strings.Contains(strings.ToLower(r.Name), term) {
			return false
		}
	}

	f := q.Filters
	if f.EmployeeID != "" && r.EmployeeID != f.EmployeeID {
		return false
	}
	if f.DateFrom != "" && r.Date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && r.Date > f.DateTo {
		return false
	}
	if len(f.Status) > 0 {
		found := false
		for _, s := range f.Status {
			if r.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Apply returns the records matching the query, preserving order.
func (q Query) Apply(records []DailyRecord) []DailyRecord {
	out := make([]DailyRecord, 0, len(records))
	for _, r := range records {
		if q.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// IsZero reports whether the query matches everything.
func (q Query) IsZero() bool {
	f := q.Filters
	return strings.TrimSpace(q.SearchTerm) == "" && len(f.Status) == 0 &&
		f.EmployeeID == "" && f.DateFrom == "" && f.DateTo == ""
}

// StatusCounts tallies records per status.
type StatusCounts map[Status]int

// Summarize counts records per status.
func Summarize(records []DailyRecord) StatusCounts {
	counts := make(StatusCounts, len(AllStatuses))
	for _, r := range records {
		counts[r.Status]++
	}
	return counts
}

// TotalHours sums HoursWorked across records.
func TotalHours(records []DailyRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.HoursWorked
	}
	return total
}
