// Package attendance derives per-employee daily attendance from biometric
// punch-log exports.
//
// A punch log is whitespace-delimited text, one punch per line:
//
//	255 Humera 2025-07-22 18:41:57 1
//
// Lines are grouped by employee and date, the first and last punch become the
// clock-in and clock-out, and the worked hours are classified into a Status.
package attendance

import "strings"

// Status classifies a day by hours worked.
type Status string

const (
	StatusAbsent   Status = "Absent"
	StatusPartial  Status = "Partial"
	StatusPresent  Status = "Present"
	StatusOvertime Status = "Overtime"
	StatusUnknown  Status = "Unknown"
)

// AllStatuses lists statuses in display order.
var AllStatuses = []Status{StatusAbsent, StatusPartial, StatusPresent, StatusOvertime, StatusUnknown}

// ParseStatus resolves a status name case-insensitively.
func ParseStatus(s string) (Status, bool) {
	for _, st := range AllStatuses {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}

// NotAvailable is used for clock times when a day has no usable punch time.
const NotAvailable = "N/A"

// DefaultPunchType is assumed when a line carries no punch type column.
const DefaultPunchType = "1"

// RawPunch is one accepted line of a punch log.
type RawPunch struct {
	Line       int    `json:"line"`
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Date       string `json:"date"`
	Time       string `json:"time,omitempty"` // empty when the line ended after the date
	PunchType  string `json:"punchType"`
}

// Punch is a single time entry within a day.
type Punch struct {
	Time      string `json:"time,omitempty"`
	PunchType string `json:"punchType"`
}

// DailyRecord is the derived attendance for one employee on one date.
type DailyRecord struct {
	EmployeeID   string  `json:"employeeId"`
	Name         string  `json:"name"`
	Date         string  `json:"date"`
	Punches      []Punch `json:"punches"`
	ClockIn      string  `json:"clockIn"`
	ClockOut     string  `json:"clockOut"`
	HoursWorked  float64 `json:"hoursWorked"`
	TotalPunches int     `json:"totalPunches"`
	Status       Status  `json:"status"`
}

// Key returns the grouping key of the record.
func (r DailyRecord) Key() string {
	return groupKey(r.EmployeeID, r.Date)
}

func groupKey(employeeID, date string) string {
	return employeeID + "_" + date
}
