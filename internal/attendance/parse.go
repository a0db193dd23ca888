package attendance

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"hrconsole/internal/logging"
)

// Mode selects how malformed lines are treated.
type Mode string

const (
	// ModeLenient skips malformed lines and counts them.
	ModeLenient Mode = "lenient"
	// ModeStrict fails on the first malformed line.
	ModeStrict Mode = "strict"
)

// minTokens is the fewest whitespace-delimited fields a punch line may have.
const minTokens = 5

var (
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	nameStripTarget = regexp.MustCompile(`[^\w\s]`)
)

// Options control a single parse.
type Options struct {
	Mode Mode
	// File names the source in errors and warnings.
	File string
}

// LineWarning records why a line was left out.
type LineWarning struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ParseResult contains the derived records alongside line accounting.
type ParseResult struct {
	Records  []DailyRecord `json:"records"`
	Lines    int           `json:"lines"`
	Skipped  int           `json:"skipped"`
	Warnings []LineWarning `json:"warnings,omitempty"`
}

// recoverParse turns a panic in the deferring function into a *ParseError.
func recoverParse(file string, err *error) {
	if r := recover(); r != nil {
		*err = &ParseError{File: file, Reason: fmt.Sprint(r)}
	}
}

// Parse derives daily records from punch-log text, skipping malformed lines.
func Parse(content string) []DailyRecord {
	res, err := ParseWithOptions(content, Options{Mode: ModeLenient})
	if err != nil {
		// Lenient parsing only fails on an internal fault.
		logging.ParseWarn("lenient parse failed: %v", err)
		return nil
	}
	return res.Records
}

// ParseWithOptions derives daily records from punch-log text.
// Any panic raised while processing lines is returned as a *ParseError.
func ParseWithOptions(content string, opts Options) (res *ParseResult, err error) {
	defer func() {
		if err != nil {
			res = nil
		}
	}()
	defer recoverParse(opts.File, &err)

	timer := logging.StartTimer(logging.CategoryParse, "ParseWithOptions")
	defer timer.Stop()

	res = &ParseResult{}
	groups := newGrouper()

	for i, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		res.Lines++
		lineNo := i + 1

		punch, reason := ParseLine(line)
		if reason != "" {
			if opts.Mode == ModeStrict {
				return nil, &ParseError{File: opts.File, Line: lineNo, Reason: reason}
			}
			res.Skipped++
			res.Warnings = append(res.Warnings, LineWarning{Line: lineNo, Reason: reason})
			continue
		}
		punch.Line = lineNo
		groups.add(punch)
	}

	res.Records = groups.finalize()
	logging.ParseDebug("parsed %s: lines=%d records=%d skipped=%d", opts.File, res.Lines, len(res.Records), res.Skipped)
	return res, nil
}

// ParseLine extracts a punch from one line. A non-empty reason means the
// line is malformed and carries no punch.
func ParseLine(line string) (RawPunch, string) {
	tokens := strings.Fields(line)
	if len(tokens) < minTokens {
		return RawPunch{}, fmt.Sprintf("expected at least %d fields, found %d", minTokens, len(tokens))
	}

	dateIndex := -1
	for i := 1; i < len(tokens); i++ {
		if datePattern.MatchString(tokens[i]) {
			dateIndex = i
			break
		}
	}
	if dateIndex < 0 {
		return RawPunch{}, "no YYYY-MM-DD date field"
	}

	name := strings.Join(tokens[1:dateIndex], " ")
	name = strings.TrimSpace(nameStripTarget.ReplaceAllString(name, ""))
	if name == "" {
		return RawPunch{}, "empty employee name"
	}

	p := RawPunch{
		EmployeeID: tokens[0],
		Name:       name,
		Date:       tokens[dateIndex],
		PunchType:  DefaultPunchType,
	}
	if dateIndex+1 < len(tokens) {
		p.Time = tokens[dateIndex+1]
	}
	if dateIndex+2 < len(tokens) {
		p.PunchType = tokens[dateIndex+2]
	}
	return p, ""
}

type group struct {
	employeeID string
	name       string
	date       string
	punches    []Punch
}

// grouper accumulates punches by employee and date in first-seen order.
type grouper struct {
	order []string
	byKey map[string]*group
}

func newGrouper() *grouper {
	return &grouper{byKey: make(map[string]*group)}
}

func (g *grouper) add(p RawPunch) {
	key := groupKey(p.EmployeeID, p.Date)
	grp, ok := g.byKey[key]
	if !ok {
		grp = &group{employeeID: p.EmployeeID, name: p.Name, date: p.Date}
		g.byKey[key] = grp
		g.order = append(g.order, key)
	}
	grp.punches = append(grp.punches, Punch{Time: p.Time, PunchType: p.PunchType})
}

func (g *grouper) finalize() []DailyRecord {
	records := make([]DailyRecord, 0, len(g.order))
	for _, key := range g.order {
		records = append(records, g.byKey[key].finalize())
	}
	return records
}

func (grp *group) finalize() DailyRecord {
	punches := make([]Punch, len(grp.punches))
	copy(punches, grp.punches)
	sortPunches(punches)

	clockIn, clockOut := NotAvailable, NotAvailable
	if n := len(punches); n > 0 {
		if punches[0].Time != "" {
			clockIn = punches[0].Time
		}
		if punches[n-1].Time != "" {
			clockOut = punches[n-1].Time
		}
	}

	hours := ComputeHours(clockIn, clockOut)
	return DailyRecord{
		EmployeeID:   grp.employeeID,
		Name:         grp.name,
		Date:         grp.date,
		Punches:      punches,
		ClockIn:      clockIn,
		ClockOut:     clockOut,
		HoursWorked:  hours,
		TotalPunches: len(punches),
		Status:       Classify(hours),
	}
}

// sortPunches orders punches by plain byte comparison of their times.
// "9:00" sorts after "10:00"; zero-padded device output is assumed.
// Punches without a time keep their relative order after all timed punches.
func sortPunches(punches []Punch) {
	sort.SliceStable(punches, func(i, j int) bool {
		a, b := punches[i].Time, punches[j].Time
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		return a < b
	})
}
