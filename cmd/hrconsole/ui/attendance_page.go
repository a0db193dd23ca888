package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hrconsole/internal/attendance"
	"hrconsole/internal/logging"
)

// StatusFilterMode selects which statuses the browser shows.
// Zero shows every status; i > 0 shows attendance.AllStatuses[i-1].
type StatusFilterMode int

// FilterModeAll shows every status.
const FilterModeAll StatusFilterMode = 0

var filterModeCount = StatusFilterMode(len(attendance.AllStatuses) + 1)

// Label returns the tab label for the mode.
func (m StatusFilterMode) Label() string {
	if m <= FilterModeAll || m >= filterModeCount {
		return "All"
	}
	return string(attendance.AllStatuses[m-1])
}

// Status returns the status the mode selects, or false for All.
func (m StatusFilterMode) Status() (attendance.Status, bool) {
	if m <= FilterModeAll || m >= filterModeCount {
		return "", false
	}
	return attendance.AllStatuses[m-1], true
}

// AttendancePageModel is the interactive attendance table.
type AttendancePageModel struct {
	width  int
	height int
	table  table.Model

	// Data
	records  []attendance.DailyRecord
	filtered []attendance.DailyRecord
	base     attendance.Query

	// Filter state
	filterInput   textinput.Model
	filterMode    StatusFilterMode
	filterFocused bool

	styles Styles
}

// NewAttendancePageModel creates an empty attendance browser.
func NewAttendancePageModel(styles Styles) AttendancePageModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Employee ID", Width: 12},
			{Title: "Name", Width: 20},
			{Title: "Date", Width: 10},
			{Title: "Clock In", Width: 9},
			{Title: "Clock Out", Width: 9},
			{Title: "Hours", Width: 7},
			{Title: "Status", Width: 9},
			{Title: "Punches", Width: 7},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	fi := textinput.New()
	fi.Placeholder = "Filter by employee ID or name..."
	fi.CharLimit = 64
	fi.Width = 40

	return AttendancePageModel{
		table:       t,
		filterInput: fi,
		filterMode:  FilterModeAll,
		filtered:    make([]attendance.DailyRecord, 0),
		styles:      styles,
	}
}

// Init initializes the model.
func (m AttendancePageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m AttendancePageModel) Update(msg tea.Msg) (AttendancePageModel, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "/":
			if !m.filterFocused {
				m.filterFocused = true
				m.filterInput.Focus()
				return m, nil
			}
		case "tab":
			if !m.filterFocused {
				m.filterMode = (m.filterMode + 1) % filterModeCount
				m.applyFilter()
				return m, nil
			}
		case "shift+tab":
			if !m.filterFocused {
				m.filterMode = (m.filterMode + filterModeCount - 1) % filterModeCount
				m.applyFilter()
				return m, nil
			}
		case "esc", "enter":
			if m.filterFocused {
				m.filterFocused = false
				m.filterInput.Blur()
				m.applyFilter()
				return m, nil
			}
		}
	}

	if m.filterFocused {
		m.filterInput, cmd = m.filterInput.Update(msg)
		cmds = append(cmds, cmd)
		m.applyFilter()
	} else {
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// Query returns the query currently applied. The filter box starts out holding
// the base search term, so its text replaces that term; a status tab other
// than All replaces the base status list. Date filters always come from base.
func (m AttendancePageModel) Query() attendance.Query {
	q := m.base
	q.Filters.Status = append([]attendance.Status(nil), m.base.Filters.Status...)
	if text := strings.TrimSpace(m.filterInput.Value()); text != "" {
		q.SearchTerm = text
	}
	if s, ok := m.filterMode.Status(); ok {
		q.Filters.Status = []attendance.Status{s}
	}
	return q
}

// applyFilter recomputes the visible rows.
func (m *AttendancePageModel) applyFilter() {
	q := m.Query()
	m.filtered = q.Apply(m.records)
	logging.UIDebug("filter %q mode=%s: %d of %d", q.SearchTerm, m.filterMode.Label(), len(m.filtered), len(m.records))
	m.updateTableRows()
}

func (m *AttendancePageModel) updateTableRows() {
	rows := make([]table.Row, 0, len(m.filtered))
	for _, r := range m.filtered {
		rows = append(rows, table.Row{
			r.EmployeeID,
			r.Name,
			r.Date,
			r.ClockIn,
			r.ClockOut,
			fmt.Sprintf("%.2f", r.HoursWorked),
			string(r.Status),
			fmt.Sprintf("%d", r.TotalPunches),
		})
	}
	m.table.SetRows(rows)
}

// Filtered returns the visible records.
func (m AttendancePageModel) Filtered() []attendance.DailyRecord {
	return m.filtered
}

// Selected returns the record under the cursor.
func (m AttendancePageModel) Selected() (attendance.DailyRecord, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.filtered) {
		return attendance.DailyRecord{}, false
	}
	return m.filtered[i], true
}

// ClearFilter clears the filter text and resets to show all statuses.
func (m *AttendancePageModel) ClearFilter() {
	m.filterInput.SetValue("")
	m.filterMode = FilterModeAll
	m.applyFilter()
}

// SetFilterMode sets the filter mode directly.
func (m *AttendancePageModel) SetFilterMode(mode StatusFilterMode) {
	m.filterMode = mode
	m.applyFilter()
}

// View renders the page.
func (m AttendancePageModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render(" Attendance ") + "\n\n")
	sb.WriteString(RenderCounts(m.styles, attendance.Summarize(m.filtered)) + "\n\n")
	sb.WriteString(m.renderFilterBar())
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Content.Render(m.table.View()))

	if len(m.filtered) != len(m.records) {
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("\nShowing %d of %d records", len(m.filtered), len(m.records))))
	}
	if r, ok := m.Selected(); ok && len(r.Punches) > 0 {
		times := make([]string, 0, len(r.Punches))
		for _, p := range r.Punches {
			t := p.Time
			if t == "" {
				t = attendance.NotAvailable
			}
			times = append(times, t)
		}
		sb.WriteString("\n" + m.styles.StatusBadge(r.Status) + " " + m.styles.Muted.Render("Punches: "+strings.Join(times, ", ")))
	}

	return sb.String()
}

func (m AttendancePageModel) renderFilterBar() string {
	var sb strings.Builder

	filterStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Theme.Border).
		Padding(0, 1)
	if m.filterFocused {
		filterStyle = filterStyle.BorderForeground(m.styles.Theme.Primary)
	}

	sb.WriteString(filterStyle.Render(m.filterInput.View()))
	sb.WriteString("  ")

	for mode := FilterModeAll; mode < filterModeCount; mode++ {
		style := m.styles.Muted
		if m.filterMode == mode {
			style = lipgloss.NewStyle().
				Foreground(m.styles.Theme.Primary).
				Bold(true).
				Underline(true)
		}
		sb.WriteString(style.Render(mode.Label()))
		sb.WriteString("  ")
	}

	sb.WriteString("  ")
	sb.WriteString(m.styles.Muted.Render("[/] Filter  [Tab] Status  [q] Quit"))

	return sb.String()
}

// SetSize updates the size.
func (m *AttendancePageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.table.SetWidth(w - 4)
	if h > 14 {
		m.table.SetHeight(h - 14)
	}
}

// UpdateContent replaces the records and base query. The filter box is reset
// to the base search term.
func (m *AttendancePageModel) UpdateContent(records []attendance.DailyRecord, base attendance.Query) {
	m.records = records
	m.base = base
	m.filterInput.SetValue(base.SearchTerm)
	m.filterInput.CursorEnd()
	m.applyFilter()
}

// Browser is the top-level bubbletea program wrapping the attendance page.
type Browser struct {
	page AttendancePageModel
}

// NewBrowser creates a browser over records, starting from base.
func NewBrowser(styles Styles, records []attendance.DailyRecord, base attendance.Query) Browser {
	page := NewAttendancePageModel(styles)
	page.UpdateContent(records, base)
	return Browser{page: page}
}

// Init implements tea.Model.
func (b Browser) Init() tea.Cmd { return b.page.Init() }

// Update implements tea.Model.
func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.page.SetSize(msg.Width, msg.Height)
		return b, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return b, tea.Quit
		case "q":
			if !b.page.filterFocused {
				return b, tea.Quit
			}
		}
	}
	var cmd tea.Cmd
	b.page, cmd = b.page.Update(msg)
	return b, cmd
}

// View implements tea.Model.
func (b Browser) View() string { return b.page.View() }

// Page returns the wrapped page.
func (b Browser) Page() AttendancePageModel { return b.page }
