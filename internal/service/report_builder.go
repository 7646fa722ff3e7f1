package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/model"
)

const (
	// DayLayout wire form of a calendar day
	DayLayout = "2006-01-02"
	// ClockLayout 12-hour clock used in reports and the log table
	ClockLayout = "03:04:05 PM"

	// UnknownBucket groups events that carry no employee number.
	UnknownBucket = "UNKNOWN"
	// NotAvailable placeholder for an unresolved name or number
	NotAvailable = "N/A"

	timeSeparator = ", "
	noJacket      = "-"
)

// ── Day ──

// Day is a calendar date without time of day.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDay parses YYYY-MM-DD.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, strings.TrimSpace(s))
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DayOf(t, time.UTC), nil
}

// DayOf is the calendar day t falls on in loc.
func DayOf(t time.Time, loc *time.Location) Day {
	y, m, d := t.In(loc).Date()
	return Day{Year: y, Month: m, Day: d}
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Contains compares calendar days in loc, so an event at 23:50 local that is
// already tomorrow in UTC still belongs to today.
func (d Day) Contains(t time.Time, loc *time.Location) bool {
	return DayOf(t, loc) == d
}

// ── rows ──

// ReportRow one employee's punches for the day. Times are in the report's
// location, oldest first.
type ReportRow struct {
	EmployeeNo   string
	EmployeeName string
	Date         string
	TimeIn       []time.Time
	TimeOut      []time.Time
	JacketSize   string
}

// TimeInText Time-In list as shown in the report
func (r ReportRow) TimeInText() string { return joinClock(r.TimeIn) }

// TimeOutText Time-Out list as shown in the report
func (r ReportRow) TimeOutText() string { return joinClock(r.TimeOut) }

func joinClock(ts []time.Time) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.Format(ClockLayout)
	}
	return strings.Join(parts, timeSeparator)
}

// DayLog a raw event of the day enriched for display
type DayLog struct {
	Log        model.AttendanceLog
	JacketSize string
	Latest     bool
}

// ReportConfig report building options
type ReportConfig struct {
	Location      *time.Location
	IncludeJacket bool
	// SplitAnonymous gives every event without an employee number its own row
	// instead of sharing the UNKNOWN row.
	SplitAnonymous bool
}

// ReportBuilder turns a category's log into per-employee day rows.
// It never modifies its inputs.
type ReportBuilder struct {
	cfg ReportConfig
}

// NewReportBuilder creates a ReportBuilder; a nil Location means time.Local.
func NewReportBuilder(cfg ReportConfig) *ReportBuilder {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &ReportBuilder{cfg: cfg}
}

// Location zone the builder buckets days in
func (b *ReportBuilder) Location() *time.Location {
	return b.cfg.Location
}

// ────────────────────── Build ──────────────────────

// Build groups the day's events by employee number in discovery order.
func (b *ReportBuilder) Build(logs []model.AttendanceLog, day Day, roster *model.Roster) []ReportRow {
	events := b.filterDay(logs, day)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	type group struct {
		no         string
		row        ReportRow
		loggedName string
	}
	var order []string
	groups := make(map[string]*group)

	for _, ev := range events {
		no := model.NormalizeEmployeeNo(ev.EmployeeID)
		key := no
		if no == "" {
			key = UnknownBucket
			if b.cfg.SplitAnonymous {
				key = UnknownBucket + ":" + ev.ID
			}
		}

		g, ok := groups[key]
		if !ok {
			g = &group{no: no, row: ReportRow{EmployeeNo: no, Date: day.String()}}
			if no == "" {
				g.row.EmployeeNo = NotAvailable
			}
			groups[key] = g
			order = append(order, key)
		}

		if g.loggedName == "" {
			g.loggedName = strings.TrimSpace(ev.Name)
		}

		ts := ev.Timestamp.In(b.cfg.Location)
		switch ev.Type {
		case model.PunchIn:
			g.row.TimeIn = append(g.row.TimeIn, ts)
		case model.PunchOut:
			g.row.TimeOut = append(g.row.TimeOut, ts)
		}
	}

	rows := make([]ReportRow, 0, len(order))
	for _, key := range order {
		g := groups[key]
		row := g.row

		emp, found := roster.Lookup(g.no)
		switch {
		case found && strings.TrimSpace(emp.Name) != "":
			row.EmployeeName = strings.TrimSpace(emp.Name)
		case g.loggedName != "":
			row.EmployeeName = g.loggedName
		default:
			row.EmployeeName = NotAvailable
		}

		if b.cfg.IncludeJacket && found {
			row.JacketSize = emp.JacketSize
		}
		rows = append(rows, row)
	}
	return rows
}

// ────────────────────── DayLogs ──────────────────────

// DayLogs lists the day's raw events newest first. The first row is marked
// as the latest punch; jackets that cannot be resolved show as "-".
func (b *ReportBuilder) DayLogs(logs []model.AttendanceLog, day Day, roster *model.Roster) []DayLog {
	events := b.filterDay(logs, day)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})

	out := make([]DayLog, len(events))
	for i, ev := range events {
		ev.Timestamp = ev.Timestamp.In(b.cfg.Location)
		jacket := noJacket
		if emp, ok := roster.Lookup(ev.EmployeeID); ok && emp.JacketSize != "" {
			jacket = emp.JacketSize
		}
		out[i] = DayLog{Log: ev, JacketSize: jacket, Latest: i == 0}
	}
	return out
}

func (b *ReportBuilder) filterDay(logs []model.AttendanceLog, day Day) []model.AttendanceLog {
	out := make([]model.AttendanceLog, 0, len(logs))
	for _, l := range logs {
		if day.Contains(l.Timestamp, b.cfg.Location) {
			out = append(out, l)
		}
	}
	return out
}
