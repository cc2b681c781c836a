package timesheet

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Collection identifies which task list a row belongs to
type Collection string

const (
	CollectionRegular  Collection = "regular"
	CollectionOvertime Collection = "overtime"
)

// Valid reports whether the collection name is one of the known task lists
func (c Collection) Valid() bool {
	return c == CollectionRegular || c == CollectionOvertime
}

// ExportType identifies which artifact the backend renders from a document
type ExportType string

const (
	ExportTimesheet ExportType = "timesheet"
	ExportMandays   ExportType = "mandays"
)

func (t ExportType) Valid() bool {
	return t == ExportTimesheet || t == ExportMandays
}

// EmployeeProfile holds the header block of the timesheet document.
// Month is derived from the period dates and never set directly.
type EmployeeProfile struct {
	Name        string `json:"name"`
	ReportName  string `json:"reportName"`
	No          string `json:"no"`
	ClientSite  string `json:"clientSite"`
	WorkUnit    string `json:"workUnit"`
	DeptHead    string `json:"deptHead"`
	Supervisor  string `json:"supervisor"`
	Squad       string `json:"squad"`
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
	Month       string `json:"month"`
}

// Task is one row of the regular task list
type Task struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Description  string `json:"description"`
	TicketNumber string `json:"ticketNumber"`
	TicketLink   string `json:"ticketLink"`
}

// OvertimeTask is one row of the overtime task list. Duration is in hours.
type OvertimeTask struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	Description  string  `json:"description"`
	Duration     float64 `json:"duration"`
	TicketNumber string  `json:"ticketNumber,omitempty"`
	TicketLink   string  `json:"ticketLink"`
	Remarks      string  `json:"remarks"`
}

// Document is the unit of persistence and of payment-intent snapshotting
type Document struct {
	Employee      EmployeeProfile `json:"employee"`
	RegularTasks  []Task          `json:"regularTasks"`
	OvertimeTasks []OvertimeTask  `json:"overtimeTasks"`
}

// NewTask returns a blank regular row with a generated identity
func NewTask() Task {
	return Task{ID: uuid.NewString()}
}

// NewOvertimeTask returns a blank overtime row with a generated identity.
// Duration defaults to one hour.
func NewOvertimeTask() OvertimeTask {
	return OvertimeTask{ID: uuid.NewString(), Duration: 1}
}

// NewDocument returns a fresh document with one blank row in each list and
// the current billing period (26th through the 25th) pre-filled.
func NewDocument(now time.Time) Document {
	doc := Document{
		RegularTasks:  []Task{NewTask()},
		OvertimeTasks: []OvertimeTask{NewOvertimeTask()},
	}
	start, end := DefaultPeriod(now)
	doc.Employee.PeriodStart = start
	doc.Employee.PeriodEnd = end
	doc.Employee.Month = MonthLabel(start, end)
	return doc
}

// DefaultPeriod returns the 26th-to-25th window containing the given day
func DefaultPeriod(now time.Time) (start, end string) {
	y, m, d := now.Date()
	var s, e time.Time
	if d >= 26 {
		s = time.Date(y, m, 26, 0, 0, 0, 0, now.Location())
		e = time.Date(y, m+1, 25, 0, 0, 0, 0, now.Location())
	} else {
		s = time.Date(y, m-1, 26, 0, 0, 0, 0, now.Location())
		e = time.Date(y, m, 25, 0, 0, 0, 0, now.Location())
	}
	return s.Format("2006-01-02"), e.Format("2006-01-02")
}

// MonthName returns the upper-case English month name of a YYYY-MM-DD date,
// or an empty string when the date is absent or unparseable.
func MonthName(dateStr string) string {
	if dateStr == "" {
		return ""
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return ""
	}
	return strings.ToUpper(date.Month().String())
}

// MonthLabel derives the document's month header from the period dates:
// a single month name when both dates fall in the same month, otherwise
// "START TO END".
func MonthLabel(periodStart, periodEnd string) string {
	start := MonthName(periodStart)
	end := MonthName(periodEnd)
	if start == end {
		return start
	}
	return start + " TO " + end
}

// IsWeekend reports whether a YYYY-MM-DD date falls on Saturday or Sunday
func IsWeekend(dateStr string) bool {
	if dateStr == "" {
		return false
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return false
	}
	day := date.Weekday()
	return day == time.Saturday || day == time.Sunday
}

// DeriveTicketLink derives a ticket link from a ticket number. The number is
// normalized to upper case without surrounding whitespace; the link is only
// derived when the number is non-empty and no link exists yet. Derivation is
// one-way: an existing link is never overwritten.
func DeriveTicketLink(baseURL, number, link string) (normalizedNumber, derivedLink string) {
	clean := strings.ToUpper(strings.TrimSpace(number))
	if clean == "" || link != "" {
		return number, link
	}
	return clean, baseURL + clean
}

// Clone returns a deep copy of the document
func (d Document) Clone() Document {
	out := d
	out.RegularTasks = make([]Task, len(d.RegularTasks))
	copy(out.RegularTasks, d.RegularTasks)
	out.OvertimeTasks = make([]OvertimeTask, len(d.OvertimeTasks))
	copy(out.OvertimeTasks, d.OvertimeTasks)
	return out
}
