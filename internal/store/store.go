package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/timesheet"
)

// Listener observes document mutations. Listeners are invoked synchronously,
// in mutation order, with a snapshot of the document after the change; they
// must not call back into the store.
type Listener func(timesheet.Document)

// Store owns the canonical timesheet document. It is the single source of
// truth: every other component reads snapshots or submits mutations here.
// Construct exactly one per process and pass it by reference.
type Store struct {
	mu         sync.RWMutex
	doc        timesheet.Document
	ticketBase string

	// reportNameSet is flipped once the report name is edited explicitly;
	// until then display-name edits cascade into it as a convenience default.
	reportNameSet bool

	listeners []Listener
}

// New creates the document store. A non-nil snapshot restores the last
// persisted document; otherwise a fresh document with the current billing
// period is created.
func New(ticketBase string, snapshot *timesheet.Document) *Store {
	s := &Store{ticketBase: ticketBase}
	if snapshot != nil {
		s.doc = snapshot.Clone()
		s.hydrate()
	} else {
		s.doc = timesheet.NewDocument(time.Now())
	}
	return s
}

// hydrate repairs restored snapshots: rows persisted before identities were
// introduced get one assigned, and the derived month header is recomputed.
func (s *Store) hydrate() {
	for i := range s.doc.RegularTasks {
		if s.doc.RegularTasks[i].ID == "" {
			s.doc.RegularTasks[i].ID = uuid.NewString()
		}
	}
	for i := range s.doc.OvertimeTasks {
		if s.doc.OvertimeTasks[i].ID == "" {
			s.doc.OvertimeTasks[i].ID = uuid.NewString()
		}
	}
	s.doc.Employee.Month = timesheet.MonthLabel(s.doc.Employee.PeriodStart, s.doc.Employee.PeriodEnd)
}

// Subscribe registers a mutation listener
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// notify must be called with the write lock held
func (s *Store) notify() {
	snapshot := s.doc.Clone()
	for _, fn := range s.listeners {
		fn(snapshot)
	}
}

// Document returns a snapshot of the current document
func (s *Store) Document() timesheet.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// ==================== Profile Mutations ====================

// UpdateProfile applies a partial profile edit. Setting the display name
// cascades into the report name until the report name has been set
// explicitly. The month header is recomputed whenever a period date changes.
func (s *Store) UpdateProfile(req timesheet.UpdateProfileRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	newStart := s.doc.Employee.PeriodStart
	newEnd := s.doc.Employee.PeriodEnd
	if req.PeriodStart != nil {
		newStart = *req.PeriodStart
	}
	if req.PeriodEnd != nil {
		newEnd = *req.PeriodEnd
	}
	if newStart != "" && newEnd != "" && newStart > newEnd {
		return timesheet.ErrInvalidPeriod
	}

	e := &s.doc.Employee
	if req.ReportName != nil {
		e.ReportName = *req.ReportName
		s.reportNameSet = true
	}
	if req.Name != nil {
		e.Name = *req.Name
		if !s.reportNameSet {
			e.ReportName = *req.Name
		}
	}
	if req.No != nil {
		e.No = *req.No
	}
	if req.ClientSite != nil {
		e.ClientSite = *req.ClientSite
	}
	if req.WorkUnit != nil {
		e.WorkUnit = *req.WorkUnit
	}
	if req.DeptHead != nil {
		e.DeptHead = *req.DeptHead
	}
	if req.Supervisor != nil {
		e.Supervisor = *req.Supervisor
	}
	if req.Squad != nil {
		e.Squad = *req.Squad
	}
	if req.PeriodStart != nil || req.PeriodEnd != nil {
		e.PeriodStart = newStart
		e.PeriodEnd = newEnd
		e.Month = timesheet.MonthLabel(newStart, newEnd)
	}

	s.notify()
	return nil
}

// ==================== Row Management ====================

// AppendRegularTask inserts a blank regular row and returns it
func (s *Store) AppendRegularTask() timesheet.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := timesheet.NewTask()
	s.doc.RegularTasks = append(s.doc.RegularTasks, task)
	s.notify()
	return task
}

// AppendOvertimeTask inserts a blank overtime row (duration 1h) and returns it
func (s *Store) AppendOvertimeTask() timesheet.OvertimeTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := timesheet.NewOvertimeTask()
	s.doc.OvertimeTasks = append(s.doc.OvertimeTasks, task)
	s.notify()
	return task
}

// RemoveTask removes the row at the given position. Surviving rows keep
// their identities; observers addressing rows by position must tolerate the
// shift, async writers resolve by row id instead.
func (s *Store) RemoveTask(collection timesheet.Collection, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch collection {
	case timesheet.CollectionRegular:
		if index < 0 || index >= len(s.doc.RegularTasks) {
			return timesheet.ErrTaskNotFound
		}
		s.doc.RegularTasks = append(s.doc.RegularTasks[:index], s.doc.RegularTasks[index+1:]...)
	case timesheet.CollectionOvertime:
		if index < 0 || index >= len(s.doc.OvertimeTasks) {
			return timesheet.ErrTaskNotFound
		}
		s.doc.OvertimeTasks = append(s.doc.OvertimeTasks[:index], s.doc.OvertimeTasks[index+1:]...)
	default:
		return timesheet.ErrUnknownCollection
	}

	s.notify()
	return nil
}

// UpdateTask applies a partial edit to the row at the given position. A
// non-empty ticket number with no existing link derives the link from the
// configured base URL; an existing link is never overwritten.
func (s *Store) UpdateTask(collection timesheet.Collection, index int, req timesheet.UpdateTaskRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch collection {
	case timesheet.CollectionRegular:
		if index < 0 || index >= len(s.doc.RegularTasks) {
			return timesheet.ErrTaskNotFound
		}
		t := &s.doc.RegularTasks[index]
		if req.Date != nil {
			t.Date = *req.Date
		}
		if req.Description != nil {
			t.Description = *req.Description
		}
		if req.TicketNumber != nil {
			t.TicketNumber = *req.TicketNumber
		}
		if req.TicketLink != nil {
			t.TicketLink = *req.TicketLink
		}
		t.TicketNumber, t.TicketLink = timesheet.DeriveTicketLink(s.ticketBase, t.TicketNumber, t.TicketLink)
	case timesheet.CollectionOvertime:
		if index < 0 || index >= len(s.doc.OvertimeTasks) {
			return timesheet.ErrTaskNotFound
		}
		t := &s.doc.OvertimeTasks[index]
		if req.Date != nil {
			t.Date = *req.Date
		}
		if req.Description != nil {
			t.Description = *req.Description
		}
		if req.TicketNumber != nil {
			t.TicketNumber = *req.TicketNumber
		}
		if req.TicketLink != nil {
			t.TicketLink = *req.TicketLink
		}
		if req.Duration != nil {
			t.Duration = *req.Duration
		}
		if req.Remarks != nil {
			t.Remarks = *req.Remarks
		}
		t.TicketNumber, t.TicketLink = timesheet.DeriveTicketLink(s.ticketBase, t.TicketNumber, t.TicketLink)
	default:
		return timesheet.ErrUnknownCollection
	}

	s.notify()
	return nil
}

// ==================== Row Identity ====================

// TaskID resolves a position to the row's stable identity. Async operations
// capture the id at dispatch so a response never lands in the wrong row.
func (s *Store) TaskID(collection timesheet.Collection, index int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch collection {
	case timesheet.CollectionRegular:
		if index < 0 || index >= len(s.doc.RegularTasks) {
			return "", timesheet.ErrTaskNotFound
		}
		return s.doc.RegularTasks[index].ID, nil
	case timesheet.CollectionOvertime:
		if index < 0 || index >= len(s.doc.OvertimeTasks) {
			return "", timesheet.ErrTaskNotFound
		}
		return s.doc.OvertimeTasks[index].ID, nil
	}
	return "", timesheet.ErrUnknownCollection
}

// TaskDescription returns the description of the row with the given identity
func (s *Store) TaskDescription(collection timesheet.Collection, id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch collection {
	case timesheet.CollectionRegular:
		for i := range s.doc.RegularTasks {
			if s.doc.RegularTasks[i].ID == id {
				return s.doc.RegularTasks[i].Description, true
			}
		}
	case timesheet.CollectionOvertime:
		for i := range s.doc.OvertimeTasks {
			if s.doc.OvertimeTasks[i].ID == id {
				return s.doc.OvertimeTasks[i].Description, true
			}
		}
	}
	return "", false
}

// SetTaskDescription overwrites exactly the description of the row with the
// given identity. Returns ErrTaskNotFound when the row no longer exists, so
// a stale async result is dropped instead of landing elsewhere.
func (s *Store) SetTaskDescription(collection timesheet.Collection, id, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch collection {
	case timesheet.CollectionRegular:
		for i := range s.doc.RegularTasks {
			if s.doc.RegularTasks[i].ID == id {
				s.doc.RegularTasks[i].Description = text
				s.notify()
				return nil
			}
		}
	case timesheet.CollectionOvertime:
		for i := range s.doc.OvertimeTasks {
			if s.doc.OvertimeTasks[i].ID == id {
				s.doc.OvertimeTasks[i].Description = text
				s.notify()
				return nil
			}
		}
	default:
		return timesheet.ErrUnknownCollection
	}
	return timesheet.ErrTaskNotFound
}
