package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/timesheet"
)

const testTicketBase = "https://pegadaian.atlassian.net/browse/"

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func newTestStore() *Store      { return New(testTicketBase, nil) }

func TestStore_FreshDocumentDefaults(t *testing.T) {
	s := newTestStore()
	doc := s.Document()

	require.Len(t, doc.RegularTasks, 1)
	require.Len(t, doc.OvertimeTasks, 1)
	assert.NotEmpty(t, doc.RegularTasks[0].ID)
	assert.Equal(t, float64(1), doc.OvertimeTasks[0].Duration)
	assert.NotEmpty(t, doc.Employee.PeriodStart)
	assert.NotEmpty(t, doc.Employee.PeriodEnd)
	assert.NotEmpty(t, doc.Employee.Month)
}

func TestDefaultPeriod(t *testing.T) {
	tests := []struct {
		name      string
		today     time.Time
		wantStart string
		wantEnd   string
	}{
		{"before cutoff", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), "2024-01-26", "2024-02-25"},
		{"on cutoff", time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC), "2024-02-26", "2024-03-25"},
		{"january rolls into december", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), "2023-12-26", "2024-01-25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := timesheet.DefaultPeriod(tt.today)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestStore_UpdateProfile_MonthLabel(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantMonth string
	}{
		{"same month", "2024-03-01", "2024-03-31", "MARCH"},
		{"cross month", "2024-01-26", "2024-02-25", "JANUARY TO FEBRUARY"},
		{"cross year", "2023-12-26", "2024-01-25", "DECEMBER TO JANUARY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore()
			err := s.UpdateProfile(timesheet.UpdateProfileRequest{
				PeriodStart: strPtr(tt.start),
				PeriodEnd:   strPtr(tt.end),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantMonth, s.Document().Employee.Month)
		})
	}
}

func TestStore_UpdateProfile_RejectsInvertedPeriod(t *testing.T) {
	s := newTestStore()

	err := s.UpdateProfile(timesheet.UpdateProfileRequest{
		PeriodStart: strPtr("2024-03-10"),
		PeriodEnd:   strPtr("2024-03-01"),
	})

	assert.ErrorIs(t, err, timesheet.ErrInvalidPeriod)
}

func TestStore_UpdateProfile_RejectsMalformedDate(t *testing.T) {
	s := newTestStore()

	err := s.UpdateProfile(timesheet.UpdateProfileRequest{
		PeriodStart: strPtr("26-01-2024"),
	})

	assert.Error(t, err)
}

func TestStore_UpdateProfile_ReportNameCascade(t *testing.T) {
	s := newTestStore()

	require.NoError(t, s.UpdateProfile(timesheet.UpdateProfileRequest{Name: strPtr("Annas Putra")}))
	assert.Equal(t, "Annas Putra", s.Document().Employee.ReportName)

	// Explicit report name wins and stops the cascade
	require.NoError(t, s.UpdateProfile(timesheet.UpdateProfileRequest{ReportName: strPtr("A. Putra")}))
	require.NoError(t, s.UpdateProfile(timesheet.UpdateProfileRequest{Name: strPtr("Annas P. Anuraga")}))

	doc := s.Document()
	assert.Equal(t, "Annas P. Anuraga", doc.Employee.Name)
	assert.Equal(t, "A. Putra", doc.Employee.ReportName)
}

func TestStore_UpdateTask_TicketLinkDerivation(t *testing.T) {
	s := newTestStore()

	err := s.UpdateTask(timesheet.CollectionRegular, 0, timesheet.UpdateTaskRequest{
		TicketNumber: strPtr("  poj-123 "),
	})
	require.NoError(t, err)

	task := s.Document().RegularTasks[0]
	assert.Equal(t, "POJ-123", task.TicketNumber)
	assert.Equal(t, testTicketBase+"POJ-123", task.TicketLink)

	// Re-deriving with an existing link is a no-op
	err = s.UpdateTask(timesheet.CollectionRegular, 0, timesheet.UpdateTaskRequest{
		TicketNumber: strPtr("poj-456"),
	})
	require.NoError(t, err)

	task = s.Document().RegularTasks[0]
	assert.Equal(t, "poj-456", task.TicketNumber)
	assert.Equal(t, testTicketBase+"POJ-123", task.TicketLink)
}

func TestStore_UpdateTask_ExplicitLinkNotOverwritten(t *testing.T) {
	s := newTestStore()

	err := s.UpdateTask(timesheet.CollectionRegular, 0, timesheet.UpdateTaskRequest{
		TicketNumber: strPtr("POJ-1"),
		TicketLink:   strPtr("https://example.com/custom"),
	})
	require.NoError(t, err)

	task := s.Document().RegularTasks[0]
	assert.Equal(t, "https://example.com/custom", task.TicketLink)
}

func TestStore_UpdateTask_OvertimeFields(t *testing.T) {
	s := newTestStore()

	err := s.UpdateTask(timesheet.CollectionOvertime, 0, timesheet.UpdateTaskRequest{
		Date:        strPtr("2024-03-02"),
		Description: strPtr("deploy hotfix"),
		Duration:    f64Ptr(2.5),
		Remarks:     strPtr("production incident"),
	})
	require.NoError(t, err)

	task := s.Document().OvertimeTasks[0]
	assert.Equal(t, 2.5, task.Duration)
	assert.Equal(t, "production incident", task.Remarks)
	assert.True(t, timesheet.IsWeekend(task.Date))
}

func TestStore_UpdateTask_RejectsNonPositiveDuration(t *testing.T) {
	s := newTestStore()

	err := s.UpdateTask(timesheet.CollectionOvertime, 0, timesheet.UpdateTaskRequest{
		Duration: f64Ptr(0),
	})

	assert.Error(t, err)
}

func TestStore_RemoveTask_KeepsSurvivorIdentity(t *testing.T) {
	s := newTestStore()
	second := s.AppendRegularTask()
	third := s.AppendRegularTask()

	require.NoError(t, s.RemoveTask(timesheet.CollectionRegular, 0))

	doc := s.Document()
	require.Len(t, doc.RegularTasks, 2)
	assert.Equal(t, second.ID, doc.RegularTasks[0].ID)
	assert.Equal(t, third.ID, doc.RegularTasks[1].ID)
}

func TestStore_RemoveTask_OutOfRange(t *testing.T) {
	s := newTestStore()

	assert.ErrorIs(t, s.RemoveTask(timesheet.CollectionRegular, 5), timesheet.ErrTaskNotFound)
	assert.ErrorIs(t, s.RemoveTask(timesheet.CollectionOvertime, -1), timesheet.ErrTaskNotFound)
	assert.ErrorIs(t, s.RemoveTask("weekend", 0), timesheet.ErrUnknownCollection)
}

func TestStore_SetTaskDescription_GoneRow(t *testing.T) {
	s := newTestStore()
	id, err := s.TaskID(timesheet.CollectionRegular, 0)
	require.NoError(t, err)

	require.NoError(t, s.RemoveTask(timesheet.CollectionRegular, 0))

	err = s.SetTaskDescription(timesheet.CollectionRegular, id, "late result")
	assert.ErrorIs(t, err, timesheet.ErrTaskNotFound)
}

func TestStore_ListenersSeeEveryMutationInOrder(t *testing.T) {
	s := newTestStore()

	var snapshots []timesheet.Document
	s.Subscribe(func(doc timesheet.Document) {
		snapshots = append(snapshots, doc)
	})

	s.AppendRegularTask()
	require.NoError(t, s.UpdateProfile(timesheet.UpdateProfileRequest{Name: strPtr("A")}))
	require.NoError(t, s.RemoveTask(timesheet.CollectionRegular, 1))

	require.Len(t, snapshots, 3)
	assert.Len(t, snapshots[0].RegularTasks, 2)
	assert.Equal(t, "A", snapshots[1].Employee.Name)
	assert.Len(t, snapshots[2].RegularTasks, 1)
}

func TestStore_RestoreAssignsMissingRowIdentity(t *testing.T) {
	snapshot := timesheet.Document{
		Employee: timesheet.EmployeeProfile{
			PeriodStart: "2024-01-26",
			PeriodEnd:   "2024-02-25",
		},
		RegularTasks:  []timesheet.Task{{Date: "2024-01-29", Description: "legacy row"}},
		OvertimeTasks: []timesheet.OvertimeTask{{Duration: 3}},
	}

	s := New(testTicketBase, &snapshot)
	doc := s.Document()

	assert.NotEmpty(t, doc.RegularTasks[0].ID)
	assert.NotEmpty(t, doc.OvertimeTasks[0].ID)
	assert.Equal(t, "JANUARY TO FEBRUARY", doc.Employee.Month)
}
