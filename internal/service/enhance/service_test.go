package enhance

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-core-go/internal/pkg/inflight"
	"github.com/cmlabs-hris/timesheet-core-go/internal/store"
)

type fakeAPI struct {
	mu      sync.Mutex
	calls   []string
	resp    string
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeAPI) EnhanceDescription(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return "", f.err
	}
	return f.resp, nil
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func strPtr(s string) *string { return &s }

func newTestService(api API) (*Service, *store.Store) {
	docs := store.New("https://pegadaian.atlassian.net/browse/", nil)
	return NewService(api, docs, inflight.NewRegistry(), testLogger()), docs
}

func TestService_EnhanceRewritesDescription(t *testing.T) {
	api := &fakeAPI{resp: "Fixed a critical bug in the login flow"}
	svc, docs := newTestService(api)

	require.NoError(t, docs.UpdateTask(timesheet.CollectionRegular, 0, timesheet.UpdateTaskRequest{
		Description: strPtr("fix bug"),
	}))

	require.NoError(t, svc.Enhance(context.Background(), timesheet.CollectionRegular, 0))

	doc := docs.Document()
	assert.Equal(t, "Fixed a critical bug in the login flow", doc.RegularTasks[0].Description)
	assert.Equal(t, []string{"fix bug"}, api.calls)
	// The overtime row stays untouched.
	assert.Empty(t, doc.OvertimeTasks[0].Description)
	assert.False(t, svc.RowBusy(timesheet.CollectionRegular, doc.RegularTasks[0].ID))
}

func TestService_EmptyDescriptionIsNoOp(t *testing.T) {
	api := &fakeAPI{resp: "should not be called"}
	svc, docs := newTestService(api)

	require.NoError(t, docs.UpdateTask(timesheet.CollectionRegular, 0, timesheet.UpdateTaskRequest{
		Description: strPtr("   "),
	}))

	require.NoError(t, svc.Enhance(context.Background(), timesheet.CollectionRegular, 0))
	assert.Zero(t, api.callCount())
	assert.Equal(t, "   ", docs.Document().RegularTasks[0].Description)
}

func TestService_MissingRowIsNoOp(t *testing.T) {
	api := &fakeAPI{resp: "should not be called"}
	svc, _ := newTestService(api)

	require.NoError(t, svc.Enhance(context.Background(), timesheet.CollectionRegular, 99))
	assert.Zero(t, api.callCount())
}

func TestService_UnknownCollectionIsAnError(t *testing.T) {
	api := &fakeAPI{}
	svc, _ := newTestService(api)

	err := svc.Enhance(context.Background(), timesheet.Collection("weekend"), 0)
	assert.ErrorIs(t, err, timesheet.ErrUnknownCollection)
}

func TestService_SameRowSecondCallRejected(t *testing.T) {
	api := &fakeAPI{
		resp:    "rewritten",
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	svc, docs := newTestService(api)
	require.NoError(t, docs.UpdateTask(timesheet.CollectionRegular, 0, timesheet.UpdateTaskRequest{
		Description: strPtr("fix bug"),
	}))
	rowID := docs.Document().RegularTasks[0].ID

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- svc.Enhance(context.Background(), timesheet.CollectionRegular, 0)
	}()
	<-api.started
	assert.True(t, svc.RowBusy(timesheet.CollectionRegular, rowID))

	err := svc.Enhance(context.Background(), timesheet.CollectionRegular, 0)
	assert.ErrorIs(t, err, timesheet.ErrEnhancementInFlight)

	close(api.release)
	require.NoError(t, <-firstDone)
	assert.Equal(t, 1, api.callCount())
	assert.False(t, svc.RowBusy(timesheet.CollectionRegular, rowID))
}

func TestService_ResultDroppedWhenRowRemovedMidFlight(t *testing.T) {
	api := &fakeAPI{
		resp:    "rewritten",
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	svc, docs := newTestService(api)

	survivor := docs.AppendRegularTask()
	require.NoError(t, docs.UpdateTask(timesheet.CollectionRegular, 0, timesheet.UpdateTaskRequest{
		Description: strPtr("fix bug"),
	}))
	require.NoError(t, docs.UpdateTask(timesheet.CollectionRegular, 1, timesheet.UpdateTaskRequest{
		Description: strPtr("write docs"),
	}))

	done := make(chan error, 1)
	go func() {
		done <- svc.Enhance(context.Background(), timesheet.CollectionRegular, 0)
	}()
	<-api.started

	require.NoError(t, docs.RemoveTask(timesheet.CollectionRegular, 0))
	close(api.release)
	require.NoError(t, <-done)

	doc := docs.Document()
	require.Len(t, doc.RegularTasks, 1)
	assert.Equal(t, survivor.ID, doc.RegularTasks[0].ID)
	assert.Equal(t, "write docs", doc.RegularTasks[0].Description)
}

func TestService_BackendFailureSurfacesError(t *testing.T) {
	api := &fakeAPI{err: errors.New("backend unreachable")}
	svc, docs := newTestService(api)
	require.NoError(t, docs.UpdateTask(timesheet.CollectionRegular, 0, timesheet.UpdateTaskRequest{
		Description: strPtr("fix bug"),
	}))

	err := svc.Enhance(context.Background(), timesheet.CollectionRegular, 0)
	assert.Error(t, err)
	assert.Equal(t, "fix bug", docs.Document().RegularTasks[0].Description)

	// The row is free for a retry right away.
	rowID := docs.Document().RegularTasks[0].ID
	assert.Eventually(t, func() bool {
		return !svc.RowBusy(timesheet.CollectionRegular, rowID)
	}, time.Second, 5*time.Millisecond)
}
