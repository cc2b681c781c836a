package directory

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/reference"
	"github.com/cmlabs-hris/timesheet-core-go/internal/pkg/inflight"
)

type fakeAPI struct {
	syncCalls   atomic.Int32
	syncDelay   time.Duration
	syncResp    *reference.SyncResponse
	syncErr     error
	listResp    []string
	listErr     error
	listCallLog atomic.Int32
}

func (f *fakeAPI) TriggerSync(ctx context.Context) (*reference.SyncResponse, error) {
	f.syncCalls.Add(1)
	if f.syncDelay > 0 {
		time.Sleep(f.syncDelay)
	}
	if f.syncErr != nil {
		return nil, f.syncErr
	}
	return f.syncResp, nil
}

func (f *fakeAPI) ListAssignees(ctx context.Context) ([]string, error) {
	f.listCallLog.Add(1)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResp, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestService(api API) *Service {
	return NewService(api, inflight.NewRegistry(), 0, testLogger())
}

func TestService_RefreshReplacesListWholesale(t *testing.T) {
	api := &fakeAPI{listResp: []string{"Annas Putra Anuraga", "Lailatul Fitriana"}}
	svc := newTestService(api)

	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, []string{"Annas Putra Anuraga", "Lailatul Fitriana"}, svc.Assignees())

	api.listResp = []string{"Dimas Prakoso"}
	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, []string{"Dimas Prakoso"}, svc.Assignees())
}

func TestService_RefreshFailureKeepsExistingList(t *testing.T) {
	api := &fakeAPI{listResp: []string{"Annas Putra Anuraga"}}
	svc := newTestService(api)
	require.NoError(t, svc.Refresh(context.Background()))

	api.listErr = errors.New("backend unreachable")
	err := svc.Refresh(context.Background())
	assert.Error(t, err)
	assert.Equal(t, []string{"Annas Putra Anuraga"}, svc.Assignees())
}

func TestService_ForceSyncUpdated(t *testing.T) {
	api := &fakeAPI{
		syncResp: &reference.SyncResponse{Status: reference.SyncStatusUpdated, Count: 42},
		listResp: []string{"Annas Putra Anuraga"},
	}
	svc := newTestService(api)

	msg, err := svc.ForceSync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Directory updated, 42 entries ingested", msg)
	assert.Equal(t, []string{"Annas Putra Anuraga"}, svc.Assignees())
	assert.False(t, svc.Busy())
}

func TestService_ForceSyncUnchanged(t *testing.T) {
	api := &fakeAPI{
		syncResp: &reference.SyncResponse{Status: reference.SyncStatusUnchanged},
	}
	svc := newTestService(api)

	msg, err := svc.ForceSync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Directory already up to date", msg)
}

func TestService_ForceSyncTriggerFailure(t *testing.T) {
	api := &fakeAPI{syncErr: errors.New("ingestion backend offline")}
	svc := newTestService(api)

	_, err := svc.ForceSync(context.Background())
	assert.Error(t, err)
	assert.False(t, svc.Busy())
}

func TestService_ConcurrentForceSyncIssuesOneRequest(t *testing.T) {
	api := &fakeAPI{
		syncDelay: 50 * time.Millisecond,
		syncResp:  &reference.SyncResponse{Status: reference.SyncStatusUnchanged},
	}
	svc := newTestService(api)

	var wg sync.WaitGroup
	var inFlightRejections atomic.Int32
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ForceSync(context.Background()); errors.Is(err, reference.ErrSyncInFlight) {
				inFlightRejections.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), api.syncCalls.Load())
	assert.Equal(t, int32(4), inFlightRejections.Load())
}

func TestService_ForceSyncHoldsBusyFloor(t *testing.T) {
	api := &fakeAPI{syncResp: &reference.SyncResponse{Status: reference.SyncStatusUnchanged}}
	svc := NewService(api, inflight.NewRegistry(), 40*time.Millisecond, testLogger())

	started := time.Now()
	_, err := svc.ForceSync(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(started), 40*time.Millisecond)
}
