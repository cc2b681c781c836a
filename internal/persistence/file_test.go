package persistence

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/timesheet"
)

func mustDate(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func sampleDocument() timesheet.Document {
	doc := timesheet.NewDocument(mustDate("2024-02-10"))
	doc.Employee.Name = "Annas Putra Anuraga"
	doc.Employee.Squad = "Squad IT PLATFORM"
	doc.RegularTasks[0].Date = "2024-01-29"
	doc.RegularTasks[0].Description = "fix bug"
	doc.RegularTasks[0].TicketNumber = "POJ-1"
	doc.OvertimeTasks[0].Duration = 2
	return doc
}

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir(), testLogger())
	require.NoError(t, err)

	doc := sampleDocument()
	require.NoError(t, store.Save(ctx, doc))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, doc, *loaded)
}

func TestFileStore_RoundTripEmptyLists(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir(), testLogger())
	require.NoError(t, err)

	doc := timesheet.Document{
		RegularTasks:  []timesheet.Task{},
		OvertimeTasks: []timesheet.OvertimeTask{},
	}
	require.NoError(t, store.Save(ctx, doc))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, doc, *loaded)
}

func TestFileStore_LoadAbsent(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), testLogger())
	require.NoError(t, err)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFileStore_LoadCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, testLogger())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, Slot+".json"), []byte("{not json"), 0o644))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFileStore_SaveOverwritesPreviousSnapshot(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir(), testLogger())
	require.NoError(t, err)

	first := sampleDocument()
	require.NoError(t, store.Save(ctx, first))

	second := first.Clone()
	second.Employee.Name = "Lailatul Fitriana"
	require.NoError(t, store.Save(ctx, second))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Lailatul Fitriana", loaded.Employee.Name)
}
