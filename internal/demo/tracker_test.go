package demo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerStart(t *testing.T) {
	tr := NewTracker()

	row := tr.Start("extract.py", "nightly", "ingest")
	assert.Equal(t, StatusRunning, row.Status)
	assert.Zero(t, row.Progress)
	assert.NotEmpty(t, row.StartTime)

	rows := tr.Snapshot()
	require.Len(t, rows, 1)
	assert.Equal(t, "extract.py", rows[0].ScriptName)
}

func TestTrackerProgressAdvances(t *testing.T) {
	tr := NewTracker()
	base := time.Now()
	tr.now = func() time.Time { return base }

	tr.Start("extract.py", "nightly", "ingest")

	tr.now = func() time.Time { return base.Add(30 * time.Second) }
	rows := tr.Snapshot()
	require.Len(t, rows, 1)
	assert.Equal(t, StatusRunning, rows[0].Status)
	assert.Equal(t, 24, rows[0].Progress)
}

func TestTrackerCompletesAtHundred(t *testing.T) {
	tr := NewTracker()
	base := time.Now()
	tr.now = func() time.Time { return base }

	tr.Start("extract.py", "nightly", "ingest")

	tr.now = func() time.Time { return base.Add(10 * time.Minute) }
	rows := tr.Snapshot()
	require.Len(t, rows, 1)
	assert.Equal(t, StatusCompleted, rows[0].Status)
	assert.Equal(t, 100, rows[0].Progress)
	assert.Contains(t, rows[0].Logs[len(rows[0].Logs)-1], "completed")

	// Completed entries stay completed.
	rows = tr.Snapshot()
	assert.Equal(t, StatusCompleted, rows[0].Status)
}

func TestTrackerStaticStatuses(t *testing.T) {
	tr := NewTracker()
	base := time.Now()
	tr.now = func() time.Time { return base }

	tr.Add(RunningScript{ScriptName: "a.py", Status: StatusPaused, Progress: 40})
	tr.Add(RunningScript{ScriptName: "b.py", Status: StatusFailed, Progress: 65})
	tr.Add(RunningScript{ScriptName: "c.py", Status: StatusQueued})

	tr.now = func() time.Time { return base.Add(time.Hour) }
	rows := tr.Snapshot()
	require.Len(t, rows, 3)
	assert.Equal(t, 40, rows[0].Progress)
	assert.Equal(t, StatusPaused, rows[0].Status)
	assert.Equal(t, StatusFailed, rows[1].Status)
	assert.Equal(t, StatusQueued, rows[2].Status)
}

func TestTrackerAddAssignsIDs(t *testing.T) {
	tr := NewTracker()
	tr.Add(RunningScript{ScriptName: "a.py", Status: StatusQueued})
	tr.Add(RunningScript{ScriptName: "b.py", Status: StatusQueued})

	rows := tr.Snapshot()
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].ID)
	assert.Equal(t, int64(2), rows[1].ID)
}
