package demo

import (
	"fmt"
	"sync"
	"time"
)

// Execution statuses shown on the tracking view.
const (
	StatusQueued    = "Queued"
	StatusRunning   = "Running"
	StatusPaused    = "Paused"
	StatusCompleted = "Completed"
	StatusFailed    = "Failed"
)

// defaultRate is the simulated progress in percent per second. It
// matches a UI that advanced a few percent every few seconds.
const defaultRate = 0.8

// RunningScript is one row of the tracking view as sent on the wire.
type RunningScript struct {
	ID                  int64    `json:"id"`
	ScriptName          string   `json:"scriptName"`
	Group               string   `json:"group"`
	Project             string   `json:"project"`
	Status              string   `json:"status"`
	Progress            int      `json:"progress"`
	StartTime           string   `json:"startTime,omitempty"`
	EstimatedCompletion string   `json:"estimatedCompletion,omitempty"`
	ExecutionOrder      int      `json:"executionOrder,omitempty"`
	Logs                []string `json:"logs,omitempty"`
}

type runEntry struct {
	row       RunningScript
	startedAt time.Time
	rate      float64
}

// Tracker simulates script executions. Running entries advance with
// wall-clock time and complete at 100 percent; other statuses are
// static fixtures.
type Tracker struct {
	mu      sync.RWMutex
	entries []*runEntry
	nextID  int64
	now     func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// Add inserts a fixture row as-is. Used by seeding.
func (t *Tracker) Add(row RunningScript) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	row.ID = t.nextID
	if row.StartTime == "" {
		row.StartTime = t.now().UTC().Format(time.RFC3339)
	}
	t.entries = append(t.entries, &runEntry{
		row:       row,
		startedAt: t.now(),
		rate:      defaultRate,
	})
}

// Start begins a simulated execution for a script.
func (t *Tracker) Start(scriptName, group, project string) RunningScript {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	now := t.now()
	row := RunningScript{
		ID:                  t.nextID,
		ScriptName:          scriptName,
		Group:               group,
		Project:             project,
		Status:              StatusRunning,
		Progress:            0,
		StartTime:           now.UTC().Format(time.RFC3339),
		EstimatedCompletion: now.Add(2 * time.Minute).UTC().Format(time.RFC3339),
		ExecutionOrder:      len(t.entries) + 1,
		Logs:                []string{fmt.Sprintf("%s queued for execution", scriptName)},
	}
	t.entries = append(t.entries, &runEntry{row: row, startedAt: now, rate: defaultRate})
	return row
}

// Snapshot returns the current view. Running entries get their progress
// recomputed from elapsed time and flip to Completed at 100.
func (t *Tracker) Snapshot() []RunningScript {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows := make([]RunningScript, 0, len(t.entries))
	for _, e := range t.entries {
		if e.row.Status == StatusRunning {
			elapsed := t.now().Sub(e.startedAt).Seconds()
			progress := e.row.Progress + int(elapsed*e.rate)
			if progress >= 100 {
				e.row.Progress = 100
				e.row.Status = StatusCompleted
				e.row.Logs = append(e.row.Logs, fmt.Sprintf("%s completed", e.row.ScriptName))
				e.startedAt = t.now()
			} else {
				row := e.row
				row.Progress = progress
				rows = append(rows, row)
				continue
			}
		}
		rows = append(rows, e.row)
	}
	return rows
}
