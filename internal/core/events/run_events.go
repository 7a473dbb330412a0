package events

import (
	"fmt"
	"time"
)

const (
	RunStartedEvent     = "run.started"
	BatchCommittedEvent = "batch.committed"
	RunCompletedEvent   = "run.completed"
)

// RunStarted carries the counts known once validation is done.
type RunStarted struct {
	BaseEvent
	Loaded   int  `json:"loaded"`
	Accepted int  `json:"accepted"`
	Rejected int  `json:"rejected"`
	Batches  int  `json:"batches"`
	DryRun   bool `json:"dry_run"`
}

func NewRunStarted(runID string, loaded, accepted, rejected, batches int, dryRun bool) RunStarted {
	return RunStarted{
		BaseEvent: newBaseEvent(RunStartedEvent, runID, "started"),
		Loaded:    loaded,
		Accepted:  accepted,
		Rejected:  rejected,
		Batches:   batches,
		DryRun:    dryRun,
	}
}

type BatchCommitted struct {
	BaseEvent
	Index   int           `json:"index"` // 1-based
	Total   int           `json:"total"`
	Records int           `json:"records"`
	Elapsed time.Duration `json:"elapsed"`
}

func NewBatchCommitted(runID string, index, total, records int, elapsed time.Duration) BatchCommitted {
	return BatchCommitted{
		BaseEvent: newBaseEvent(BatchCommittedEvent, runID, fmt.Sprintf("batch-%d", index)),
		Index:     index,
		Total:     total,
		Records:   records,
		Elapsed:   elapsed,
	}
}

type RunCompleted struct {
	BaseEvent
	Upserted int `json:"upserted"`
	Pass     int `json:"pass"`
	Warn     int `json:"warn"`
	Fail     int `json:"fail"`
}

func NewRunCompleted(runID string, upserted, pass, warn, fail int) RunCompleted {
	return RunCompleted{
		BaseEvent: newBaseEvent(RunCompletedEvent, runID, "completed"),
		Upserted:  upserted,
		Pass:      pass,
		Warn:      warn,
		Fail:      fail,
	}
}
