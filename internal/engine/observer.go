package engine

import "time"

// EventType represents different lifecycle phases of a pipeline run
type EventType string

const (
	EventRunStart     EventType = "run_start"
	EventSourceLoaded EventType = "source_loaded"
	EventStepStart    EventType = "step_start"
	EventStepEnd      EventType = "step_end"
	EventOutput       EventType = "output"
	EventRunEnd       EventType = "run_end"
	EventRunFailed    EventType = "run_failed"
)

// Event represents a lifecycle event in a pipeline run
type Event struct {
	Type      EventType   // Type of event
	RunID     string      // Run ID for tracing
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Phase-specific data (e.g., step, table shape, error)
}

// TableShape summarizes a table in events without carrying its rows
type TableShape struct {
	Name    string
	Rows    int
	Columns []string
}

// StepInfo identifies a step in events
type StepInfo struct {
	Index int
	Op    string
}

// Observer interface for event subscribers
// Observers receive events at major execution phases
type Observer interface {
	OnEvent(event Event)
}
