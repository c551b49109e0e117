// Package engine runs pipeline definitions: it loads the raw tables, turns
// their provenance into data, applies the steps and projects the outputs.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leengari/tidytable/internal/domain/data"
	"github.com/leengari/tidytable/internal/domain/schema"
	"github.com/leengari/tidytable/internal/pipeline"
	"github.com/leengari/tidytable/internal/query/operations/combine"
)

// SourceLoader reads one raw table. path is already resolved against the
// definition file's directory.
type SourceLoader interface {
	Load(ctx context.Context, src pipeline.Source, path string) (*schema.Table, error)
}

// Result is what a run produces
type Result struct {
	RunID    string
	Pipeline string
	Table    *schema.Table   // the table after all steps
	Outputs  []*schema.Table // one per definition output, in order
	Duration time.Duration
}

// Engine is the main entry point for running pipelines
type Engine struct {
	loader    SourceLoader
	logger    *slog.Logger
	observers []Observer // Observers for lifecycle events
}

// New creates a new Engine instance
func New(loader SourceLoader, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		loader:    loader,
		logger:    logger,
		observers: make([]Observer, 0),
	}
}

// Run executes a pipeline definition.
//
// Sources are loaded concurrently but kept in declaration order, so the
// union (taken when there is more than one source) and everything after it
// is deterministic. Table operations themselves run sequentially.
func (e *Engine) Run(ctx context.Context, def *pipeline.Definition) (*Result, error) {
	if e.loader == nil {
		return nil, fmt.Errorf("engine has no source loader")
	}
	runID := uuid.New().String()
	start := time.Now()
	logger := e.logger.With("run_id", runID, "pipeline", def.Name)

	e.notify(Event{Type: EventRunStart, RunID: runID, Data: def.Name})
	result, err := e.run(ctx, runID, def)
	if err != nil {
		e.notify(Event{Type: EventRunFailed, RunID: runID, Data: err.Error()})
		logger.Error("pipeline failed", "error", err)
		return nil, err
	}
	result.Duration = time.Since(start)
	e.notify(Event{Type: EventRunEnd, RunID: runID, Data: shapeOf(result.Table)})

	logger.Info("pipeline finished",
		"rows", result.Table.Len(),
		"outputs", len(result.Outputs),
		"duration", result.Duration,
	)
	return result, nil
}

func (e *Engine) run(ctx context.Context, runID string, def *pipeline.Definition) (*Result, error) {
	tables, err := e.loadSources(ctx, runID, def)
	if err != nil {
		return nil, err
	}

	current := tables[0]
	if len(tables) > 1 {
		current, err = combine.Union(tables...)
		if err != nil {
			return nil, fmt.Errorf("combining sources: %w", err)
		}
		current = current.WithName(def.Name)
	}

	for i, step := range def.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info := StepInfo{Index: i + 1, Op: step.Op}
		e.notify(Event{Type: EventStepStart, RunID: runID, Data: info})
		current, err = pipeline.Apply(current, step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", info.Index, info.Op, err)
		}
		e.notify(Event{Type: EventStepEnd, RunID: runID, Data: shapeOf(current)})
	}

	result := &Result{RunID: runID, Pipeline: def.Name, Table: current}
	for _, out := range def.Outputs {
		t, err := pipeline.Project(current, out)
		if err != nil {
			return nil, fmt.Errorf("output %s: %w", out.Name, err)
		}
		e.notify(Event{Type: EventOutput, RunID: runID, Data: shapeOf(t)})
		result.Outputs = append(result.Outputs, t)
	}
	return result, nil
}

func (e *Engine) loadSources(ctx context.Context, runID string, def *pipeline.Definition) ([]*schema.Table, error) {
	tables := make([]*schema.Table, len(def.Sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range def.Sources {
		g.Go(func() error {
			t, err := e.loader.Load(gctx, src, def.ResolvePath(src.Path))
			if err != nil {
				return fmt.Errorf("loading source %s: %w", src.Name, err)
			}
			t = t.WithName(src.Name)
			if src.Tag != "" {
				t, err = combine.Tag(t, src.Tag, data.Text(src.Name))
				if err != nil {
					return fmt.Errorf("tagging source %s: %w", src.Name, err)
				}
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, t := range tables {
		e.notify(Event{Type: EventSourceLoaded, RunID: runID, Data: shapeOf(t)})
	}
	return tables, nil
}

func shapeOf(t *schema.Table) TableShape {
	return TableShape{Name: t.Name(), Rows: t.Len(), Columns: t.ColumnNames()}
}

// AddObserver registers an observer to receive lifecycle events
func (e *Engine) AddObserver(observer Observer) {
	e.observers = append(e.observers, observer)
}

// RemoveObserver unregisters an observer
func (e *Engine) RemoveObserver(observer Observer) {
	for i, o := range e.observers {
		if o == observer {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (e *Engine) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range e.observers {
		observer.OnEvent(event)
	}
}
