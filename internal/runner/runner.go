// Package runner orchestrates one analysis invocation at a time: it guards
// the run control, hands the file content to the registered entry point and
// routes any failure into the display sink's error path.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/csvscope/csvscope/internal/metrics"
	"github.com/csvscope/csvscope/internal/sink"
	"github.com/csvscope/csvscope/pkg/logging"
)

// NoDataMessage is the exact error shown when a run is triggered without
// file content.
const NoDataMessage = "Please select a data file first."

// DefaultEntryPoint is the name the standard analysis is registered under.
const DefaultEntryPoint = "run_analysis"

var (
	// ErrBusy is returned when a trigger arrives while a run is in flight.
	ErrBusy = errors.New("analysis already running")

	// ErrNoData is returned for the no-file short circuit. The entry point
	// is never invoked in that case.
	ErrNoData = errors.New("no data file selected")
)

// EntryPoint is an analysis function. It receives the file content by value
// and reports results through the sink; the error return is routed to the
// error display by the controller.
type EntryPoint func(ctx context.Context, content string, ui sink.Sink) error

// Registry maps entry-point names to functions. Registration happens once
// at setup; the controller resolves the name at call time.
type Registry struct {
	mu sync.RWMutex
	m  map[string]EntryPoint
}

func NewRegistry() *Registry {
	return &Registry{m: make(map[string]EntryPoint)}
}

func (r *Registry) Register(name string, fn EntryPoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[name] = fn
}

func (r *Registry) Lookup(name string) (EntryPoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.m[name]
	return fn, ok
}

// ControlSink extends the display sink with the run-control and error-region
// operations only the controller uses.
type ControlSink interface {
	sink.Sink
	SetControlEnabled(enabled bool)
	ClearError()
}

// runState is the controller's lifecycle position.
type runState int

const (
	stateIdle runState = iota
	stateRunning
	stateCompleting
)

// RunRecord is one entry of the in-memory run log.
type RunRecord struct {
	ID         string    `json:"id"`
	EntryPoint string    `json:"entry_point"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Status     string    `json:"status"` // "completed", "failed", "rejected"
	Error      string    `json:"error,omitempty"`
	InputBytes int       `json:"input_bytes"`
}

// Controller drives the Idle -> Running -> Completing -> Idle cycle.
type Controller struct {
	mu        sync.Mutex
	state     runState
	registry  *Registry
	ui        ControlSink
	entryName string

	history     []RunRecord
	historySize int
}

// Option configures a Controller.
type Option func(*Controller)

// WithEntryPoint overrides the entry-point name resolved per run.
func WithEntryPoint(name string) Option {
	return func(c *Controller) { c.entryName = name }
}

// WithHistorySize bounds the in-memory run log.
func WithHistorySize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.historySize = n
		}
	}
}

// New builds a controller around the registry and sink.
func New(registry *Registry, ui ControlSink, opts ...Option) *Controller {
	c := &Controller{
		registry:    registry,
		ui:          ui,
		entryName:   DefaultEntryPoint,
		historySize: 50,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Busy reports whether a run is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != stateIdle
}

// History returns the run log, newest first.
func (c *Controller) History() []RunRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]RunRecord, len(c.history))
	copy(out, c.history)
	return out
}

// Trigger performs one run synchronously. It disables the run control,
// clears the error region, invokes the entry point and re-enables the
// control unconditionally on the way out. Only one trigger may be in
// flight; concurrent triggers get ErrBusy without touching the display.
func (c *Controller) Trigger(ctx context.Context, content string) error {
	c.mu.Lock()
	if c.state != stateIdle {
		c.mu.Unlock()
		metrics.RunsRejected.Inc()
		return ErrBusy
	}
	c.state = stateRunning
	c.mu.Unlock()

	record := RunRecord{
		ID:         uuid.NewString(),
		EntryPoint: c.entryName,
		StartedAt:  time.Now(),
		InputBytes: len(content),
	}
	log := logging.L().WithField("run_id", record.ID)

	metrics.RunsStarted.Inc()
	metrics.RunInFlight.Set(1)

	c.ui.SetControlEnabled(false)
	c.ui.ClearError()

	defer func() {
		c.mu.Lock()
		c.state = stateCompleting
		record.FinishedAt = time.Now()
		c.history = append([]RunRecord{record}, c.history...)
		if len(c.history) > c.historySize {
			c.history = c.history[:c.historySize]
		}
		c.state = stateIdle
		c.mu.Unlock()

		metrics.RunInFlight.Set(0)
		metrics.RunDuration.Observe(record.FinishedAt.Sub(record.StartedAt).Seconds())

		// The control is never left disabled, whatever happened above.
		c.ui.SetControlEnabled(true)
	}()

	if content == "" {
		log.Warn("run triggered without a data file")
		c.ui.DisplayError(NoDataMessage)
		record.Status = "rejected"
		record.Error = NoDataMessage
		metrics.RunsFailed.Inc()
		return ErrNoData
	}

	fn, ok := c.registry.Lookup(c.entryName)
	if !ok {
		err := fmt.Errorf("analysis entry point %q is not registered", c.entryName)
		log.WithError(err).Error("run aborted")
		c.ui.DisplayError(err.Error())
		record.Status = "failed"
		record.Error = err.Error()
		metrics.RunsFailed.Inc()
		return err
	}

	log.WithField("input_bytes", record.InputBytes).Info("analysis run started")

	if err := fn(ctx, content, c.ui); err != nil {
		log.WithError(err).Error("analysis run failed")
		c.ui.DisplayError(err.Error())
		record.Status = "failed"
		record.Error = err.Error()
		metrics.RunsFailed.Inc()
		return err
	}

	log.Info("analysis run completed")
	record.Status = "completed"
	metrics.RunsCompleted.Inc()
	return nil
}
