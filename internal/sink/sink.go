// Package sink implements the display surface of the analysis GUI. The
// five operations mirror the page's display regions (status text, progress
// indicator, plot area, table area, error area); every write is applied to
// an in-memory mirror of those regions and broadcast to subscribers so the
// browser can replay it against the DOM in the same order.
package sink

import (
	"encoding/json"
	"sync"
	"time"
)

// GenericErrorStatus is the fixed status line shown after any reported error.
const GenericErrorStatus = "An error occurred, check console"

// Sink is the set of display operations an analysis entry point may call.
// None of the operations return an error: a failure inside DisplayPlot is
// converted into an error display instead of propagating.
type Sink interface {
	SetStatus(message string)
	UpdateProgress(value float64)
	DisplayPlot(spec string)
	DisplayTable(html string)
	DisplayError(errMsg string)
}

// Event types emitted to subscribers, one per display operation plus the
// run-control toggle.
const (
	EventStatus   = "status"
	EventProgress = "progress"
	EventPlot     = "plot"
	EventTable    = "table"
	EventError    = "error"
	EventControl  = "control"
)

// Event is a single display write, serialized to the browser over SSE.
// Seq increases monotonically; subscribers see events in issue order.
type Event struct {
	Seq       int64           `json:"seq"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Message   string          `json:"message,omitempty"`
	Value     float64         `json:"value,omitempty"`
	Spec      json.RawMessage `json:"spec,omitempty"`
	HTML      string          `json:"html,omitempty"`
	Enabled   bool            `json:"enabled,omitempty"`
}

// State is a snapshot of the display regions and the run control.
type State struct {
	Status          string          `json:"status"`
	ProgressVisible bool            `json:"progress_visible"`
	ProgressValue   float64         `json:"progress_value"`
	Plot            json.RawMessage `json:"plot,omitempty"`
	Table           string          `json:"table,omitempty"`
	Error           string          `json:"error,omitempty"`
	ControlEnabled  bool            `json:"control_enabled"`
}

// StateSink is the production Sink. It keeps the authoritative mirror of
// the display regions and fans events out to SSE subscribers. Safe for
// concurrent use, though only one run writes at a time.
type StateSink struct {
	mu    sync.Mutex
	state State
	seq   int64
	subs  map[chan Event]struct{}
}

// NewStateSink returns a sink with the run control enabled and the given
// initial status line.
func NewStateSink(initialStatus string) *StateSink {
	return &StateSink{
		state: State{
			Status:         initialStatus,
			ControlEnabled: true,
		},
		subs: make(map[chan Event]struct{}),
	}
}

// Subscribe registers a listener for display events. The returned cancel
// function must be called when the listener goes away. Slow listeners have
// events dropped rather than blocking the writer.
func (s *StateSink) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 64)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
	}
	return ch, cancel
}

// Snapshot returns a copy of the current display state.
func (s *StateSink) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetStatus writes the status line. As on the page, it also hides the
// progress indicator and re-enables the run control.
func (s *StateSink) SetStatus(message string) {
	s.mu.Lock()
	s.state.Status = message
	s.state.ProgressVisible = false
	s.state.ControlEnabled = true
	ev := s.eventLocked(Event{Type: EventStatus, Message: message})
	s.mu.Unlock()
	s.broadcast(ev)
}

// UpdateProgress makes the progress indicator visible and sets its value.
// The value is trusted as-is; the page's indicator uses a 0-100 scale.
func (s *StateSink) UpdateProgress(value float64) {
	s.mu.Lock()
	s.state.ProgressVisible = true
	s.state.ProgressValue = value
	ev := s.eventLocked(Event{Type: EventProgress, Value: value})
	s.mu.Unlock()
	s.broadcast(ev)
}

// DisplayPlot parses spec as a plot specification (traces + layout) and
// publishes it to the plot region. A malformed spec never fails outward:
// it is rerouted through DisplayError with a descriptive message.
func (s *StateSink) DisplayPlot(spec string) {
	parsed, err := ParsePlotSpec(spec)
	if err != nil {
		s.DisplayError("Failed to render plot: " + err.Error())
		return
	}

	s.mu.Lock()
	s.state.Plot = parsed
	ev := s.eventLocked(Event{Type: EventPlot, Spec: parsed})
	s.mu.Unlock()
	s.broadcast(ev)
}

// DisplayTable replaces the table region with pre-rendered, trusted markup.
func (s *StateSink) DisplayTable(html string) {
	s.mu.Lock()
	s.state.Table = html
	ev := s.eventLocked(Event{Type: EventTable, HTML: html})
	s.mu.Unlock()
	s.broadcast(ev)
}

// DisplayError writes the message into the error region with an "ERROR:"
// marker, then falls through to SetStatus with the fixed generic status.
// SetStatus re-enabling the control here is redundant with the run
// controller's own cleanup, but idempotent.
func (s *StateSink) DisplayError(errMsg string) {
	s.mu.Lock()
	s.state.Error = "ERROR: " + errMsg
	ev := s.eventLocked(Event{Type: EventError, Message: s.state.Error})
	s.mu.Unlock()
	s.broadcast(ev)

	s.SetStatus(GenericErrorStatus)
}

// SetControlEnabled toggles the run control mirror. Used by the run
// controller at run entry and exit; not part of the entry-point surface.
func (s *StateSink) SetControlEnabled(enabled bool) {
	s.mu.Lock()
	s.state.ControlEnabled = enabled
	ev := s.eventLocked(Event{Type: EventControl, Enabled: enabled})
	s.mu.Unlock()
	s.broadcast(ev)
}

// ClearError empties the error region at the start of a run.
func (s *StateSink) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	ev := s.eventLocked(Event{Type: EventError, Message: ""})
	s.mu.Unlock()
	s.broadcast(ev)
}

func (s *StateSink) eventLocked(ev Event) Event {
	s.seq++
	ev.Seq = s.seq
	ev.Timestamp = time.Now()
	return ev
}

func (s *StateSink) broadcast(ev Event) {
	s.mu.Lock()
	for ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}
