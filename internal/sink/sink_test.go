package sink

import (
	"strings"
	"testing"
)

func TestSetStatusHidesProgressAndEnablesControl(t *testing.T) {
	s := NewStateSink("ready")
	s.UpdateProgress(10)
	s.SetControlEnabled(false)

	s.SetStatus("working")

	st := s.Snapshot()
	if st.Status != "working" {
		t.Errorf("status = %q, want %q", st.Status, "working")
	}
	if st.ProgressVisible {
		t.Errorf("progress still visible after SetStatus")
	}
	if !st.ControlEnabled {
		t.Errorf("control not re-enabled by SetStatus")
	}
}

func TestUpdateProgressIndependentOfPriorState(t *testing.T) {
	s := NewStateSink("ready")

	// Prior state: progress hidden by a status write.
	s.SetStatus("idle")
	s.UpdateProgress(42)

	st := s.Snapshot()
	if !st.ProgressVisible {
		t.Fatalf("progress not visible after UpdateProgress")
	}
	if st.ProgressValue != 42 {
		t.Errorf("progress value = %v, want 42", st.ProgressValue)
	}
}

func TestDisplayErrorFormatsAndResets(t *testing.T) {
	s := NewStateSink("ready")
	s.UpdateProgress(50)
	s.SetControlEnabled(false)

	s.DisplayError("X")

	st := s.Snapshot()
	if st.Error != "ERROR: X" {
		t.Errorf("error region = %q, want %q", st.Error, "ERROR: X")
	}
	if st.Status != GenericErrorStatus {
		t.Errorf("status = %q, want %q", st.Status, GenericErrorStatus)
	}
	if st.ProgressVisible {
		t.Errorf("progress still visible after DisplayError")
	}
	if !st.ControlEnabled {
		t.Errorf("control not enabled after DisplayError")
	}
}

func TestDisplayPlotValidSpec(t *testing.T) {
	s := NewStateSink("ready")
	spec := `{"data":[{"x":[0,1],"y":[1,2],"type":"scatter","mode":"lines","name":"a"}],"layout":{"title":"t"}}`

	s.DisplayPlot(spec)

	st := s.Snapshot()
	if string(st.Plot) != spec {
		t.Errorf("plot region does not hold the published spec")
	}
	if st.Error != "" {
		t.Errorf("unexpected error: %q", st.Error)
	}
}

func TestDisplayPlotMalformedSpecNeverThrows(t *testing.T) {
	cases := []struct {
		name string
		spec string
	}{
		{"not json", "{{nope"},
		{"no traces", `{"data":[],"layout":{}}`},
		{"wrong shape", `{"data":"oops"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStateSink("ready")
			s.DisplayPlot(tc.spec)

			st := s.Snapshot()
			if !strings.HasPrefix(st.Error, "ERROR: Failed to render plot: ") {
				t.Errorf("error region = %q, want %q prefix", st.Error, "ERROR: Failed to render plot: ")
			}
			if st.Plot != nil {
				t.Errorf("malformed spec must not reach the plot region")
			}
			if st.Status != GenericErrorStatus {
				t.Errorf("status = %q, want generic error status", st.Status)
			}
		})
	}
}

func TestDisplayTableVerbatim(t *testing.T) {
	s := NewStateSink("ready")
	markup := `<table><tr><td>&lt;raw&gt;</td></tr></table>`

	s.DisplayTable(markup)

	if got := s.Snapshot().Table; got != markup {
		t.Errorf("table region = %q, want markup verbatim", got)
	}
}

func TestSubscribeReceivesEventsInOrder(t *testing.T) {
	s := NewStateSink("ready")
	ch, cancel := s.Subscribe()
	defer cancel()

	s.SetStatus("one")
	s.UpdateProgress(5)
	s.DisplayTable("<table></table>")

	wantTypes := []string{EventStatus, EventProgress, EventTable}
	var lastSeq int64
	for i, want := range wantTypes {
		ev := <-ch
		if ev.Type != want {
			t.Fatalf("event %d type = %q, want %q", i, ev.Type, want)
		}
		if ev.Seq <= lastSeq {
			t.Fatalf("event %d seq %d not increasing (last %d)", i, ev.Seq, lastSeq)
		}
		lastSeq = ev.Seq
	}
}

func TestClearError(t *testing.T) {
	s := NewStateSink("ready")
	s.DisplayError("boom")
	s.ClearError()

	if got := s.Snapshot().Error; got != "" {
		t.Errorf("error region = %q after ClearError, want empty", got)
	}
}
