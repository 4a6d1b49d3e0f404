package widget

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type entry struct {
	Sender Sender
	Text   string
}

type fakeView struct {
	mu      sync.Mutex
	entries []entry
	typing  bool
	busy    bool
	busyLog []bool
}

func (v *fakeView) AppendMessage(sender Sender, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries = append(v.entries, entry{sender, text})
}

func (v *fakeView) SetTyping(on bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.typing = on
}

func (v *fakeView) SetBusy(busy bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.busy = busy
	v.busyLog = append(v.busyLog, busy)
}

func (v *fakeView) snapshot() []entry {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]entry(nil), v.entries...)
}

type fakeReplier struct {
	mu      sync.Mutex
	calls   int
	lastMsg string
	reply   string
	err     error

	started chan struct{}
	release chan struct{}
}

func (r *fakeReplier) Ask(ctx context.Context, message string) (string, error) {
	r.mu.Lock()
	r.calls++
	r.lastMsg = message
	r.mu.Unlock()
	if r.started != nil {
		close(r.started)
		<-r.release
	}
	return r.reply, r.err
}

func (r *fakeReplier) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func newTestWidget(r Replier) (*Widget, *fakeView) {
	view := &fakeView{}
	w := New(r, view)
	w.SetLogOutput(nil)
	return w, view
}

func TestSend_Success(t *testing.T) {
	replier := &fakeReplier{reply: "X"}
	w, view := newTestWidget(replier)

	if !w.Send(context.Background(), "  Where is my order?  ") {
		t.Fatal("expected send to run")
	}

	got := view.snapshot()
	want := []entry{{SenderUser, "Where is my order?"}, {SenderBot, "X"}}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
	if view.typing {
		t.Errorf("typing indicator should be hidden afterwards")
	}
	if view.busy {
		t.Errorf("send control should be re-enabled afterwards")
	}
	if len(view.busyLog) != 2 || !view.busyLog[0] || view.busyLog[1] {
		t.Errorf("expected busy true then false, got %v", view.busyLog)
	}
	if replier.lastMsg != "Where is my order?" {
		t.Errorf("expected trimmed message upstream, got %q", replier.lastMsg)
	}
	if w.State() != Idle || w.LastErr() != nil {
		t.Errorf("expected idle without error, got %s / %v", w.State(), w.LastErr())
	}
}

func TestSend_FailureShowsFallback(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{"server error", "", &StatusError{Status: 500, Message: "AI service error"}},
		{"network fault", "", errors.New("connection refused")},
		{"empty reply", "   ", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, view := newTestWidget(&fakeReplier{reply: tc.reply, err: tc.err})

			w.Send(context.Background(), "hi")

			got := view.snapshot()
			if len(got) != 2 {
				t.Fatalf("expected user entry plus one fallback, got %+v", got)
			}
			if got[1] != (entry{SenderBot, FallbackMessage}) {
				t.Errorf("expected fallback entry, got %+v", got[1])
			}
			if view.typing || view.busy {
				t.Errorf("typing and busy should be cleared after a failure")
			}
			if w.State() != Idle || w.LastErr() == nil {
				t.Errorf("expected idle with error, got %s / %v", w.State(), w.LastErr())
			}
		})
	}
}

func TestSend_BlankInputIsIgnored(t *testing.T) {
	replier := &fakeReplier{reply: "X"}
	w, view := newTestWidget(replier)

	for _, text := range []string{"", "   ", "\n\t"} {
		if w.Send(context.Background(), text) {
			t.Errorf("blank input %q should not send", text)
		}
	}
	if replier.callCount() != 0 || len(view.snapshot()) != 0 || len(view.busyLog) != 0 {
		t.Errorf("blank input must not touch view or network")
	}
}

func TestSend_SingleFlight(t *testing.T) {
	replier := &fakeReplier{
		reply:   "X",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	w, view := newTestWidget(replier)

	done := make(chan bool)
	go func() { done <- w.Send(context.Background(), "first") }()
	<-replier.started

	if w.State() != Sending {
		t.Fatalf("expected sending state, got %s", w.State())
	}
	if w.Send(context.Background(), "second") {
		t.Fatal("second send should be suppressed while one is in flight")
	}
	if w.QuickAction(context.Background(), "tracking") {
		t.Fatal("quick action should be suppressed while a send is in flight")
	}

	close(replier.release)
	if !<-done {
		t.Fatal("first send should have run")
	}

	if replier.callCount() != 1 {
		t.Errorf("expected exactly one network call, got %d", replier.callCount())
	}
	got := view.snapshot()
	if len(got) != 2 || got[0].Text != "first" || got[1].Text != "X" {
		t.Errorf("unexpected transcript %+v", got)
	}

	// Idle again: the next send goes through.
	replier.started = nil
	if !w.Send(context.Background(), "third") {
		t.Errorf("send after completion should run")
	}
}

func TestWidgetsAreIndependent(t *testing.T) {
	blocking := &fakeReplier{reply: "A", started: make(chan struct{}), release: make(chan struct{})}
	w1, _ := newTestWidget(blocking)
	w2, view2 := newTestWidget(&fakeReplier{reply: "B"})

	done := make(chan bool)
	go func() { done <- w1.Send(context.Background(), "one") }()
	<-blocking.started

	if !w2.Send(context.Background(), "two") {
		t.Fatal("a busy widget must not block another instance")
	}
	if got := view2.snapshot(); len(got) != 2 || got[1].Text != "B" {
		t.Errorf("unexpected transcript %+v", got)
	}

	close(blocking.release)
	<-done
}

func TestQuickAction(t *testing.T) {
	replier := &fakeReplier{reply: "Sure"}
	w, view := newTestWidget(replier)

	if !w.QuickAction(context.Background(), "returns") {
		t.Fatal("expected quick action to send")
	}
	want, _ := QuickMessage("returns")
	if replier.lastMsg != want {
		t.Errorf("expected canned message %q, got %q", want, replier.lastMsg)
	}
	if got := view.snapshot(); len(got) != 2 || got[0].Text != want {
		t.Errorf("unexpected transcript %+v", got)
	}

	if w.QuickAction(context.Background(), "unknown") {
		t.Errorf("unknown action should be a no-op")
	}
	if replier.callCount() != 1 {
		t.Errorf("unknown action must not call the network")
	}
}

func TestQuickActions(t *testing.T) {
	got := QuickActions()
	want := []string{"billing", "products", "returns", "tracking"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}
