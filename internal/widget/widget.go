// Package widget holds the client side of the support chat: the send logic,
// its single-flight guard and how replies and failures reach the transcript.
// Rendering is left to a View.
package widget

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
)

// Sender labels a transcript entry.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// FallbackMessage is shown in place of any reply that could not be fetched.
const FallbackMessage = "Sorry, I encountered an error. Please try again."

// State of a widget instance.
type State int

const (
	Idle State = iota
	Sending
)

func (s State) String() string {
	if s == Sending {
		return "sending"
	}
	return "idle"
}

// View is the presentation layer the widget drives.
type View interface {
	AppendMessage(sender Sender, text string)
	SetTyping(on bool)
	SetBusy(busy bool)
}

// Replier fetches one reply for one message.
type Replier interface {
	Ask(ctx context.Context, message string) (string, error)
}

// Widget is one chat UI instance. Instances share nothing.
type Widget struct {
	replier Replier
	view    View
	logger  *log.Logger

	mu      sync.Mutex
	state   State
	lastErr error
}

func New(replier Replier, view View) *Widget {
	return &Widget{
		replier: replier,
		view:    view,
		logger:  log.Default(),
	}
}

// SetLogOutput redirects diagnostic output; nil silences it.
func (w *Widget) SetLogOutput(out io.Writer) {
	if out == nil {
		out = io.Discard
	}
	w.logger = log.New(out, "", log.LstdFlags)
}

// State reports whether a send is in flight.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// LastErr is the failure of the most recent completed send, if any.
func (w *Widget) LastErr() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Send submits text and blocks until the reply or the fallback has been
// appended. It returns false without touching the view when text is blank or
// another send is still in flight.
func (w *Widget) Send(ctx context.Context, text string) bool {
	message := strings.TrimSpace(text)
	if message == "" {
		return false
	}

	w.mu.Lock()
	if w.state == Sending {
		w.mu.Unlock()
		return false
	}
	w.state = Sending
	w.mu.Unlock()

	var err error
	defer func() {
		w.mu.Lock()
		w.state = Idle
		w.lastErr = err
		w.mu.Unlock()
		w.view.SetBusy(false)
	}()

	w.view.SetBusy(true)
	w.view.AppendMessage(SenderUser, message)
	w.view.SetTyping(true)

	var reply string
	reply, err = w.replier.Ask(ctx, message)
	if err == nil && strings.TrimSpace(reply) == "" {
		err = errors.New("empty reply")
	}

	w.view.SetTyping(false)
	if err != nil {
		w.logger.Printf("chat widget error: %v", err)
		w.view.AppendMessage(SenderBot, FallbackMessage)
		return true
	}

	w.view.AppendMessage(SenderBot, reply)
	return true
}
