package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/bucketcrypt/internal/observe"
)

// sender is the part of *tea.Program the observer needs.
type sender interface {
	Send(msg tea.Msg)
}

// Observer forwards run events to a Bubble Tea program.
type Observer struct {
	p sender
}

// NewObserver creates an observer sending to p.
func NewObserver(p sender) *Observer {
	return &Observer{p: p}
}

// Event implements observe.Observer.
func (o *Observer) Event(e observe.Event) {
	switch e.Type {
	case observe.EventRunStarted:
		o.p.Send(PhaseMsg{Phase: "list"})
	case observe.EventListPage:
		page, _ := strconv.Atoi(e.Fields["page"])
		o.p.Send(ListPageMsg{Page: page, Listed: e.Current, Bytes: e.Bytes})
	case observe.EventListCompleted:
		o.p.Send(PhaseMsg{Phase: "encrypt", Total: e.Total})
	case observe.EventObjectEncrypted:
		o.p.Send(ObjectMsg{Key: e.Key, Processed: e.Current, Total: e.Total, Bytes: e.Bytes})
	case observe.EventObjectFailed:
		o.p.Send(ObjectMsg{Key: e.Key, Processed: e.Current, Total: e.Total, Err: e.Err})
	case observe.EventObjectRetrying:
		attempt, _ := strconv.Atoi(e.Fields["attempt"])
		o.p.Send(RetryMsg{Key: e.Key, Attempt: attempt})
	}
}

// Progress implements observe.Observer.
func (o *Observer) Progress(string, int, int) {}

// WithFields implements observe.Observer.
func (o *Observer) WithFields(map[string]string) observe.Observer {
	return o
}
