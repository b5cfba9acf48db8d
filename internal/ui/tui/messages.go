// Package tui provides a Bubble Tea-based terminal UI for re-encryption runs.
package tui

// PhaseMsg reports that the run entered a phase.
type PhaseMsg struct {
	Phase string // "list" or "encrypt"
	Total int    // objects to encrypt, set when entering "encrypt"
}

// ListPageMsg reports one retrieved listing page.
type ListPageMsg struct {
	Page   int
	Listed int
	Bytes  int64
}

// ObjectMsg reports the outcome of one copy.
type ObjectMsg struct {
	Key       string
	Processed int
	Total     int
	Bytes     int64
	Err       error
}

// RetryMsg reports a retried transient failure.
type RetryMsg struct {
	Key     string
	Attempt int
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the operation is complete.
type DoneMsg struct{}
