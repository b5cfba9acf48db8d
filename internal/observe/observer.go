package observe

import (
	"fmt"
	"time"
)

// Observer receives structured events during a run.
type Observer interface {
	// Event emits a structured event
	Event(event Event)

	// Progress reports progress for a phase
	Progress(phase string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured run event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name ("list", "encrypt")
	Message   string            // Human-readable message
	Key       string            // Object key if applicable
	Current   int               // Objects processed so far
	Total     int               // Objects in the run
	Bytes     int64             // Object or page size in bytes
	Duration  time.Duration     // Elapsed time for the step
	Err       error             // Failure cause for *.failed and object.retrying
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of run event.
type EventType string

const (
	// EventRunStarted indicates a run has started.
	EventRunStarted EventType = "run.started"
	// EventRunCompleted indicates every object was re-encrypted.
	EventRunCompleted EventType = "run.completed"
	// EventRunFailed indicates the run aborted.
	EventRunFailed EventType = "run.failed"

	// EventListPage indicates one listing page was retrieved.
	EventListPage EventType = "list.page"
	// EventListCompleted indicates listing finished.
	EventListCompleted EventType = "list.completed"

	// EventObjectEncrypted indicates an object was copied onto itself.
	EventObjectEncrypted EventType = "object.encrypted"
	// EventObjectFailed indicates a copy failed.
	EventObjectFailed EventType = "object.failed"
	// EventObjectRetrying indicates a transient failure is being retried.
	EventObjectRetrying EventType = "object.retrying"

	// EventProgress marks a progress milestone in a long-running phase.
	EventProgress EventType = "progress"
)

// Verbose reports whether events of this type are per-item detail that
// only shows in verbose mode.
func (t EventType) Verbose() bool {
	switch t {
	case EventListPage, EventObjectEncrypted:
		return true
	}
	return false
}

// Failure reports whether the event is logged as an error.
func (t EventType) Failure() bool {
	return t == EventObjectFailed
}

// Helper functions for common events

// RunStarted emits a run start event.
func RunStarted(o Observer, bucket, cipher string) {
	o.Event(Event{
		Type:    EventRunStarted,
		Phase:   "encrypt",
		Message: fmt.Sprintf("re-encrypting bucket %s with %s", bucket, cipher),
		Fields:  map[string]string{"bucket": bucket, "cipher": cipher},
	})
}

// RunCompleted emits a run completion event.
func RunCompleted(o Observer, total int, bytes int64, duration time.Duration) {
	o.Event(Event{
		Type:     EventRunCompleted,
		Phase:    "encrypt",
		Message:  fmt.Sprintf("re-encrypted %d objects in %v", total, duration.Round(time.Millisecond)),
		Current:  total,
		Total:    total,
		Bytes:    bytes,
		Duration: duration,
	})
}

// RunFailed emits a run failure event.
func RunFailed(o Observer, processed, total int, duration time.Duration, err error) {
	o.Event(Event{
		Type:     EventRunFailed,
		Phase:    "encrypt",
		Message:  fmt.Sprintf("aborted after %d of %d objects", processed, total),
		Current:  processed,
		Total:    total,
		Duration: duration,
		Err:      err,
	})
}

// ListPage emits a page retrieval event. first and last are 1-based
// positions of the page's objects within the whole listing.
func ListPage(o Observer, page, first, last int, bytes int64) {
	o.Event(Event{
		Type:    EventListPage,
		Phase:   "list",
		Message: fmt.Sprintf("Retrieved objects %d - %d", first, last),
		Current: last,
		Bytes:   bytes,
		Fields:  map[string]string{"page": fmt.Sprint(page)},
	})
}

// ListCompleted emits a listing completion event.
func ListCompleted(o Observer, pages, total int, duration time.Duration) {
	o.Event(Event{
		Type:     EventListCompleted,
		Phase:    "list",
		Message:  fmt.Sprintf("listed %d objects in %d pages", total, pages),
		Total:    total,
		Duration: duration,
		Fields:   map[string]string{"pages": fmt.Sprint(pages)},
	})
}

// ObjectEncrypted emits a per-object progress event.
func ObjectEncrypted(o Observer, processed, total int, key string, size int64, duration time.Duration) {
	o.Event(Event{
		Type:     EventObjectEncrypted,
		Phase:    "encrypt",
		Message:  fmt.Sprintf("Encrypted %d of %d (%s)", processed, total, key),
		Key:      key,
		Current:  processed,
		Total:    total,
		Bytes:    size,
		Duration: duration,
	})
}

// ObjectFailed emits a copy failure event.
func ObjectFailed(o Observer, processed, total int, key string, err error) {
	o.Event(Event{
		Type:    EventObjectFailed,
		Phase:   "encrypt",
		Message: fmt.Sprintf("failed to encrypt %s", key),
		Key:     key,
		Current: processed,
		Total:   total,
		Err:     err,
	})
}

// Retrying emits a retry event for a transient failure.
func Retrying(o Observer, phase, key string, attempt int, delay time.Duration, err error) {
	o.Event(Event{
		Type:     EventObjectRetrying,
		Phase:    phase,
		Message:  fmt.Sprintf("retrying after attempt %d in %v", attempt, delay),
		Key:      key,
		Duration: delay,
		Err:      err,
		Fields:   map[string]string{"attempt": fmt.Sprint(attempt)},
	})
}
