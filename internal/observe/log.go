package observe

import (
	"fmt"
	"maps"
	"slices"

	"github.com/go-logr/logr"
)

// LogObserver implements Observer on top of a logr.Logger. Per-item events
// are logged at V(1). Only object failures are logged as errors.
type LogObserver struct {
	logger        logr.Logger
	contextFields map[string]string
}

// NewLogObserver creates an observer that writes through logger.
func NewLogObserver(logger logr.Logger) *LogObserver {
	return &LogObserver{
		logger:        logger,
		contextFields: make(map[string]string),
	}
}

// Event implements Observer interface.
func (o *LogObserver) Event(event Event) {
	logger := o.logger
	if event.Type.Verbose() {
		logger = logger.V(1)
	}
	if !logger.Enabled() && !event.Type.Failure() {
		return
	}

	kv := make([]any, 0, 2*(len(o.contextFields)+len(event.Fields)+1))
	if event.Key != "" && !event.Type.Verbose() {
		kv = append(kv, "key", event.Key)
	}
	kv = appendFields(kv, o.contextFields, event.Fields)
	kv = appendFields(kv, event.Fields, nil)

	if event.Type.Failure() {
		o.logger.Error(event.Err, event.Message, kv...)
		return
	}
	// A failed run returns its error to the caller, which reports it.
	if event.Err != nil && event.Type != EventRunFailed {
		kv = append(kv, "error", event.Err.Error())
	}
	logger.Info(event.Message, kv...)
}

// Progress implements Observer interface.
func (o *LogObserver) Progress(phase string, current, total int) {
	o.Event(Event{
		Type:    EventProgress,
		Phase:   phase,
		Message: progressMessage(phase, current, total),
		Current: current,
		Total:   total,
	})
}

// WithFields implements Observer interface.
func (o *LogObserver) WithFields(fields map[string]string) Observer {
	newFields := maps.Clone(o.contextFields)
	maps.Copy(newFields, fields)
	return &LogObserver{
		logger:        o.logger,
		contextFields: newFields,
	}
}

// appendFields appends fields in key order, skipping keys present in skip.
func appendFields(kv []any, fields, skip map[string]string) []any {
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		if _, ok := skip[k]; ok {
			continue
		}
		kv = append(kv, k, fields[k])
	}
	return kv
}

func progressMessage(phase string, current, total int) string {
	if total == 0 {
		return fmt.Sprintf("[%s] Progress: %d/%d", phase, current, total)
	}
	return fmt.Sprintf("[%s] Progress: %d/%d (%d%%)", phase, current, total, current*100/total)
}
