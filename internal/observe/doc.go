// Package observe provides structured run events for bucketcrypt.
//
// Components report what they are doing through an Observer. The CLI wires
// a LogObserver backed by a logr.Logger; the TUI and the metrics recorder
// consume the same events.
package observe
