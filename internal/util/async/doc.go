// Package async provides bounded parallel execution with fail-fast error
// handling.
//
// [ForEach] dispatches work items in index order onto at most N goroutines.
// The first error stops dispatch of any further items; items already running
// finish normally. With a limit of one it degrades to a plain sequential loop.
package async
