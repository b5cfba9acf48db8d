package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/bucketcrypt/internal/observe"
)

// ErrInterrupted is returned when the user quits the dashboard before the
// run finished on its own.
var ErrInterrupted = errors.New("interrupted by user")

// RunEncryptTUI wraps a re-encryption run with a Bubble Tea dashboard.
// runFn performs the run, reporting through the observer it is given.
// Quitting the dashboard cancels the context passed to runFn and waits for
// it to return.
func RunEncryptTUI(
	ctx context.Context,
	info RunInfo,
	runFn func(ctx context.Context, obs observe.Observer) error,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewEncryptModel(info)
	p := tea.NewProgram(m, tea.WithAltScreen())

	done := make(chan error, 1)
	go func() {
		err := runFn(ctx, NewObserver(p))
		if err != nil {
			p.Send(ErrMsg{Err: err})
		} else {
			p.Send(DoneMsg{})
		}
		done <- err
	}()

	finalModel, err := p.Run()
	cancel()
	runErr := <-done
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if runErr != nil {
		return runErr
	}

	if fm, ok := finalModel.(Model); ok && fm.Interrupted && !fm.Done {
		return ErrInterrupted
	}
	return nil
}
