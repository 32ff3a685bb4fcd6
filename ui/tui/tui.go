package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// RunOptions configure the Bubble Tea program.
type RunOptions struct {
	AltScreen bool
	Input     io.Reader // defaults to stdin
	Output    io.Writer // defaults to stdout
}

// Run starts the preview and blocks until the user quits or ctx is done.
// Cancellation is not reported as an error.
func Run(ctx context.Context, m Model, opts RunOptions) error {
	progOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithMouseCellMotion(),
	}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	_, err := tea.NewProgram(m, progOpts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
