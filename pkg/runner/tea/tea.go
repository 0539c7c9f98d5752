package teaui

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"tableflip.dev/dots/pkg/app"
	"tableflip.dev/dots/pkg/countdown"
)

// Run launches the Bubble Tea UI. Changes written by other processes are
// picked up while it runs.
func Run(ctx context.Context, svc *app.Service, policy countdown.Policy, log *zap.Logger) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("dots ui needs an interactive terminal")
	}
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(svc, policy)
	m.ctx = ctx
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := svc.Subscribe(func(c app.Change) {
		if c.Kind == app.ChangeReloaded {
			p.Send(reloadedMsg{})
		}
	})
	defer unsubscribe()

	go func() {
		if err := svc.Watch(ctx); err != nil {
			log.Warn("watch stopped", zap.Error(err))
		}
	}()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
