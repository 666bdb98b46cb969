package system

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/qingka/internal/cli"
	"github.com/julianstephens/qingka/internal/lockfile"
	"github.com/julianstephens/qingka/internal/logger"
	"github.com/julianstephens/qingka/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	lock, holder, err := lockfile.Acquire(ctx.ConfigDir, "tui")
	if errors.Is(err, lockfile.ErrHeld) {
		logger.Warn("Another qingka process is using this store", "holder", holder.String())
	} else if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release lockfile", "error", err)
		}
	}()

	ctx.PerformAutomaticBackup()

	m := tui.NewModel(tui.Options{
		UserID:     userID,
		Profiles:   ctx.Profiles,
		Feed:       ctx.Feed,
		Milestones: ctx.Milestones,
		Now:        ctx.Now,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
