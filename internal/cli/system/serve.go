package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/qingka/internal/cli"
	"github.com/julianstephens/qingka/internal/lockfile"
	"github.com/julianstephens/qingka/internal/logger"
	"github.com/julianstephens/qingka/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Address to listen on." default:"${default_addr}" env:"QINGKA_ADDR"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	lock, holder, err := lockfile.Acquire(ctx.ConfigDir, "serve")
	if errors.Is(err, lockfile.ErrHeld) {
		logger.Warn("Another qingka process is using this store", "holder", holder.String())
		ctx.Printf("⚠ %s is also running; concurrent writes are last-writer-wins\n", holder)
	} else if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release lockfile", "error", err)
		}
	}()

	srv := server.New(server.Deps{
		Profiles:   ctx.Profiles,
		Feed:       ctx.Feed,
		Milestones: ctx.Milestones,
		Assistant:  ctx.Assistant,
		Now:        ctx.Now,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Printf("Serving qingka API on %s (store: %s)\n", c.Addr, ctx.Store.GetConfigPath())
	if err := srv.Run(runCtx, c.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
