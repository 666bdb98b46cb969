package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/qingka/internal/cli"
	"github.com/julianstephens/qingka/internal/constants"
	"github.com/julianstephens/qingka/internal/storage"
)

// Namespaces lists every namespace the repositories write to.
var Namespaces = []string{
	constants.NamespaceProfile,
	constants.NamespaceFeed,
	constants.NamespaceMilestones,
	constants.NamespaceAssistant,
}

type InitCmd struct {
	Force  bool   `help:"Delete the existing store before initializing."`
	Seed   bool   `help:"Write the sample community posts if the feed is empty."`
	Source string `help:"Store location to copy existing data from (path or connection string)."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized qingka storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		copied, err := c.copyData(ctx)
		if err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.Printf("Copied %d value(s).\n", copied)
	}

	if c.Seed {
		n, err := ctx.Feed.Seed()
		if err != nil {
			return err
		}
		if n == 0 {
			ctx.Println("Feed already has data; skipping sample posts.")
		} else {
			ctx.Printf("Added %d sample post(s) to the feed.\n", n)
		}
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if !storage.IsFileBacked(ctx.Store) {
		// Network stores are cleared key by key; the schema stays.
		if err := ctx.Store.Load(); err != nil {
			return nil
		}
		removed := 0
		for _, ns := range Namespaces {
			keys, err := ctx.Store.Keys(ns)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", ns, err)
			}
			for _, key := range keys {
				if err := ctx.Store.Remove(ns, key); err != nil {
					return fmt.Errorf("failed to remove %s/%s: %w", ns, key, err)
				}
				removed++
			}
		}
		ctx.Printf("Removed %d value(s) from %s\n", removed, ctx.Store.GetConfigPath())
		return nil
	}

	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDB, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDB
		}
		absSource, err := filepath.Abs(c.Source)
		if err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing store: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing store: %w", err)
		}
		ctx.Printf("Deleted existing store at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing store: %w", err)
	}
	return nil
}

func (c *InitCmd) copyData(ctx *cli.Context) (int, error) {
	source, err := storage.Open(c.Source)
	if err != nil {
		return 0, err
	}
	if source.GetConfigPath() == ctx.Store.GetConfigPath() {
		return 0, fmt.Errorf("source and destination are the same: %s", c.Source)
	}
	if err := source.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source store: %w", err)
	}
	defer source.Close()

	copied := 0
	for _, ns := range Namespaces {
		keys, err := source.Keys(ns)
		if err != nil {
			return copied, fmt.Errorf("failed to list %s: %w", ns, err)
		}
		for _, key := range keys {
			value, ok, err := source.Get(ns, key)
			if err != nil {
				return copied, fmt.Errorf("failed to read %s/%s: %w", ns, key, err)
			}
			if !ok {
				continue
			}
			if err := ctx.Store.Set(ns, key, value); err != nil {
				return copied, fmt.Errorf("failed to write %s/%s: %w", ns, key, err)
			}
			copied++
		}
	}
	return copied, nil
}
