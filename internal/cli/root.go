package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/qingka/internal/assistant"
	"github.com/julianstephens/qingka/internal/backup"
	"github.com/julianstephens/qingka/internal/constants"
	apperrors "github.com/julianstephens/qingka/internal/errors"
	"github.com/julianstephens/qingka/internal/feed"
	"github.com/julianstephens/qingka/internal/logger"
	"github.com/julianstephens/qingka/internal/milestone"
	"github.com/julianstephens/qingka/internal/profile"
	"github.com/julianstephens/qingka/internal/storage"
	"github.com/julianstephens/qingka/internal/utils"
)

// ErrNoUser is returned by per-user commands when no --user was given.
var ErrNoUser = fmt.Errorf("no user selected (pass --user or set %s): %w", constants.EnvUser, apperrors.ErrInvalid)

type Context struct {
	Store      storage.Provider
	Profiles   *profile.Repository
	Feed       *feed.Repository
	Milestones *milestone.Repository
	Assistant  *assistant.Repository

	UserID    string
	ConfigDir string

	Out io.Writer
	Now func() time.Time
}

func NewContext(store storage.Provider, userID, configDir string) *Context {
	return &Context{
		Store:      store,
		Profiles:   profile.NewRepository(store),
		Feed:       feed.NewRepository(store),
		Milestones: milestone.NewRepository(store),
		Assistant:  assistant.NewRepository(store),
		UserID:     strings.TrimSpace(userID),
		ConfigDir:  configDir,
		Out:        os.Stdout,
		Now:        time.Now,
	}
}

// RequireUser returns the selected user id or ErrNoUser.
func (c *Context) RequireUser() (string, error) {
	if c.UserID == "" {
		return "", ErrNoUser
	}
	return c.UserID, nil
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Today() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// ConfigDirFor returns the directory holding logs, backups and the lockfile
// for a store location. Network stores fall back to the default config dir.
func ConfigDirFor(config string) string {
	trimmed := strings.TrimSpace(config)
	if strings.Contains(trimmed, "://") || strings.Contains(trimmed, "host=") {
		trimmed = constants.DefaultConfigPath
	}
	if expanded, err := utils.ExpandPath(trimmed); err == nil {
		trimmed = expanded
	}
	return filepath.Dir(trimmed)
}

// PerformAutomaticBackup snapshots file-backed stores and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if !storage.IsFileBacked(c.Store) {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Confirm asks a yes/no question on in, defaulting to no.
func Confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(response))
	return answer == "y" || answer == "yes", nil
}
