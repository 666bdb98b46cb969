// Package lockfile records which long-running qingka process (tui or serve)
// is using a store. It is advisory: the store itself stays last-writer-wins.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/qingka/internal/constants"
	"github.com/julianstephens/qingka/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpid          = os.Getpid

	// ErrHeld is returned by Acquire when another live qingka process holds the lock.
	ErrHeld = errors.New("store is in use by another qingka process")
)

// Holder describes the process recorded in a lockfile.
type Holder struct {
	PID     int
	Mode    string
	Started time.Time
}

func (h Holder) String() string {
	return fmt.Sprintf("pid %d (%s, since %s)", h.PID, h.Mode, h.Started.Format(time.RFC3339))
}

// Lock is a lockfile owned by this process.
type Lock struct {
	path string
	pid  int
}

// Path returns the lockfile location for a config directory.
func Path(configDir string) string {
	return filepath.Join(configDir, constants.LockfileName)
}

// Acquire writes this process's lockfile. A stale file (dead or foreign
// process, or unparsable) is replaced; a live holder yields ErrHeld along
// with its details.
func Acquire(configDir, mode string) (*Lock, *Holder, error) {
	path := Path(configDir)

	holder, err := Inspect(configDir)
	if err != nil {
		return nil, nil, err
	}
	if holder != nil && holder.PID != getpid() {
		return nil, holder, ErrHeld
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	pid := getpid()
	content := fmt.Sprintf("%d|%s|%s", pid, mode, time.Now().UTC().Format(time.RFC3339))
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return nil, nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	logger.Debug("Acquired lockfile", "path", path, "mode", mode)
	return &Lock{path: path, pid: pid}, nil, nil
}

// Release removes the lockfile if it still names this process.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	holder, err := parse(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		// Unreadable; leave it for the next Acquire to replace.
		return nil
	}
	if holder.PID != l.pid {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// Inspect returns the live holder of configDir's lockfile, or nil when there
// is no lockfile or it is stale.
func Inspect(configDir string) (*Holder, error) {
	path := Path(configDir)
	holder, err := parse(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		logger.Warn("Ignoring malformed lockfile", "path", path, "error", err)
		return nil, nil
	}

	process, err := findProcessFunc(holder.PID)
	if err != nil || process == nil {
		return nil, nil
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return nil, nil
	}
	return holder, nil
}

func parse(path string) (*Holder, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return nil, errors.New("lockfile is malformed")
	}

	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return nil, errors.New("invalid process ID in lockfile")
	}
	if strings.TrimSpace(parts[1]) == "" {
		return nil, errors.New("mode in lockfile is empty")
	}
	started, err := time.Parse(time.RFC3339, parts[2])
	if err != nil {
		return nil, fmt.Errorf("invalid start time in lockfile: %w", err)
	}

	return &Holder{PID: pid, Mode: parts[1], Started: started}, nil
}
