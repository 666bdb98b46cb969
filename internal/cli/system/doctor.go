package system

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/qingka/internal/backup"
	"github.com/julianstephens/qingka/internal/cli"
	"github.com/julianstephens/qingka/internal/constants"
	"github.com/julianstephens/qingka/internal/keyring"
	"github.com/julianstephens/qingka/internal/lockfile"
	"github.com/julianstephens/qingka/internal/models"
	"github.com/julianstephens/qingka/internal/storage"
	"github.com/julianstephens/qingka/internal/storage/sqlite"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := false

	if err := checkStoreReachable(ctx); err != nil {
		ctx.Printf("❌ Store reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Store reachable: OK\n")
		reachable = true
	}

	if reachable {
		counts, err := checkDataIntegrity(ctx)
		if err != nil {
			ctx.Printf("❌ Data integrity: FAIL\n")
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			ctx.Printf("✓ Data integrity: OK (%d profile(s), %d post(s), %d milestone list(s), %d chat history(ies))\n",
				counts[constants.NamespaceProfile], counts[constants.NamespaceFeed],
				counts[constants.NamespaceMilestones], counts[constants.NamespaceAssistant])
		}
	} else {
		ctx.Printf("⊘ Data integrity: SKIPPED (store not reachable)\n")
	}

	if storage.IsFileBacked(ctx.Store) {
		if err := checkBackupsPresent(ctx); err != nil {
			ctx.Printf("⚠ Backups present: WARNING\n")
			ctx.Printf("   %v\n", err)
		} else {
			ctx.Printf("✓ Backups present: OK\n")
		}
	}

	if err := checkClockTimezone(ctx.Today()); err != nil {
		ctx.Printf("❌ Clock/timezone: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Clock/timezone: OK\n")
	}

	if keyring.IsAvailable() {
		ctx.Printf("✓ OS keyring: available\n")
	} else {
		ctx.Printf("ℹ OS keyring: unavailable (use %s for PostgreSQL credentials)\n", constants.EnvDBConnection)
	}

	holder, err := lockfile.Inspect(ctx.ConfigDir)
	switch {
	case err != nil:
		ctx.Printf("⚠ Other processes: WARNING\n")
		ctx.Printf("   %v\n", err)
	case holder != nil:
		ctx.Printf("⚠ Other processes: %s is running; concurrent writes are last-writer-wins\n", holder)
	default:
		ctx.Printf("✓ Other processes: none\n")
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

// checkDataIntegrity decodes every stored value and returns how many
// records each namespace holds.
func checkDataIntegrity(ctx *cli.Context) (map[string]int, error) {
	counts := make(map[string]int)

	keys, err := ctx.Store.Keys(constants.NamespaceProfile)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		var p models.UserProfile
		if err := decode(ctx.Store, constants.NamespaceProfile, key, &p); err != nil {
			return nil, err
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile %s: %w", key, err)
		}
		counts[constants.NamespaceProfile]++
	}

	var posts []models.SocialPost
	if err := decode(ctx.Store, constants.NamespaceFeed, constants.FeedKey, &posts); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for _, post := range posts {
		if seen[post.ID] {
			return nil, fmt.Errorf("duplicate post ID found: %s", post.ID)
		}
		seen[post.ID] = true
		if err := post.Validate(); err != nil {
			return nil, fmt.Errorf("post %s: %w", post.ID, err)
		}
	}
	counts[constants.NamespaceFeed] = len(posts)

	keys, err = ctx.Store.Keys(constants.NamespaceMilestones)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		var events []models.DaysMatterEvent
		if err := decode(ctx.Store, constants.NamespaceMilestones, key, &events); err != nil {
			return nil, err
		}
		for _, e := range events {
			if err := e.Validate(); err != nil {
				return nil, fmt.Errorf("milestone %s for %s: %w", e.ID, key, err)
			}
		}
		counts[constants.NamespaceMilestones]++
	}

	keys, err = ctx.Store.Keys(constants.NamespaceAssistant)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		var history []models.ChatMessage
		if err := decode(ctx.Store, constants.NamespaceAssistant, key, &history); err != nil {
			return nil, err
		}
		counts[constants.NamespaceAssistant]++
	}

	return counts, nil
}

func decode(p storage.Provider, namespace, key string, v any) error {
	raw, ok, err := p.Get(namespace, key)
	if err != nil {
		return fmt.Errorf("failed to read %s/%s: %w", namespace, key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("corrupt value at %s/%s: %w", namespace, key, err)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'qingka backup create'")
	}
	return nil
}

func checkClockTimezone(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
