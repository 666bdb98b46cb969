package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/qingka/internal/cli"
	"github.com/julianstephens/qingka/internal/cli/backups"
	"github.com/julianstephens/qingka/internal/cli/chat"
	"github.com/julianstephens/qingka/internal/cli/days"
	"github.com/julianstephens/qingka/internal/cli/know"
	"github.com/julianstephens/qingka/internal/cli/posts"
	"github.com/julianstephens/qingka/internal/cli/profiles"
	"github.com/julianstephens/qingka/internal/cli/system"
	"github.com/julianstephens/qingka/internal/constants"
	apperrors "github.com/julianstephens/qingka/internal/errors"
	"github.com/julianstephens/qingka/internal/logger"
	"github.com/julianstephens/qingka/internal/storage"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Store location: a SQLite path, a .json file, a PostgreSQL URL or a MongoDB URI. PostgreSQL URLs must NOT embed a password; use the OS keyring, QINGKA_DB_CONNECTION or .pgpass instead." type:"string" env:"QINGKA_CONFIG" default:"~/.config/qingka/qingka.db"`
	User     string `help:"User whose profile, milestones and chat history are used." env:"QINGKA_USER"`
	Verbose  bool   `help:"Mirror debug logs to stderr." short:"v"`
	LogLevel string `help:"Log level (debug, info, warn, error)." env:"QINGKA_LOG_LEVEL"`

	Init    system.InitCmd    `cmd:"" help:"Initialize qingka storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Serve   system.ServeCmd   `cmd:"" help:"Serve the HTTP API."`
	Debug   system.DebugCmd   `cmd:"" help:"Debug commands for troubleshooting."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the database connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check whether the OS keyring is available."`
	} `cmd:"" help:"Manage the database connection string in the OS keyring."`

	Profile profiles.ProfileCmd `cmd:"" help:"Show and edit your profile."`
	Post    posts.PostCmd       `cmd:"" help:"Browse and share posts in the community feed."`
	Days    days.DaysCmd        `cmd:"" help:"Manage your important days."`
	Chat    chat.ChatCmd        `cmd:"" help:"Review and record conversations with the assistant."`
	Know    know.KnowCmd        `cmd:"" help:"Browse the knowledge hub: categories, guides and articles."`
	Backup  struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
}

// skipsLoad reports whether the selected command opens or inspects the
// store itself.
func skipsLoad(command string) bool {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "init", "migrate", "doctor", "keyring":
		return true
	case "debug":
		return len(fields) > 1 && fields[1] == "db-path"
	}
	return false
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("青咖: a companion for young people living with cancer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_addr":   constants.DefaultServerAddr,
			"draft_tags":     strings.Join(constants.DefaultDraftTags, ","),
			"default_author": constants.DefaultAuthor,
		},
	)

	configDir := cli.ConfigDirFor(CLI.Config)
	if err := logger.Init(logger.Config{Debug: CLI.Verbose, ConfigDir: configDir, Level: CLI.LogLevel}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store, err := storage.Open(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := cli.NewContext(store, CLI.User, configDir)

	if !skipsLoad(ctx.Command()) {
		if err := store.Load(); err != nil {
			store.Close()
			apperrors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close store", "error", closeErr)
	}
	apperrors.Fatal(err)
}
