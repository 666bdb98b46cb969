package constants

const (
	AppName            = "qingka"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/qingka/qingka.db"
	Version            = "v0.3.0"

	// DateFormat is the calendar date format used for every stored date (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Environment variables
	EnvConfig       = "QINGKA_CONFIG"
	EnvUser         = "QINGKA_USER"
	EnvDBConnection = "QINGKA_DB_CONNECTION"

	// Store namespaces
	NamespaceProfile    = "profile"
	NamespaceFeed       = "feed"
	NamespaceMilestones = "milestones"
	NamespaceAssistant  = "assistant"

	// FeedKey is the single key holding the shared feed collection
	FeedKey = "posts"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "qingka-"

	// Lockfile held by long-running processes (tui, serve)
	LockfileName = "qingka.lock"

	// Log rotation
	LogDirName    = "logs"
	LogFileName   = "qingka.log"
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// Server defaults
	DefaultServerAddr = ":8080"
)
