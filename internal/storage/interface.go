package storage

// Provider is a namespaced key/value store. Values are opaque text; each
// (namespace, key) pair is an independent unit and writes replace the whole
// value. There are no multi-key transactions.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Keyed values
	Get(namespace, key string) (string, bool, error)
	Set(namespace, key, value string) error
	Remove(namespace, key string) error
	Keys(namespace string) ([]string, error)

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by backends with a versioned SQL schema.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
}
