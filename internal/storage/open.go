package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/qingka/internal/constants"
	"github.com/julianstephens/qingka/internal/keyring"
	"github.com/julianstephens/qingka/internal/logger"
	"github.com/julianstephens/qingka/internal/storage/mongo"
	"github.com/julianstephens/qingka/internal/storage/postgres"
	"github.com/julianstephens/qingka/internal/storage/sqlite"
	"github.com/julianstephens/qingka/internal/utils"
)

var (
	_ Provider = (*JSONStore)(nil)
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
	_ Provider = (*mongo.Store)(nil)

	_ Migrator = (*sqlite.Store)(nil)
	_ Migrator = (*postgres.Store)(nil)
)

// Open returns the backend named by config without connecting to it:
// a postgres:// or postgresql:// URL, a mongodb:// or mongodb+srv:// URI,
// a path ending in .json, or otherwise a SQLite database path.
func Open(config string) (Provider, error) {
	config = strings.TrimSpace(config)
	if config == "" {
		return nil, fmt.Errorf("no storage location configured")
	}

	switch {
	case postgres.IsConnString(config):
		if err := postgres.ValidateConnString(config); err != nil {
			return nil, fmt.Errorf("%w (store the full connection string with 'qingka keyring set' or %s instead)", err, constants.EnvDBConnection)
		}
		connStr, source := keyring.ResolveConnectionString(config)
		logger.Debug("Using PostgreSQL storage", "credentials", source)
		return postgres.New(connStr), nil
	case mongo.IsConnString(config):
		logger.Debug("Using MongoDB storage", "database", mongo.DatabaseName(config))
		return mongo.New(config), nil
	}

	path, err := utils.ExpandPath(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		logger.Debug("Using JSON file storage", "path", path)
		return NewJSONStore(path), nil
	}
	logger.Debug("Using SQLite storage", "path", path)
	return sqlite.New(path), nil
}

// IsFileBacked reports whether p keeps its data in a local file.
func IsFileBacked(p Provider) bool {
	switch p.(type) {
	case *JSONStore, *sqlite.Store:
		return true
	}
	return false
}
