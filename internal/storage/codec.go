package storage

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/qingka/internal/logger"
)

// GetJSON decodes the value at (namespace, key) into v. It reports false when
// the value is absent, unreadable, or corrupt; the latter two are logged and
// otherwise treated as absent.
func GetJSON(p Provider, namespace, key string, v any) bool {
	raw, ok, err := p.Get(namespace, key)
	if err != nil {
		logger.Warn("Failed to read stored value", "namespace", namespace, "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		logger.Warn("Ignoring corrupt stored value", "namespace", namespace, "key", key, "error", err)
		return false
	}
	return true
}

// SetJSON serializes v and stores it at (namespace, key), replacing any previous value.
func SetJSON(p Provider, namespace, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s/%s: %w", namespace, key, err)
	}
	if err := p.Set(namespace, key, string(data)); err != nil {
		return fmt.Errorf("failed to store %s/%s: %w", namespace, key, err)
	}
	return nil
}
