package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	apperrors "github.com/julianstephens/qingka/internal/errors"
)

const jsonStoreVersion = 1

type document struct {
	Version int                          `json:"version"`
	Data    map[string]map[string]string `json:"data"`
}

// JSONStore keeps every namespace in a single JSON file. The file is re-read
// on every operation so concurrent processes see each other's writes per key.
type JSONStore struct {
	path   string
	mu     sync.RWMutex
	loaded bool
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		// Keep existing data; just make sure it parses.
		if _, err := s.read(); err != nil {
			return err
		}
		s.loaded = true
		return nil
	}

	if err := s.write(&document{Version: jsonStoreVersion, Data: map[string]map[string]string{}}); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return apperrors.ErrNotInitialized
	}
	if _, err := s.read(); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

func (s *JSONStore) Close() error {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) Get(namespace, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return "", false, fmt.Errorf("storage not loaded")
	}
	doc, err := s.read()
	if err != nil {
		return "", false, err
	}
	value, ok := doc.Data[namespace][key]
	return value, ok, nil
}

func (s *JSONStore) Set(namespace, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return fmt.Errorf("storage not loaded")
	}
	doc, err := s.read()
	if err != nil {
		return err
	}
	if doc.Data[namespace] == nil {
		doc.Data[namespace] = make(map[string]string)
	}
	doc.Data[namespace][key] = value
	return s.write(doc)
}

func (s *JSONStore) Remove(namespace, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return fmt.Errorf("storage not loaded")
	}
	doc, err := s.read()
	if err != nil {
		return err
	}
	ns, ok := doc.Data[namespace]
	if !ok {
		return nil
	}
	if _, ok := ns[key]; !ok {
		return nil
	}
	delete(ns, key)
	if len(ns) == 0 {
		delete(doc.Data, namespace)
	}
	return s.write(doc)
}

func (s *JSONStore) Keys(namespace string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return nil, fmt.Errorf("storage not loaded")
	}
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(doc.Data[namespace]))
	for k := range doc.Data[namespace] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) read() (*document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrNotInitialized
		}
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Data == nil {
		doc.Data = make(map[string]map[string]string)
	}
	return doc, nil
}

// write replaces the file atomically via a temp file in the same directory.
func (s *JSONStore) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".qingka-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}
