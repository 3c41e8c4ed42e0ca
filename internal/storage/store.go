// Package storage persists session records in a namespaced JSON file.
//
// The file holds one object per namespace, each shaped as
// {"state": <session record>, "version": 0}. Other namespaces in the same file
// are left untouched on save and clear.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/yildizm/CalcBuilder/internal/logger"
	"github.com/yildizm/CalcBuilder/internal/session"
)

// DefaultNamespace is the key a session is stored under
const DefaultNamespace = "calculator-storage"

// Version is the record format written by Save
const Version = 0

var (
	// ErrNotFound is returned when no record exists for the namespace
	ErrNotFound = errors.New("no saved session")
	// ErrCorrupt is returned when the file is not valid JSON
	ErrCorrupt = errors.New("storage file is not valid JSON")
	// ErrUnsupportedVersion is returned for records written by a newer format
	ErrUnsupportedVersion = errors.New("unsupported record version")
)

// FileStore reads and writes one namespace of a JSON storage file
type FileStore struct {
	Path      string
	Namespace string
	Log       *logger.Logger
}

// NewFileStore creates a store; an empty namespace selects DefaultNamespace
func NewFileStore(path, namespace string, log *logger.Logger) *FileStore {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if log == nil {
		log = logger.Discard()
	}
	return &FileStore{Path: path, Namespace: namespace, Log: log.WithComponent("storage")}
}

func (f *FileStore) logger() *logger.Logger {
	if f.Log == nil {
		return logger.Discard()
	}
	return f.Log
}

func (f *FileStore) namespace() string {
	if f.Namespace == "" {
		return DefaultNamespace
	}
	return f.Namespace
}

// Load returns the record stored under the namespace
func (f *FileStore) Load() (*session.Record, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", f.Path, err)
	}
	return decode(data, f.namespace())
}

func decode(data []byte, namespace string) (*session.Record, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrNotFound
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrCorrupt
	}

	root := escapePath(namespace)
	if v := gjson.GetBytes(data, root+".version"); v.Exists() && v.Int() != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v.Int())
	}

	state := gjson.GetBytes(data, root+".state")
	if !state.Exists() || !state.IsObject() {
		return nil, ErrNotFound
	}

	rec := session.NewRecord()
	if err := json.Unmarshal([]byte(state.Raw), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return &rec, nil
}

// Save writes the record under the namespace, replacing the file atomically
func (f *FileStore) Save(rec session.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	data, err := f.readExisting()
	if err != nil {
		return err
	}

	root := escapePath(f.namespace())
	data, err = sjson.SetRawBytes(data, root+".state", payload)
	if err != nil {
		return fmt.Errorf("failed to set state: %w", err)
	}
	data, err = sjson.SetBytes(data, root+".version", Version)
	if err != nil {
		return fmt.Errorf("failed to set version: %w", err)
	}

	if err := writeAtomic(f.Path, pretty.Pretty(data)); err != nil {
		return err
	}
	f.logger().DebugWithFields("saved session", []logger.Field{logger.Path(f.Path), logger.F("namespace", f.namespace())})
	return nil
}

// Clear removes the namespace from the file. A missing file is not an error.
func (f *FileStore) Clear() error {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", f.Path, err)
	}
	if !gjson.ValidBytes(data) {
		return ErrCorrupt
	}

	data, err = sjson.DeleteBytes(data, escapePath(f.namespace()))
	if err != nil {
		return fmt.Errorf("failed to clear namespace: %w", err)
	}
	return writeAtomic(f.Path, pretty.Pretty(data))
}

// readExisting returns the current file contents or an empty object
func (f *FileStore) readExisting() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return []byte("{}"), nil
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", f.Path, err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return []byte("{}"), nil
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrCorrupt
	}
	return data, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// escapePath quotes gjson/sjson path metacharacters in a namespace
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Autosave saves the session after every change and returns the unsubscribe func.
// Failures are logged, never returned.
func (f *FileStore) Autosave(s *session.Session) func() {
	return s.Subscribe(func(ev session.Event) {
		if err := f.Save(s.Export()); err != nil {
			f.logger().WarnWithFields("autosave failed", []logger.Field{logger.Path(f.Path), logger.F("event", string(ev.Kind)), logger.Error(err)})
		}
	})
}
