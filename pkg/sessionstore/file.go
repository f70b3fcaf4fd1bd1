package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// File is a session store backed by a single JSON file on disk. It is the
// durable-storage analog of browser local storage for CLI and desktop
// consumers of the SDK.
//
// The whole key set is rewritten on every mutation. Session state is three
// small strings, so this is cheap; it also keeps the file readable for
// debugging. The file is created with mode 0600 because it holds credentials.
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]string
	loaded bool
}

// NewFile creates a file-backed session store at path. The file does not
// need to exist yet; it is created on the first Set.
func NewFile(path string) *File {
	return &File{
		path:   path,
		values: make(map[string]string),
	}
}

// Get returns the value stored under key, or ErrNotFound.
func (f *File) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.load(); err != nil {
		return "", err
	}

	value, ok := f.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores value under key and flushes the store to disk.
func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.load(); err != nil {
		return err
	}

	f.values[key] = value
	return f.flush()
}

// Delete removes key and flushes the store to disk. Missing keys are ignored.
func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.load(); err != nil {
		return err
	}

	if _, ok := f.values[key]; !ok {
		return nil
	}
	delete(f.values, key)
	return f.flush()
}

// load reads the backing file once and caches its contents.
// A missing file is a valid empty store. Callers must hold f.mu.
func (f *File) load() error {
	if f.loaded {
		return nil
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			f.loaded = true
			return nil
		}
		return fmt.Errorf("read session file: %w", err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &f.values); err != nil {
			// A corrupt session file should behave like a logged-out
			// session, not poison every request.
			log.Warn().Err(err).Str("path", f.path).Msg("Session file is corrupt, starting empty")
			f.values = make(map[string]string)
		}
	}

	f.loaded = true
	return nil
}

// flush writes the current contents atomically via a temp file rename.
// Callers must hold f.mu.
func (f *File) flush() error {
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session file: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod session file: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}
