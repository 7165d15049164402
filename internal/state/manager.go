package state

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileSystem defines minimum operations required for storage.
// core.FileSystem satisfies it.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
}

// Manager manages reading/writing the state file.
type Manager struct {
	FilePath string
	Current  *State
	FS       FileSystem
	mu       sync.RWMutex
}

// NewManager creates a new state manager and loads the existing file.
// A missing file starts an empty state.
func NewManager(path string, fsys FileSystem) (*Manager, error) {
	mgr := &Manager{
		FilePath: path,
		Current:  NewState(),
		FS:       fsys,
	}

	if err := mgr.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return mgr, nil
}

// Load reads state file from abstract FS.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.FS.ReadFile(m.FilePath)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, m.Current); err != nil {
		return err
	}
	if m.Current.Modules == nil {
		m.Current.Modules = make(map[string]ModuleEntry)
	}
	return nil
}

// Save writes current state to abstract FS.
func (m *Manager) Save() error {
	m.mu.Lock()
	m.Current.LastRun = time.Now()
	data, err := json.MarshalIndent(m.Current, "", "  ")
	m.mu.Unlock()
	if err != nil {
		return err
	}

	if err := m.FS.MkdirAll(filepath.Dir(m.FilePath), 0755); err != nil {
		return err
	}
	return m.FS.WriteFile(m.FilePath, data, 0644)
}

// Module returns the recorded entry for a module.
func (m *Manager) Module(name string) (ModuleEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.Current.Modules[name]
	return e, ok
}
