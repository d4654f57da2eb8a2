// Package state persists chrono session state (last viewed anchor, theme) between
// runs.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
)

const (
	CurrentVersion = 1

	defaultDebounce = 1 * time.Second
)

type SessionState struct {
	Version    int       `json:"version"`
	LastAnchor string    `json:"last_anchor,omitempty"` // hash at exit, restored on start
	Theme      string    `json:"theme,omitempty"`       // last theme chosen in the UI
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

type Manager struct {
	path     string
	lockPath string

	mu       sync.Mutex
	state    SessionState
	dirty    bool
	timer    *time.Timer
	debounce time.Duration
}

func New(path string) *Manager {
	path = strings.TrimSpace(path)
	lockPath := ""
	if path != "" {
		lockPath = path + ".lock"
	}
	return &Manager{
		path:     path,
		lockPath: lockPath,
		state:    SessionState{Version: CurrentVersion},
		debounce: defaultDebounce,
	}
}

func (m *Manager) Path() string { return m.path }

func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.path == "" {
		return nil
	}

	loaded, err := m.loadLocked()
	if err != nil {
		return err
	}
	m.state = loaded
	m.dirty = false
	return nil
}

func (m *Manager) Snapshot() SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) LastAnchor() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.LastAnchor
}

// SetLastAnchor records the current hash; writes are debounced.
func (m *Manager) SetLastAnchor(anchor string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	anchor = strings.TrimSpace(anchor)
	if anchor == m.state.LastAnchor {
		return
	}
	m.state.LastAnchor = anchor
	m.markDirtyLocked()
}

func (m *Manager) Theme() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Theme
}

func (m *Manager) SetTheme(theme string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	theme = strings.TrimSpace(theme)
	if theme == m.state.Theme {
		return
	}
	m.state.Theme = theme
	m.markDirtyLocked()
}

func (m *Manager) Close() error {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	needsSave := m.dirty
	m.mu.Unlock()
	if !needsSave {
		return nil
	}
	return m.SaveNow()
}

func (m *Manager) SaveNow() error {
	m.mu.Lock()
	if m.path == "" {
		m.dirty = false
		m.mu.Unlock()
		return nil
	}
	state := m.state
	m.dirty = false
	m.mu.Unlock()

	state.Version = CurrentVersion
	state.UpdatedAt = time.Now().UTC()

	if err := withFileLock(m.lockPath, func() error {
		return writeAtomicJSON(m.path, state)
	}); err != nil {
		m.mu.Lock()
		m.dirty = true
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *Manager) markDirtyLocked() {
	m.dirty = true
	if m.path == "" {
		return
	}
	if m.timer == nil {
		m.timer = time.AfterFunc(m.debounce, func() {
			_ = m.SaveNow()
		})
		return
	}
	_ = m.timer.Reset(m.debounce)
}

func (m *Manager) loadLocked() (SessionState, error) {
	var out SessionState
	if err := withFileLock(m.lockPath, func() error {
		payload, err := os.ReadFile(m.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				out = SessionState{Version: CurrentVersion}
				return nil
			}
			return err
		}
		if len(payload) == 0 {
			out = SessionState{Version: CurrentVersion}
			return nil
		}
		if err := sonic.Unmarshal(payload, &out); err != nil {
			return fmt.Errorf("decode %s: %w", m.path, err)
		}
		return nil
	}); err != nil {
		return SessionState{}, err
	}

	if out.Version <= 0 {
		out.Version = CurrentVersion
	}
	out.LastAnchor = strings.TrimPrefix(strings.TrimSpace(out.LastAnchor), "#")
	return out, nil
}

func withFileLock(lockPath string, fn func() error) error {
	if strings.TrimSpace(lockPath) == "" {
		return fn()
	}
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("lock %s: %w", lockPath, err)
	}
	defer func() {
		_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	}()
	return fn()
}

func writeAtomicJSON(path string, state SessionState) error {
	payload, err := sonic.ConfigStd.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
