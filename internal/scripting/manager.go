package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/anarpg/internal/game/stats"
)

// ErrNotLoaded is returned by ModifyStats before Load has succeeded.
var ErrNotLoaded = errors.New("scripting: no scripts loaded")

// Manager owns one sandboxed LState holding the ability modifier scripts and
// runs named hooks against a character's stats.
//
// Manager is safe for concurrent use; calls into the VM are serialised.
type Manager struct {
	mu        sync.Mutex
	state     *lua.LState
	instLimit int
	curve     stats.Curve
	logger    *zap.Logger
}

// NewManager creates a Manager with no scripts loaded. engine.probability
// inside scripts uses curve.
//
// Precondition: logger must be non-nil; instLimit >= 0 (0 uses DefaultInstructionLimit).
// Postcondition: Returns a non-nil Manager.
func NewManager(curve stats.Curve, instLimit int, logger *zap.Logger) *Manager {
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{instLimit: instLimit, curve: curve, logger: logger}
}

// Load creates a fresh VM, registers the engine module, then executes every
// *.lua file in scriptDir in lexicographic order. On success the previous VM,
// if any, is closed and replaced.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: Returns nil with the new VM installed, or an error with the
// previous VM left in place.
func (m *Manager) Load(scriptDir string) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	L := NewSandboxedState()
	m.RegisterModules(L)
	for _, path := range luaFiles {
		release := Limit(L, m.instLimit)
		err := L.DoFile(path)
		release()
		if err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	old := m.state
	m.state = L
	m.mu.Unlock()
	if old != nil {
		old.Close()
	}
	m.logger.Debug("scripting: scripts loaded",
		zap.String("dir", scriptDir),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

// HasHook reports whether a global function named hook is defined.
func (m *Manager) HasHook(hook string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return false
	}
	_, ok := m.state.GetGlobal(hook).(*lua.LFunction)
	return ok
}

// ModifyStats calls the global Lua function hook with a table holding s. The
// script mutates the table in place; numeric fields are copied back into s.
// An undefined hook is a no-op. Lua runtime errors are logged at Warn level
// and returned; s is left unchanged in that case.
//
// Each call runs with its own global environment: globals the hook assigns
// are discarded when it returns, so one call cannot see another's state.
//
// Precondition: s must not be nil.
// Postcondition: Returns nil and s reflects the table after the hook, or a non-nil error.
func (m *Manager) ModifyStats(hook string, s *stats.Stats) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == nil {
		return ErrNotLoaded
	}
	L := m.state
	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return nil
	}
	if f, ok := fn.(*lua.LFunction); ok {
		fn = Isolate(L, f)
	}

	tbl := statsTable(L, s)
	release := Limit(L, m.instLimit)
	err := L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, tbl)
	release()
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return fmt.Errorf("scripting: hook %q: %w", hook, err)
	}
	readStats(L, tbl, s)
	return nil
}

// Close releases the VM. Subsequent ModifyStats calls return ErrNotLoaded.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != nil {
		m.state.Close()
		m.state = nil
	}
}
