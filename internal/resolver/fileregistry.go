package resolver

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/zot/rdflua/internal/config"
	"github.com/zot/rdflua/internal/rdf"
)

// FileRegistry is the in-memory, host-mutated registry backing
// file://NAME specifiers. It is process-wide and host-serialised
// (spec.md §5 "Shared resources"), matching the teacher's own
// process-wide loadedModules/wrapper registries.
type FileRegistry struct {
	mu      sync.RWMutex
	sources map[string]string
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewFileRegistry creates an empty registry.
func NewFileRegistry() *FileRegistry {
	return &FileRegistry{sources: make(map[string]string)}
}

// Register installs source under name so that require("file://name")
// resolves to it. This is the host's out-of-band registration path
// (spec.md §4.6).
func (f *FileRegistry) Register(name, source string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources[name] = source
}

// Unregister removes a previously registered module.
func (f *FileRegistry) Unregister(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sources, name)
}

// Clear removes every registered module — the host-exposed cache-clear
// operation spec.md §4.6 requires.
func (f *FileRegistry) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources = make(map[string]string)
}

// Resolve implements the file:// half of Resolver.Resolve.
func (f *FileRegistry) Resolve(spec string) (string, string, error) {
	name := strings.TrimPrefix(spec, "file://")
	f.mu.RLock()
	src, ok := f.sources[name]
	f.mu.RUnlock()
	if !ok {
		return "", "", rdf.NewError(rdf.ModuleLoadError, "file module %q is not registered", name)
	}
	return src, spec, nil
}

// LoadDir registers every *.lua file in dir under its base name (without
// extension) as a file:// module, in the shape of the teacher's own
// directory-of-Lua-files convention.
func (f *FileRegistry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".lua" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(e.Name(), ".lua")
		f.Register(name, string(data))
	}
	return nil
}

// Watch reloads dir's registrations whenever a *.lua file inside it
// changes, in the shape of the teacher's internal/lua/hotloader.go
// (fsnotify watch, reload on write or create; events are not
// debounced). Failures reloading a
// single file are logged, not fatal — mirroring the sync adapter's
// non-fatal background-failure policy.
func (f *FileRegistry) Watch(dir string, logger *config.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}
	f.watcher = watcher
	f.done = make(chan struct{})
	go f.watchLoop(dir, logger)
	return nil
}

func (f *FileRegistry) watchLoop(dir string, logger *config.Logger) {
	for {
		select {
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != ".lua" {
				continue
			}
			data, err := os.ReadFile(event.Name)
			if err != nil {
				logger.Log(config.LevelWarn, "[resolver] reload %s failed: %v", event.Name, err)
				continue
			}
			name := strings.TrimSuffix(filepath.Base(event.Name), ".lua")
			f.Register(name, string(data))
			logger.Log(config.LevelInfo, "[resolver] reloaded file://%s", name)
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			logger.Log(config.LevelWarn, "[resolver] watch error: %v", err)
		case <-f.done:
			return
		}
	}
}

// StopWatch stops a running Watch, if any.
func (f *FileRegistry) StopWatch() {
	if f.watcher == nil {
		return
	}
	close(f.done)
	f.watcher.Close()
	f.watcher = nil
}
