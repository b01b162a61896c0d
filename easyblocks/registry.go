// Package easyblocks keeps the table of package specific build blocks.
// Blocks register themselves from init; import them for side effects.
package easyblocks

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goplus/easyblocks/easyconfig"
	"github.com/goplus/easyblocks/pkgs/buildsys"
)

// classPrefix is accepted in front of block names, e.g. "EB_SuperLU".
const classPrefix = "EB_"

// Factory creates a block building srcDir into installDir.
type Factory func(cfg *easyconfig.Config, srcDir, installDir string) buildsys.EasyBlock

// Entry is a registered block.
type Entry struct {
	Name    string
	Options easyconfig.Options
	New     Factory
}

var (
	mu      sync.RWMutex
	entries = map[string]*Entry{}
)

// Register adds a block under name. It panics if name is taken.
func Register(name string, opts easyconfig.Options, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	key := strings.ToLower(name)
	if _, dup := entries[key]; dup {
		panic("easyblocks: duplicate registration of " + name)
	}
	entries[key] = &Entry{Name: name, Options: opts, New: f}
}

// Lookup finds a block by name, ignoring case and an "EB_" prefix.
func Lookup(name string) (*Entry, error) {
	mu.RLock()
	defer mu.RUnlock()
	key := strings.ToLower(strings.TrimPrefix(name, classPrefix))
	if e, ok := entries[key]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("no easyblock found for %q", name)
}

// Names returns the registered block names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}
