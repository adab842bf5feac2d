package core

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

var (
	registered = make(map[string]ModuleInfo)
	registryMu sync.RWMutex
)

// RegisterModule adds a module to the global registry. The instance is
// only used to read its ModuleInfo; fresh instances come from info.New.
// Called from init() in each module package, so a bad registration
// panics at startup rather than surfacing later.
func RegisterModule(instance Module) {
	info := instance.ModuleInfo()
	if info.ID == "" {
		panic("module registered with empty ID")
	}
	if info.New == nil {
		panic(fmt.Sprintf("module %s: nil New function", info.ID))
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	id := string(info.ID)
	if _, exists := registered[id]; exists {
		panic(fmt.Sprintf("duplicate module registration: %s", id))
	}
	registered[id] = info
}

// GetModule looks up a registered module by ID.
func GetModule(id string) (ModuleInfo, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	info, ok := registered[id]
	return info, ok
}

// GetModules returns every registered module sorted by ID. Used by the
// version command and by config validation.
func GetModules() []ModuleInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]ModuleInfo, 0, len(registered))
	for _, info := range registered {
		result = append(result, info)
	}
	slices.SortFunc(result, func(a, b ModuleInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result
}

// resetRegistry clears the registry. Only for testing.
func resetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registered = make(map[string]ModuleInfo)
}
