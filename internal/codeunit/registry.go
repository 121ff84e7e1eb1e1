package codeunit

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var globalRegistry = newRegistry()

type registry struct {
	mu    sync.RWMutex
	units map[string]Unit
}

func newRegistry() *registry {
	return &registry{units: make(map[string]Unit)}
}

// Register 将代码单元加入全局注册表，重复名称会返回错误。名称区分大小写。
func Register(unit Unit) error {
	return globalRegistry.register(unit)
}

// MustRegister 在注册失败时 panic，适合模块 init() 中调用。
func MustRegister(unit Unit) {
	if err := Register(unit); err != nil {
		panic(err)
	}
}

// Names 返回所有已注册代码单元的名称（按字典序），供调试或诊断使用。
func Names() []string {
	return globalRegistry.names()
}

// RegistryLoader 返回基于全局注册表的 Loader。
func RegistryLoader() Loader {
	return LoaderFunc(globalRegistry.load)
}

func (r *registry) register(unit Unit) error {
	name := strings.TrimSpace(unit.Name)
	if name == "" {
		return fmt.Errorf("code unit name is required")
	}
	if unit.Files == nil {
		return fmt.Errorf("code unit %s has no files", name)
	}
	unit.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.units[name]; exists {
		return fmt.Errorf("code unit %s already registered", name)
	}
	r.units[name] = unit
	return nil
}

func (r *registry) load(name string) (*Unit, error) {
	r.mu.RLock()
	unit, ok := r.units[name]
	r.mu.RUnlock()

	if !ok {
		return nil, newLoadError(name, ErrUnknownUnit)
	}
	return &unit, nil
}

func (r *registry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.units) == 0 {
		return nil
	}
	result := make([]string, 0, len(r.units))
	for name := range r.units {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}
