package modcache

import (
	"errors"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/any-hub/modhost/internal/codeunit"
	"github.com/any-hub/modhost/internal/resource"
)

const testApp = "App1"

// countingLoader 记录每个名称的 Load 调用次数。
type countingLoader struct {
	mu    sync.Mutex
	units map[string]fstest.MapFS
	calls map[string]int
	fail  map[string]error
}

func newCountingLoader(units map[string]fstest.MapFS) *countingLoader {
	return &countingLoader{
		units: units,
		calls: make(map[string]int),
		fail:  make(map[string]error),
	}
}

func (l *countingLoader) Load(name string) (*codeunit.Unit, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls[name]++
	if err, ok := l.fail[name]; ok {
		return nil, err
	}
	files, ok := l.units[name]
	if !ok {
		return nil, &codeunit.LoadError{Name: name, Err: codeunit.ErrUnknownUnit}
	}
	return &codeunit.Unit{Name: name, Files: files}, nil
}

func (l *countingLoader) count(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[name]
}

func (l *countingLoader) setFailure(name string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err == nil {
		delete(l.fail, name)
		return
	}
	l.fail[name] = err
}

// countingProvider 包装 EmbeddedProvider 并记录每个代码单元的建索引次数。
type countingProvider struct {
	mu    sync.Mutex
	calls map[string]int
}

func (p *countingProvider) BuildIndex(unit *codeunit.Unit) (resource.Index, error) {
	p.mu.Lock()
	if p.calls == nil {
		p.calls = make(map[string]int)
	}
	p.calls[unit.Name]++
	p.mu.Unlock()
	return resource.EmbeddedProvider{}.BuildIndex(unit)
}

func (p *countingProvider) count(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[name]
}

func fixtureUnits() map[string]fstest.MapFS {
	return map[string]fstest.MapFS{
		testApp: {
			ModuleNamesMap: {Data: []byte("Mod.A\nMod.B\n")},
		},
		"Mod.A": {
			ModuleAssetsMap:      {Data: []byte("css\\site.css\r\nwwwroot\\js\\app.js\nimg/logo.png\n")},
			"css/site.css":       {Data: []byte("body{}")},
			"wwwroot/js/app.js":  {Data: []byte("console.log(1)")},
			"img/logo.png":       {Data: []byte{0x89, 'P', 'N', 'G'}},
			"Views/Index.cshtml": {Data: []byte("<h1/>")},
		},
		"Mod.B": {
			"readme.txt": {Data: []byte("no assets manifest here")},
		},
		"Mod.C": {
			ModuleAssetsMap: {Data: []byte("x.css\n")},
		},
	}
}

type fixture struct {
	cache    *Cache
	loader   *countingLoader
	provider *countingProvider
	env      Environment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loader := newCountingLoader(fixtureUnits())
	provider := &countingProvider{}
	cache, err := New(Options{Loader: loader, Provider: provider})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return &fixture{cache: cache, loader: loader, provider: provider, env: StaticEnvironment(testApp)}
}

func assertLines(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

var errTransient = errors.New("transient loader failure")
