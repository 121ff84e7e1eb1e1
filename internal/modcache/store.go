package modcache

import (
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// store 是只增不减的记忆化 map：命中直接返回，未命中经 singleflight 计算一次后写入。
type store[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V

	group     singleflight.Group
	keyString func(K) string

	hits   atomic.Uint64
	misses atomic.Uint64
	shared atomic.Uint64
}

func newStore[K comparable, V any](keyString func(K) string) *store[K, V] {
	return &store[K, V]{
		entries:   make(map[K]V),
		keyString: keyString,
	}
}

func (s *store[K, V]) get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

// getOrCompute 中每次调用只计入 hits、misses、shared 三者之一。
func (s *store[K, V]) getOrCompute(key K, compute func() (V, error)) (V, error) {
	if v, ok := s.get(key); ok {
		s.hits.Add(1)
		return v, nil
	}

	leader := false
	raw, err, shared := s.group.Do(s.keyString(key), func() (any, error) {
		leader = true
		// 上一轮 flight 可能刚好在 get 与 Do 之间完成写入。
		if v, ok := s.get(key); ok {
			s.hits.Add(1)
			return v, nil
		}
		s.misses.Add(1)

		v, err := compute()
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if existing, ok := s.entries[key]; ok {
			return existing, nil
		}
		s.entries[key] = v
		return v, nil
	})
	if shared && !leader {
		s.shared.Add(1)
	}
	if err != nil {
		var zero V
		return zero, err
	}
	v, _ := raw.(V)
	return v, nil
}

func (s *store[K, V]) stats() StoreStats {
	s.mu.RLock()
	entries := len(s.entries)
	s.mu.RUnlock()
	return StoreStats{
		Entries: entries,
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
		Shared:  s.shared.Load(),
	}
}

// unitFileKey 定位某个代码单元内的单个文件。
type unitFileKey struct {
	Unit string
	File string
}

// manifestKey 定位一份清单：Scope 为应用名或模块标识，File 为清单文件名。
type manifestKey struct {
	Scope string
	File  string
}

func stringKey(key string) string {
	return key
}

func pairKey(a, b string) string {
	return strconv.Quote(a) + "/" + strconv.Quote(b)
}

func unitFileKeyString(key unitFileKey) string {
	return pairKey(key.Unit, key.File)
}

func manifestKeyString(key manifestKey) string {
	return pairKey(key.Scope, key.File)
}
