package modcache

// StoreStats 汇总单个 store 的条目数与命中情况；Shared 统计等待他人 flight 结果的调用。
// Hits + Misses + Shared 等于该 store 收到的调用总数。
type StoreStats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Shared  uint64 `json:"shared"`
}

// Stats 是四类缓存的快照，供诊断接口输出。
type Stats struct {
	Units     StoreStats `json:"code_units"`
	Indexes   StoreStats `json:"resource_indexes"`
	Handles   StoreStats `json:"resource_handles"`
	Manifests StoreStats `json:"manifests"`
}

// Stats 返回当前缓存快照。
func (c *Cache) Stats() Stats {
	return Stats{
		Units:     c.units.stats(),
		Indexes:   c.indexes.stats(),
		Handles:   c.handles.stats(),
		Manifests: c.manifests.stats(),
	}
}
