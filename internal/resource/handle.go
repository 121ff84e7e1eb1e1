package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"time"
)

// ErrNotFound 表示 Handle 指向的文件不存在。
var ErrNotFound = errors.New("resource not found")

// Handle 指向 Index 中的单个文件；Exists 为 false 时即 “not found” 哨兵。
type Handle struct {
	name    string
	exists  bool
	size    int64
	modTime time.Time
	fsys    fs.FS
}

// NotFound 返回表示文件缺失的 Handle。
func NotFound(name string) *Handle {
	return &Handle{name: name}
}

// Name 返回规范化后的文件路径。
func (h *Handle) Name() string {
	return h.name
}

// Exists 区分真实文件与 “not found” 哨兵。
func (h *Handle) Exists() bool {
	return h != nil && h.exists
}

func (h *Handle) Size() int64 {
	return h.size
}

func (h *Handle) ModTime() time.Time {
	return h.modTime
}

// Open 打开文件内容；对缺失文件返回包含 ErrNotFound 的错误。
func (h *Handle) Open() (fs.File, error) {
	if !h.Exists() {
		return nil, fmt.Errorf("open %s: %w", h.Name(), ErrNotFound)
	}
	return h.fsys.Open(h.name)
}
