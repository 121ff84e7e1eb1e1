package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/any-hub/modhost/internal/codeunit"
)

// Index 是代码单元内嵌文件的查找表，File 永不失败。
type Index interface {
	File(name string) *Handle
	Names() []string
}

// Provider 为代码单元构建 Index。
type Provider interface {
	BuildIndex(unit *codeunit.Unit) (Index, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(unit *codeunit.Unit) (Index, error)

// BuildIndex makes ProviderFunc satisfy Provider.
func (f ProviderFunc) BuildIndex(unit *codeunit.Unit) (Index, error) {
	return f(unit)
}

// EmbeddedProvider 遍历代码单元的 fs.FS，一次性记录所有普通文件。
type EmbeddedProvider struct{}

type fileEntry struct {
	size    int64
	modTime time.Time
}

type fsIndex struct {
	fsys  fs.FS
	files map[string]fileEntry
}

// BuildIndex 遍历 unit.Files 并生成只读索引。
func (EmbeddedProvider) BuildIndex(unit *codeunit.Unit) (Index, error) {
	if unit == nil || unit.Files == nil {
		return nil, errors.New("code unit has no files")
	}

	idx := &fsIndex{fsys: unit.Files, files: make(map[string]fileEntry)}
	err := fs.WalkDir(unit.Files, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		idx.files[p] = fileEntry{size: info.Size(), modTime: info.ModTime()}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("index code unit %s: %w", unit.Name, err)
	}
	return idx, nil
}

func (i *fsIndex) File(name string) *Handle {
	normalized, ok := NormalizePath(name)
	if !ok {
		return NotFound(name)
	}
	entry, exists := i.files[normalized]
	if !exists {
		return NotFound(normalized)
	}
	return &Handle{
		name:    normalized,
		exists:  true,
		size:    entry.size,
		modTime: entry.modTime,
		fsys:    i.fsys,
	}
}

func (i *fsIndex) Names() []string {
	result := make([]string, 0, len(i.files))
	for name := range i.files {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// NormalizePath 将 Windows 分隔符替换为 /，去掉前导 / 并清理 . 与 ..；
// 越出根目录或为空时返回 false。
func NormalizePath(name string) (string, bool) {
	name = strings.ReplaceAll(name, `\`, "/")
	if c := path.Clean(name); c == ".." || strings.HasPrefix(c, "../") {
		return "", false
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+name), "/")
	if cleaned == "" || !fs.ValidPath(cleaned) {
		return "", false
	}
	return cleaned, true
}
