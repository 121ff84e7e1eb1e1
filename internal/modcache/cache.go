package modcache

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/any-hub/modhost/internal/codeunit"
	"github.com/any-hub/modhost/internal/logging"
	"github.com/any-hub/modhost/internal/resource"
)

// Options 描述构建 Cache 所需的下层组件。
type Options struct {
	Loader   codeunit.Loader
	Provider resource.Provider
	Logger   *logrus.Logger
}

// Cache 持有四类只增不减的 store。调用方应在启动阶段创建一次并在所有请求间共享。
type Cache struct {
	loader   codeunit.Loader
	provider resource.Provider
	logger   *logrus.Logger

	units     *store[string, *codeunit.Unit]
	indexes   *store[string, resource.Index]
	handles   *store[unitFileKey, *resource.Handle]
	manifests *store[manifestKey, *manifest]
}

// New 创建空缓存；Provider 缺省为 resource.EmbeddedProvider，Logger 缺省丢弃输出。
func New(opts Options) (*Cache, error) {
	if opts.Loader == nil {
		return nil, errors.New("code unit loader is required")
	}
	provider := opts.Provider
	if provider == nil {
		provider = resource.EmbeddedProvider{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	return &Cache{
		loader:    opts.Loader,
		provider:  provider,
		logger:    logger,
		units:     newStore[string, *codeunit.Unit](stringKey),
		indexes:   newStore[string, resource.Index](stringKey),
		handles:   newStore[unitFileKey, *resource.Handle](unitFileKeyString),
		manifests: newStore[manifestKey, *manifest](manifestKeyString),
	}, nil
}

// ResolveCodeUnit 返回 name 对应的代码单元，Loader 每个名称最多成功调用一次。
// 加载失败以 *codeunit.LoadError 返回且不缓存，后续调用会重新尝试。
func (c *Cache) ResolveCodeUnit(name string) (*codeunit.Unit, error) {
	return c.units.getOrCompute(name, func() (*codeunit.Unit, error) {
		unit, err := c.loader.Load(name)
		if err == nil && unit == nil {
			err = codeunit.ErrUnknownUnit
		}
		if err != nil {
			var loadErr *codeunit.LoadError
			if !errors.As(err, &loadErr) {
				err = &codeunit.LoadError{Name: name, Err: err}
			}
			c.logger.WithFields(logging.UnitFields("load_unit", name)).Warn(err.Error())
			return nil, err
		}
		c.logger.WithFields(logging.UnitFields("load_unit", name)).Debug("code unit loaded")
		return unit, nil
	})
}

// ResourceIndexFor 返回代码单元的资源索引；命中时既不加载也不重建索引。
func (c *Cache) ResourceIndexFor(unitName string) (resource.Index, error) {
	return c.indexes.getOrCompute(unitName, func() (resource.Index, error) {
		unit, err := c.ResolveCodeUnit(unitName)
		if err != nil {
			return nil, err
		}
		idx, err := c.provider.BuildIndex(unit)
		if err != nil {
			return nil, err
		}
		if idx == nil {
			return nil, errors.New("resource provider returned nil index for " + unitName)
		}
		fields := logging.UnitFields("build_index", unitName)
		fields["files"] = len(idx.Names())
		c.logger.WithFields(fields).Debug("resource index built")
		return idx, nil
	})
}

// ResourceHandleFor 返回代码单元内 fileName 的句柄；文件缺失时缓存 “not found” 句柄。
// 键使用规范化后的路径，`a\b.css`、`/a/b.css` 与 `a/b.css` 共用一个条目；
// 无法规范化的路径直接返回 not found，不写入缓存。
func (c *Cache) ResourceHandleFor(unitName, fileName string) (*resource.Handle, error) {
	normalized, ok := resource.NormalizePath(fileName)
	if !ok {
		if _, err := c.ResourceIndexFor(unitName); err != nil {
			return nil, err
		}
		return resource.NotFound(fileName), nil
	}
	key := unitFileKey{Unit: unitName, File: normalized}
	return c.handles.getOrCompute(key, func() (*resource.Handle, error) {
		idx, err := c.ResourceIndexFor(unitName)
		if err != nil {
			return nil, err
		}
		handle := idx.File(normalized)
		if handle == nil {
			handle = resource.NotFound(normalized)
		}
		return handle, nil
	})
}
