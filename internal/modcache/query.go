package modcache

import (
	"fmt"
	"slices"
	"strings"

	"github.com/any-hub/modhost/internal/codeunit"
	"github.com/any-hub/modhost/internal/logging"
	"github.com/any-hub/modhost/internal/resource"
)

const (
	// ModuleNamesMap 列出宿主应用已知的模块标识，位于应用自身的代码单元中。
	ModuleNamesMap = "module.names.map"
	// ModuleAssetsMap 列出模块携带的资源路径，位于模块自身的代码单元中。
	ModuleAssetsMap = "module.assets.map"
)

// Environment 提供当前宿主应用的名称，即根代码单元名与 module.names.map 的查找范围。
type Environment interface {
	ApplicationName() string
}

// StaticEnvironment 以固定字符串实现 Environment。
type StaticEnvironment string

func (e StaticEnvironment) ApplicationName() string {
	return string(e)
}

// manifest 保存按原顺序排列的行，并附带成员集合以便 O(1) 校验。
type manifest struct {
	lines   []string
	members map[string]struct{}
}

func newManifest(lines []string) *manifest {
	members := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		members[line] = struct{}{}
	}
	return &manifest{lines: lines, members: members}
}

// LoadApplicationUnit 返回宿主应用自身的代码单元。
func (c *Cache) LoadApplicationUnit(env Environment) (*codeunit.Unit, error) {
	return c.ResolveCodeUnit(env.ApplicationName())
}

// LoadModuleUnit 返回模块的代码单元；moduleID 不在 module.names.map 中时返回 nil，且不会尝试加载。
func (c *Cache) LoadModuleUnit(env Environment, moduleID string) (*codeunit.Unit, error) {
	ok, err := c.IsModule(env, moduleID)
	if err != nil || !ok {
		return nil, err
	}
	return c.ResolveCodeUnit(moduleID)
}

// ModuleNames 返回 module.names.map 的全部行（原样、保持顺序）。
func (c *Cache) ModuleNames(env Environment) ([]string, error) {
	names, err := c.moduleNames(env)
	if err != nil {
		return nil, err
	}
	return slices.Clone(names.lines), nil
}

// IsModule 判断 moduleID 是否在宿主应用的 module.names.map 中；空白标识永远不是成员。
func (c *Cache) IsModule(env Environment, moduleID string) (bool, error) {
	names, err := c.moduleNames(env)
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(moduleID) == "" {
		return false, nil
	}
	_, ok := names.members[moduleID]
	return ok, nil
}

// ModuleAssets 返回模块 module.assets.map 中的资源路径，反斜杠统一替换为 /。
// 非成员返回空列表，且不写入缓存。
func (c *Cache) ModuleAssets(env Environment, moduleID string) ([]string, error) {
	ok, err := c.IsModule(env, moduleID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}

	key := manifestKey{Scope: moduleID, File: ModuleAssetsMap}
	assets, err := c.manifests.getOrCompute(key, func() (*manifest, error) {
		lines, err := c.readManifest(moduleID, ModuleAssetsMap)
		if err != nil {
			return nil, err
		}
		for i, line := range lines {
			lines[i] = strings.ReplaceAll(line, `\`, "/")
		}
		return newManifest(lines), nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(assets.lines), nil
}

// ModuleFile 返回模块内 fileName 的句柄。moduleID 不是成员时返回 nil；
// 文件缺失时返回 Exists() 为 false 的句柄。
func (c *Cache) ModuleFile(env Environment, moduleID, fileName string) (*resource.Handle, error) {
	ok, err := c.IsModule(env, moduleID)
	if err != nil || !ok {
		return nil, err
	}
	return c.ResourceHandleFor(moduleID, fileName)
}

func (c *Cache) moduleNames(env Environment) (*manifest, error) {
	app := env.ApplicationName()
	key := manifestKey{Scope: app, File: ModuleNamesMap}
	return c.manifests.getOrCompute(key, func() (*manifest, error) {
		lines, err := c.readManifest(app, ModuleNamesMap)
		if err != nil {
			return nil, err
		}
		return newManifest(lines), nil
	})
}

func (c *Cache) readManifest(unitName, fileName string) ([]string, error) {
	handle, err := c.ResourceHandleFor(unitName, fileName)
	if err != nil {
		return nil, err
	}
	lines, err := resource.ReadLines(handle)
	if err != nil {
		return nil, fmt.Errorf("read %s of %s: %w", fileName, unitName, err)
	}

	fields := logging.ManifestFields(unitName, fileName)
	fields["lines"] = len(lines)
	c.logger.WithFields(fields).Debug("manifest loaded")
	return lines, nil
}
