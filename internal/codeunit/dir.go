package codeunit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DirLoader 将 <Root>/<name>/ 目录视为代码单元，适合以磁盘形式分发的模块。
type DirLoader struct {
	Root string
}

// Load 校验目录存在后以 os.DirFS 暴露其内容，名称中不允许出现路径分隔符。
func (l DirLoader) Load(name string) (*Unit, error) {
	if l.Root == "" {
		return nil, newLoadError(name, ErrUnknownUnit)
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, newLoadError(name, fmt.Errorf("invalid unit name %q", name))
	}

	dir := filepath.Join(l.Root, name)
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newLoadError(name, ErrUnknownUnit)
		}
		return nil, newLoadError(name, err)
	}
	if !info.IsDir() {
		return nil, newLoadError(name, fmt.Errorf("%s is not a directory", dir))
	}

	return &Unit{Name: name, Files: os.DirFS(dir)}, nil
}
