package codeunit

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrUnknownUnit 表示没有任何 Loader 认识该名称。
var ErrUnknownUnit = errors.New("code unit not found")

// Unit 是已加载的代码单元，Files 暴露其内嵌文件集合。
type Unit struct {
	Name  string
	Files fs.FS
}

// Loader 将逻辑名称解析为代码单元，无法解析时返回 *LoadError。
type Loader interface {
	Load(name string) (*Unit, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(name string) (*Unit, error)

// Load makes LoaderFunc satisfy Loader.
func (f LoaderFunc) Load(name string) (*Unit, error) {
	return f(name)
}

// LoadError 记录加载失败的代码单元名称与底层原因，便于调用方 errors.As 判断。
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load code unit %s: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func newLoadError(name string, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) && loadErr.Name == name {
		return err
	}
	return &LoadError{Name: name, Err: err}
}
