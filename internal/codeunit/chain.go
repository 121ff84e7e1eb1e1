package codeunit

import "errors"

// Chain 按顺序尝试多个 Loader：返回 ErrUnknownUnit 时继续下一个，其它错误立即返回。
func Chain(loaders ...Loader) Loader {
	return LoaderFunc(func(name string) (*Unit, error) {
		for _, loader := range loaders {
			if loader == nil {
				continue
			}
			unit, err := loader.Load(name)
			if err == nil {
				return unit, nil
			}
			if !errors.Is(err, ErrUnknownUnit) {
				return nil, newLoadError(name, err)
			}
		}
		return nil, newLoadError(name, ErrUnknownUnit)
	})
}
