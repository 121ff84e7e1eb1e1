// Package builtin 内嵌宿主应用 ModHost 及其自带模块的代码单元，并在 init() 中注册。
//
// 每个 units/<name>/ 目录即一个代码单元：应用单元携带 module.names.map，
// 模块单元携带 module.assets.map 与静态资源。
package builtin

import (
	"embed"
	"io/fs"
	"path"

	"github.com/any-hub/modhost/internal/codeunit"
)

// ApplicationName 是内嵌宿主应用的代码单元名。
const ApplicationName = "ModHost"

const unitsRoot = "units"

//go:embed units
var units embed.FS

func init() {
	entries, err := fs.ReadDir(units, unitsRoot)
	if err != nil {
		panic(err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		files, err := fs.Sub(units, path.Join(unitsRoot, entry.Name()))
		if err != nil {
			panic(err)
		}
		codeunit.MustRegister(codeunit.Unit{Name: entry.Name(), Files: files})
	}
}
