// Package codeunit 描述“代码单元”：一个模块（或宿主应用本身）编译后携带的文件集合。
//
// 代码单元通过 Loader 按逻辑名称解析：
//   1. 内嵌模块在 init() 中调用 MustRegister 注册到进程级注册表，由 RegistryLoader 提供；
//   2. 磁盘模块位于 <ModulesPath>/<name>/ 目录下，由 DirLoader 提供；
//   3. Chain 按顺序组合多个 Loader，第一个认识该名称的 Loader 胜出。
//
// 代码单元一旦加载便不会卸载，缓存由上层 modcache 负责。
package codeunit
