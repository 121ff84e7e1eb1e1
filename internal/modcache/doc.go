// Package modcache 是模块解析缓存：把模块标识映射为代码单元、资源索引、
// 资源句柄以及 module.names.map / module.assets.map 两类清单行列表。
//
// 四类结果各自存放在独立的并发安全 store 中，首次访问时计算并写入，
// 之后在进程生命周期内原样返回，既不淘汰也不刷新。并发的首次访问通过
// singleflight 合并为一次计算；计算失败不会写入缓存，下一次调用会重试。
//
// 所有按模块标识的查询都会先以宿主应用的 module.names.map 做成员校验，
// 非成员直接返回空结果，不会触发任何加载。
package modcache
