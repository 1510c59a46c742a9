// Package util 提供 IPv6 计算相关的子包。
//
// 子包列表：
//   - xcidr: IPv6 CIDR 解析、展开、压缩、地址范围与地址数量计算
//   - xbatch: 批量计算，结果记忆化（LRU）与有界并发
//   - xfile: 文件路径校验与目录创建
//
// 设计原则：
//   - 核心计算无 I/O、无全局状态，值类型可在 goroutine 间共享
//   - 错误使用带包名前缀的哨兵错误，调用方通过 errors.Is 判断
package util
