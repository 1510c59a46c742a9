// Package xfile 校验命令行与配置文件中传入的文件路径。
//
// ipv6calc 会读取 --input 指定的 CIDR 列表，并可能把日志写入 log.file，
// 这两处路径都先经过 [SanitizePath]；写日志前再用 [EnsureDir] 创建父目录。
//
// 路径穿越按路径段精确匹配："app..2024.log" 合法，"../etc/passwd" 被拒绝。
// 绝对路径中的 ".." 由 filepath.Clean 解析，不视为穿越。
package xfile
