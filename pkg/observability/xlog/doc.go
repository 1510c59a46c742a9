// Package xlog 基于 log/slog 的结构化日志库。
//
// # 核心功能
//
//   - Builder 模式配置（输出目标、级别、格式、文件轮转）
//   - 动态级别调整（运行时生效）
//   - 强制 context 传递，方法签名只接受 slog.Attr
//   - [Discard] 提供无输出 Logger，作为库代码的默认值
//   - 自动注入 OpenTelemetry trace_id/span_id
//
// # 创建 Logger
//
// first-error-wins：遇到第一个配置错误后，[Builder.Build] 返回该错误。
//
//	logger, cleanup, err := xlog.New().
//	    SetLevelString("debug").
//	    SetFormat("json").
//	    SetRotation("/var/log/ipv6calc.log", xlog.Rotation{MaxSizeMB: 10, MaxBackups: 3}).
//	    Build()
//	if err != nil {
//	    return err
//	}
//	defer cleanup()
//
// # 输出位置
//
// 默认输出到 stderr，使命令行工具的 stdout 只包含计算结果。
// 设置 [Builder.SetRotation] 后写入 lumberjack 管理的文件。
//
// # 追踪信息
//
// 默认从 context 中的 OpenTelemetry span 提取 trace_id 与 span_id 注入每条日志，
// 可通过 [Builder.SetTraceEnrich] 关闭。
//
// # 日志级别
//
// LevelDebug(-4)、LevelInfo(0)、LevelWarn(4)、LevelError(8)。
// 可通过 [ParseLevel] 从字符串解析，[LevelNames] 列出可用名称。
package xlog
