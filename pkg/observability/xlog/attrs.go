package xlog

import "log/slog"

// 常用属性 Key 常量
const (
	// KeyError 错误字段的标准 key
	KeyError = "error"

	// KeyComponent 组件名称字段的标准 key
	KeyComponent = "component"

	// KeyInput 原始输入字段的标准 key
	KeyInput = "input"

	// KeyCount 计数字段的标准 key
	KeyCount = "count"
)

// Err 创建错误属性
// 如果 err 为 nil，返回空属性（会被 slog 忽略）。
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Component 创建组件名属性
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Input 创建原始输入属性
func Input(s string) slog.Attr {
	return slog.String(KeyInput, s)
}

// Count 创建计数属性
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}
