package xlog

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Level 日志级别，数值与 slog.Level 相同。
type Level slog.Level

const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)

	// levelOff 高于所有级别，Discard 用它屏蔽全部输出。
	levelOff = LevelError + 1
)

// ErrUnknownLevel 表示无法识别的级别名称。
var ErrUnknownLevel = errors.New("xlog: unknown level")

// levelNames 规范名称，按级别从低到高。
var levelNames = [...]string{"debug", "info", "warn", "error"}

func (l Level) String() string {
	return slog.Level(l).String()
}

// LevelNames 返回 [ParseLevel] 接受的规范名称，可直接用于命令行帮助。
func LevelNames() []string {
	return levelNames[:]
}

// ParseLevel 解析级别名称，忽略大小写和首尾空白。"warning" 视同 "warn"。
// 无法识别时返回 LevelInfo 和 [ErrUnknownLevel]。
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("%w %q, want one of %s", ErrUnknownLevel, s, strings.Join(levelNames[:], ", "))
}
