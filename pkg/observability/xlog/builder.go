package xlog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/omeyang/ipv6calc/pkg/util/xfile"
)

// 轮转配置上限
const (
	// maxRotationSizeMB 单个日志文件大小上限（10 GB）
	maxRotationSizeMB = 10240

	// maxRotationBackups 备份文件数量上限
	maxRotationBackups = 1024
)

// ErrInvalidRotation 表示轮转配置无效。
var ErrInvalidRotation = errors.New("xlog: invalid rotation config")

// Rotation 文件轮转配置
//
// 基于文件大小的轮转策略，底层使用 lumberjack。
type Rotation struct {
	// MaxSizeMB 单个日志文件最大大小（MB），必须在 (0, 10240] 内
	MaxSizeMB int

	// MaxBackups 保留的备份文件数量，0 表示不限制
	MaxBackups int

	// Compress 是否 gzip 压缩备份文件
	Compress bool
}

// Builder 日志配置构建器
type Builder struct {
	output    io.Writer
	closer    io.Closer
	levelVar  *slog.LevelVar
	format    string
	addSource bool
	noTrace   bool
	err       error
}

// New 创建配置构建器
// 默认：stderr、Info 级别、text 格式。
func New() *Builder {
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelInfo)

	return &Builder{
		output:   os.Stderr,
		levelVar: levelVar,
		format:   "text",
	}
}

// SetOutput 设置日志输出目标
func (b *Builder) SetOutput(w io.Writer) *Builder {
	if w == nil {
		b.setErr(errors.New("xlog: nil output"))
		return b
	}
	b.output = w
	return b
}

// SetLevel 设置日志级别
func (b *Builder) SetLevel(level Level) *Builder {
	b.levelVar.Set(slog.Level(level))
	return b
}

// SetLevelString 通过字符串设置日志级别
func (b *Builder) SetLevelString(s string) *Builder {
	level, err := ParseLevel(s)
	if err != nil {
		b.setErr(err)
		return b
	}
	return b.SetLevel(level)
}

// SetFormat 设置输出格式：text 或 json，空值使用 text
func (b *Builder) SetFormat(format string) *Builder {
	normalized := strings.ToLower(strings.TrimSpace(format))
	switch normalized {
	case "":
		b.format = "text"
	case "text", "json":
		b.format = normalized
	default:
		b.setErr(fmt.Errorf("xlog: unknown format %q", format))
	}
	return b
}

// SetAddSource 是否在日志中添加源码位置
func (b *Builder) SetAddSource(enable bool) *Builder {
	b.addSource = enable
	return b
}

// SetTraceEnrich 是否从 context 注入 trace_id/span_id，默认开启
func (b *Builder) SetTraceEnrich(enable bool) *Builder {
	b.noTrace = !enable
	return b
}

// SetRotation 将日志写入 filename，并按 r 轮转
//
// filename 经 xfile.SanitizePath 校验，父目录不存在时自动创建。
func (b *Builder) SetRotation(filename string, r Rotation) *Builder {
	if strings.TrimSpace(filename) == "" {
		b.setErr(fmt.Errorf("%w: empty filename", ErrInvalidRotation))
		return b
	}
	safePath, err := xfile.SanitizePath(filename)
	if err != nil {
		b.setErr(fmt.Errorf("%w: %w", ErrInvalidRotation, err))
		return b
	}

	switch {
	case r.MaxSizeMB <= 0 || r.MaxSizeMB > maxRotationSizeMB:
		b.setErr(fmt.Errorf("%w: max size %d MB out of range (0, %d]", ErrInvalidRotation, r.MaxSizeMB, maxRotationSizeMB))
		return b
	case r.MaxBackups < 0 || r.MaxBackups > maxRotationBackups:
		b.setErr(fmt.Errorf("%w: max backups %d out of range [0, %d]", ErrInvalidRotation, r.MaxBackups, maxRotationBackups))
		return b
	}

	if err := xfile.EnsureDir(safePath); err != nil {
		b.setErr(fmt.Errorf("xlog: create log directory: %w", err))
		return b
	}

	lj := &lumberjack.Logger{
		Filename:   safePath,
		MaxSize:    r.MaxSizeMB,
		MaxBackups: r.MaxBackups,
		Compress:   r.Compress,
	}
	b.output = lj
	b.closer = lj
	return b
}

// setErr 只保留第一个错误
func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build 构建 Logger 实例
//
// 返回值：
//   - LoggerWithLevel: 日志实例，同时支持动态级别控制
//   - func() error: 清理函数（关闭轮转文件），可重复调用
//   - error: 配置错误
func (b *Builder) Build() (LoggerWithLevel, func() error, error) {
	if b.err != nil {
		return nil, nil, b.err
	}

	opts := &slog.HandlerOptions{
		Level:     b.levelVar,
		AddSource: b.addSource,
	}

	var handler slog.Handler
	switch b.format {
	case "json":
		handler = slog.NewJSONHandler(b.output, opts)
	default:
		handler = slog.NewTextHandler(b.output, opts)
	}
	if !b.noTrace {
		handler = &traceHandler{base: handler}
	}

	logger := &xlogger{
		handler:    handler,
		levelVar:   b.levelVar,
		addSource:  b.addSource,
		errorCount: new(atomic.Uint64),
	}

	var once sync.Once
	closer := b.closer
	cleanup := func() error {
		var err error
		once.Do(func() {
			if closer != nil {
				err = closer.Close()
			}
		})
		return err
	}

	return logger, cleanup, nil
}
