package xconf

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/omeyang/ipv6calc/pkg/observability/xlog"
	"github.com/omeyang/ipv6calc/pkg/util/xbatch"
)

// Format 定义配置文件格式。
type Format string

// 支持的配置格式。
const (
	// FormatYAML YAML 格式。
	FormatYAML Format = "yaml"

	// FormatJSON JSON 格式。
	FormatJSON Format = "json"
)

// 结果输出格式。
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// 取值范围。
const (
	maxLogSizeMB  = 10240
	maxLogBackups = 1024
)

// Settings ipv6calc 的全部可配置项。
//
// 对应的 YAML：
//
//	output: text
//	log:
//	  level: error
//	  format: text
//	  file: ""
//	  max_size_mb: 100
//	  max_backups: 3
//	  add_source: false
//	  trace: true
//	batch:
//	  workers: 8
//	  cache_size: 1024
type Settings struct {
	// Output 结果输出格式：text、json 或 yaml
	Output string `koanf:"output"`

	Log   LogSettings   `koanf:"log"`
	Batch BatchSettings `koanf:"batch"`
}

// LogSettings 日志配置。日志始终写入 stderr 或 File，不会混入结果输出。
type LogSettings struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`

	// File 非空时写入该文件并按大小轮转
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`

	// AddSource 在日志中附带调用位置
	AddSource bool `koanf:"add_source"`
	// Trace 从 context 中的 span 注入 trace_id/span_id
	Trace bool `koanf:"trace"`
}

// BatchSettings 批量计算配置。
type BatchSettings struct {
	Workers   int `koanf:"workers"`
	CacheSize int `koanf:"cache_size"`
}

// Default 返回默认配置。
// 默认日志级别为 error，正常运行时 stderr 保持安静。
func Default() Settings {
	return Settings{
		Output: OutputText,
		Log: LogSettings{
			Level:      "error",
			Format:     "text",
			MaxSizeMB:  100,
			MaxBackups: 3,
			Trace:      true,
		},
		Batch: BatchSettings{
			Workers:   min(runtime.GOMAXPROCS(0), xbatch.MaxWorkers),
			CacheSize: 1024,
		},
	}
}

// Validate 校验全部配置项，返回的错误包含所有问题并包装 [ErrInvalidSettings]。
func (s Settings) Validate() error {
	var errs []error

	switch strings.ToLower(s.Output) {
	case OutputText, OutputJSON, OutputYAML:
	default:
		errs = append(errs, fmt.Errorf("output %q: want text, json or yaml", s.Output))
	}

	if _, err := xlog.ParseLevel(s.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch strings.ToLower(s.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q: want text or json", s.Log.Format))
	}
	if s.Log.File != "" {
		if s.Log.MaxSizeMB <= 0 || s.Log.MaxSizeMB > maxLogSizeMB {
			errs = append(errs, fmt.Errorf("log.max_size_mb %d: want (0, %d]", s.Log.MaxSizeMB, maxLogSizeMB))
		}
		if s.Log.MaxBackups < 0 || s.Log.MaxBackups > maxLogBackups {
			errs = append(errs, fmt.Errorf("log.max_backups %d: want [0, %d]", s.Log.MaxBackups, maxLogBackups))
		}
	}

	if s.Batch.Workers <= 0 || s.Batch.Workers > xbatch.MaxWorkers {
		errs = append(errs, fmt.Errorf("batch.workers %d: want [1, %d]", s.Batch.Workers, xbatch.MaxWorkers))
	}
	if s.Batch.CacheSize < 0 || s.Batch.CacheSize > xbatch.MaxCacheSize {
		errs = append(errs, fmt.Errorf("batch.cache_size %d: want [0, %d]", s.Batch.CacheSize, xbatch.MaxCacheSize))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidSettings, errors.Join(errs...))
}

// LogRotation 返回 xlog 使用的轮转配置。
func (s LogSettings) LogRotation() xlog.Rotation {
	return xlog.Rotation{MaxSizeMB: s.MaxSizeMB, MaxBackups: s.MaxBackups}
}
