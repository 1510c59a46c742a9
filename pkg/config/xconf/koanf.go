package xconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/omeyang/ipv6calc/pkg/util/xfile"
)

// delim koanf 键路径分隔符。
const delim = "."

// Load 从文件加载配置并执行 [Settings.Validate]。
// 需要在校验前叠加其他来源（如命令行选项）时使用 [Decode]。
func Load(path string) (Settings, error) {
	s, err := Decode(path)
	if err != nil {
		return Settings{}, err
	}
	return validated(s)
}

// LoadBytes 从字节数据加载配置并执行 [Settings.Validate]。
func LoadBytes(data []byte, format Format) (Settings, error) {
	s, err := DecodeBytes(data, format)
	if err != nil {
		return Settings{}, err
	}
	return validated(s)
}

// Decode 从文件解码配置，不做取值校验。
// 根据文件扩展名检测格式（.yaml/.yml 或 .json），文件中未出现的字段保持 [Default] 的值。
// 路径经 [xfile.SanitizePath] 检查，不合法时返回 [ErrLoadFailed]。
func Decode(path string) (Settings, error) {
	if path == "" {
		return Settings{}, ErrEmptyPath
	}

	clean, err := xfile.SanitizePath(path)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	format, err := detectFormat(clean)
	if err != nil {
		return Settings{}, err
	}

	data, err := os.ReadFile(clean)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return DecodeBytes(data, format)
}

// DecodeBytes 从字节数据解码配置，需要显式指定格式，不做取值校验。
// 空数据返回 [Default]。未知字段返回 [ErrUnmarshalFailed]。
func DecodeBytes(data []byte, format Format) (Settings, error) {
	if !isValidFormat(format) {
		return Settings{}, ErrUnsupportedFormat
	}

	k := koanf.New(delim)
	if len(data) > 0 {
		if err := loadData(k, data, format); err != nil {
			return Settings{}, err
		}
	}

	s := Default()
	if err := unmarshal(k, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func validated(s Settings) (Settings, error) {
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// unmarshal 把 koanf 中的全部配置解码到 target，未知字段视为错误。
func unmarshal(k *koanf.Koanf, target *Settings) error {
	err := k.UnmarshalWithConf("", target, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			ErrorUnused:      true,
			WeaklyTypedInput: true,
			Result:           target,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}
	return nil
}

// =============================================================================
// 内部辅助函数
// =============================================================================

// detectFormat 根据文件扩展名检测配置格式。
func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}
}

// isValidFormat 检查格式是否有效。
func isValidFormat(format Format) bool {
	switch format {
	case FormatYAML, FormatJSON:
		return true
	default:
		return false
	}
}

// loadData 加载数据到 koanf 实例。
func loadData(k *koanf.Koanf, data []byte, format Format) error {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return ErrUnsupportedFormat
	}

	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return nil
}
