package xconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/ipv6calc/pkg/util/xbatch"
	"github.com/omeyang/ipv6calc/pkg/util/xfile"
)

// =============================================================================
// Default / Validate 测试
// =============================================================================

func TestDefault(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, OutputText, s.Output)
	assert.Equal(t, "error", s.Log.Level)
	assert.Empty(t, s.Log.File)
	assert.GreaterOrEqual(t, s.Batch.Workers, 1)
	assert.LessOrEqual(t, s.Batch.Workers, 1024)
	assert.Equal(t, 1024, s.Batch.CacheSize)
	assert.True(t, s.Log.Trace)
	assert.False(t, s.Log.AddSource)
}

// Validate 接受的范围必须与 xbatch.New 一致，否则配置通过校验后仍会在运行时失败。
func TestValidate_MatchesBatchLimits(t *testing.T) {
	for _, cfg := range []xbatch.Config{
		{Workers: 1, CacheSize: 0},
		{Workers: xbatch.MaxWorkers, CacheSize: 16},
		{Workers: 0, CacheSize: 0},
		{Workers: xbatch.MaxWorkers + 1, CacheSize: 0},
		{Workers: 1, CacheSize: -1},
		{Workers: 1, CacheSize: xbatch.MaxCacheSize + 1},
	} {
		s := Default()
		s.Batch = BatchSettings{Workers: cfg.Workers, CacheSize: cfg.CacheSize}
		verr := s.Validate()
		_, nerr := xbatch.New(cfg)
		assert.Equal(t, nerr == nil, verr == nil, "workers=%d cache_size=%d", cfg.Workers, cfg.CacheSize)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
		wantMsg string
	}{
		{"default", func(*Settings) {}, false, ""},
		{"json output", func(s *Settings) { s.Output = "json" }, false, ""},
		{"upper case output", func(s *Settings) { s.Output = "YAML" }, false, ""},
		{"bad output", func(s *Settings) { s.Output = "xml" }, true, "output"},
		{"bad level", func(s *Settings) { s.Log.Level = "loud" }, true, "log.level"},
		{"bad log format", func(s *Settings) { s.Log.Format = "logfmt" }, true, "log.format"},
		{"empty log format", func(s *Settings) { s.Log.Format = "" }, false, ""},
		{"file without size", func(s *Settings) {
			s.Log.File = "a.log"
			s.Log.MaxSizeMB = 0
		}, true, "log.max_size_mb"},
		{"size ignored without file", func(s *Settings) { s.Log.MaxSizeMB = 0 }, false, ""},
		{"negative backups", func(s *Settings) {
			s.Log.File = "a.log"
			s.Log.MaxBackups = -1
		}, true, "log.max_backups"},
		{"zero workers", func(s *Settings) { s.Batch.Workers = 0 }, true, "batch.workers"},
		{"too many workers", func(s *Settings) { s.Batch.Workers = 1025 }, true, "batch.workers"},
		{"no cache", func(s *Settings) { s.Batch.CacheSize = 0 }, false, ""},
		{"negative cache", func(s *Settings) { s.Batch.CacheSize = -1 }, true, "batch.cache_size"},
		{"largest cache", func(s *Settings) { s.Batch.CacheSize = xbatch.MaxCacheSize }, false, ""},
		{"cache too large", func(s *Settings) { s.Batch.CacheSize = xbatch.MaxCacheSize + 1 }, true, "batch.cache_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			err := s.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidSettings)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	s := Default()
	s.Output = "xml"
	s.Batch.Workers = 0

	err := s.Validate()
	require.ErrorIs(t, err, ErrInvalidSettings)
	assert.Contains(t, err.Error(), "output")
	assert.Contains(t, err.Error(), "batch.workers")
}

func TestLogRotation(t *testing.T) {
	s := Default()
	r := s.Log.LogRotation()
	assert.Equal(t, 100, r.MaxSizeMB)
	assert.Equal(t, 3, r.MaxBackups)
}

// =============================================================================
// Load / LoadBytes 测试
// =============================================================================

func TestLoadBytes(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		check  func(t *testing.T, s Settings)
	}{
		{
			name:   "yaml partial override",
			format: FormatYAML,
			data:   "output: json\nbatch:\n  workers: 3\n",
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, "json", s.Output)
				assert.Equal(t, 3, s.Batch.Workers)
				assert.Equal(t, 1024, s.Batch.CacheSize)
				assert.Equal(t, "error", s.Log.Level)
			},
		},
		{
			name:   "json full",
			format: FormatJSON,
			data: `{"output":"yaml","log":{"level":"debug","format":"json","file":"/tmp/x.log",` +
				`"max_size_mb":5,"max_backups":1},"batch":{"workers":2,"cache_size":0}}`,
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, Settings{
					Output: "yaml",
					Log: LogSettings{
						Level: "debug", Format: "json", File: "/tmp/x.log",
						MaxSizeMB: 5, MaxBackups: 1,
					},
					Batch: BatchSettings{Workers: 2, CacheSize: 0},
				}, s)
			},
		},
		{
			name:   "weakly typed number",
			format: FormatYAML,
			data:   "batch:\n  workers: \"6\"\n",
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, 6, s.Batch.Workers)
			},
		},
		{
			name:   "empty data",
			format: FormatJSON,
			data:   "",
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, Default(), s)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := LoadBytes([]byte(tt.data), tt.format)
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestLoadBytes_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  Format
		wantErr error
	}{
		{"unsupported format", "a = 1", Format("toml"), ErrUnsupportedFormat},
		{"broken yaml", "output: [", FormatYAML, ErrParseFailed},
		{"broken json", "{", FormatJSON, ErrParseFailed},
		{"unknown key", "outptu: json\n", FormatYAML, ErrUnmarshalFailed},
		{"unknown nested key", `{"log":{"lvl":"debug"}}`, FormatJSON, ErrUnmarshalFailed},
		{"wrong type", `{"batch":{"workers":"many"}}`, FormatJSON, ErrUnmarshalFailed},
		{"invalid value", "output: xml\n", FormatYAML, ErrInvalidSettings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBytes([]byte(tt.data), tt.format)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "ipv6calc.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("log:\n  level: warn\n"), 0o600))
	s, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "warn", s.Log.Level)

	jsonPath := filepath.Join(dir, "ipv6calc.JSON")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"output":"json"}`), 0o600))
	s, err = Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "json", s.Output)
}

func TestDecode_SkipsValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ipv6calc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch:\n  workers: 0\nlog:\n  trace: false\n  add_source: true\n"), 0o600))

	s, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Batch.Workers)
	assert.False(t, s.Log.Trace)
	assert.True(t, s.Log.AddSource)
	require.ErrorIs(t, s.Validate(), ErrInvalidSettings)

	// 叠加其他来源后再校验
	s.Batch.Workers = 4
	require.NoError(t, s.Validate())

	_, err = Load(path)
	require.ErrorIs(t, err, ErrInvalidSettings)
}

func TestDecodeBytes_Errors(t *testing.T) {
	_, err := DecodeBytes([]byte("outptu: json\n"), FormatYAML)
	require.ErrorIs(t, err, ErrUnmarshalFailed)

	_, err = DecodeBytes(nil, Format("toml"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	s, err := DecodeBytes([]byte(`{"batch":{"cache_size":20000000}}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 20000000, s.Batch.CacheSize)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "ipv6calc.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("output = 'json'"), 0o600))

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"empty path", "", ErrEmptyPath},
		{"unknown extension", tomlPath, ErrUnsupportedFormat},
		{"missing file", filepath.Join(dir, "missing.yaml"), ErrLoadFailed},
		{"path traversal", "../ipv6calc.yaml", xfile.ErrPathTraversal},
		{"directory path", dir + "/", xfile.ErrInvalidPath},
		{"null byte", "ipv6calc\x00.yaml", xfile.ErrNullByte},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
