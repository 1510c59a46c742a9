package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/ipv6calc/pkg/config/xconf"
	"github.com/omeyang/ipv6calc/pkg/observability/xlog"
	"github.com/omeyang/ipv6calc/pkg/util/xbatch"
	"github.com/omeyang/ipv6calc/pkg/util/xcidr"
)

// app 持有命令执行所需的 I/O。
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// createApp 创建 CLI 应用。
func createApp(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	return &cli.Command{
		Name:      "ipv6calc",
		Usage:     "IPv6 CIDR calculator",
		ArgsUsage: "<CIDR> [CIDR...]",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file (.yaml, .yml or .json)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output format: text, json or yaml",
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   `read CIDRs from file, one per line ("-" for stdin)`,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "number of concurrent workers for batch input",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level: " + strings.Join(xlog.LevelNames(), ", "),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format: text or json",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "write logs to a size-rotated file instead of stderr",
			},
		},
		HideHelpCommand: true,
		Action:          a.action,
		OnUsageError: func(_ context.Context, _ *cli.Command, err error, _ bool) error {
			return &usageError{msg: err.Error()}
		},
		// 禁止 urfave/cli 直接调用 os.Exit，由 run() 统一映射退出码
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

// action 计算全部输入并输出结果。
func (a *app) action(ctx context.Context, cmd *cli.Command) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return &usageError{msg: err.Error()}
	}

	logger, cleanup, err := buildLogger(settings, a.stderr)
	if err != nil {
		return &usageError{msg: err.Error()}
	}
	defer func() { _ = cleanup() }() //nolint:errcheck // 退出前关闭日志文件，错误无处上报

	inputs, err := a.collectInputs(cmd)
	if err != nil {
		return &usageError{msg: err.Error()}
	}
	if len(inputs) == 0 {
		fmt.Fprintln(a.stdout, messageFor(xcidr.ErrMissingArgument))
		return &exitError{code: exitUsage}
	}

	calc, err := xbatch.New(xbatch.Config{
		Workers:   settings.Batch.Workers,
		CacheSize: settings.Batch.CacheSize,
	}, xbatch.WithLogger(logger))
	if err != nil {
		if errors.Is(err, xbatch.ErrInvalidWorkers) || errors.Is(err, xbatch.ErrInvalidCacheSize) {
			return &usageError{msg: err.Error()}
		}
		logger.Error(ctx, "create calculator", xlog.Err(err))
		return err
	}

	outcomes, err := calc.CalculateAll(ctx, inputs)
	if err != nil {
		logger.Error(ctx, "calculate", xlog.Err(err))
		return err
	}

	single := len(inputs) == 1 && !cmd.IsSet("input")
	if err := render(a.stdout, settings.Output, outcomes, single); err != nil {
		logger.Error(ctx, "render output", xlog.Err(err))
		return err
	}

	stats := calc.Stats()
	logger.Debug(ctx, "done",
		xlog.Count(len(inputs)),
		slog.Uint64("cache_hits", stats.Hits),
		slog.Uint64("cache_misses", stats.Misses),
	)

	for _, o := range outcomes {
		if o.Err != nil {
			return &exitError{code: exitFailure}
		}
	}
	return nil
}

// loadSettings 读取配置文件（如有），再用命令行选项覆盖，最后统一校验。
// 文件中的非法值可以被命令行选项纠正。
func loadSettings(cmd *cli.Command) (xconf.Settings, error) {
	settings := xconf.Default()
	if path := cmd.String("config"); path != "" {
		loaded, err := xconf.Decode(path)
		if err != nil {
			return xconf.Settings{}, err
		}
		settings = loaded
	}

	if cmd.IsSet("output") {
		settings.Output = cmd.String("output")
	}
	if cmd.IsSet("workers") {
		settings.Batch.Workers = cmd.Int("workers")
	}
	if cmd.IsSet("log-level") {
		settings.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		settings.Log.Format = cmd.String("log-format")
	}
	if cmd.IsSet("log-file") {
		settings.Log.File = cmd.String("log-file")
	}
	settings.Output = strings.ToLower(settings.Output)

	if err := settings.Validate(); err != nil {
		return xconf.Settings{}, err
	}
	return settings, nil
}

// buildLogger 按配置创建日志记录器，日志写入 stderr 或轮转文件。
func buildLogger(s xconf.Settings, stderr io.Writer) (xlog.LoggerWithLevel, func() error, error) {
	b := xlog.New().
		SetOutput(stderr).
		SetLevelString(s.Log.Level).
		SetFormat(s.Log.Format).
		SetAddSource(s.Log.AddSource).
		SetTraceEnrich(s.Log.Trace)
	if s.Log.File != "" {
		b.SetRotation(s.Log.File, s.Log.LogRotation())
	}
	return b.Build()
}
