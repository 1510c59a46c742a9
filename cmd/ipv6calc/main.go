// ipv6calc 是 IPv6 CIDR 计算器。
//
// 用法:
//
//	ipv6calc [选项] <CIDR> [CIDR...]
//
// 单个 CIDR 输出五行：展开形式、压缩形式、前缀长度、地址范围、地址总数。
// 多个 CIDR 或使用 --input 时按输入逐块输出，块之间以空行分隔。
//
// 选项:
//
//	-c, --config      配置文件（.yaml/.yml/.json）
//	-o, --output      输出格式：text、json、yaml
//	-i, --input       从文件读取 CIDR，每行一个；"-" 表示 stdin
//	    --workers     批量计算并发数
//	    --log-level   日志级别：debug、info、warn、error
//	    --log-format  日志格式：text、json
//	    --log-file    日志文件（按大小轮转）
//
// 退出码:
//
//	0: 全部输入计算成功
//	1: 至少一个输入未通过校验，或出现未预期的错误
//	2: 参数错误（缺少 CIDR、未知选项、配置文件无效等）
//
// 示例:
//
//	ipv6calc 2001:0db8:85a3:08d3::0370:7334/64
//	ipv6calc -o json 2001:db8::/32 fe80::/10
//	ipv6calc -i cidrs.txt --workers 8
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// 版本信息（可通过 -ldflags 注入）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// 退出码。
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run 执行命令并返回退出码。
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := createApp(stdin, stdout, stderr)

	err := app.Run(ctx, args)
	if err == nil {
		return exitOK
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "ipv6calc: %v\n", usageErr)
		return exitUsage
	}
	// 不向用户暴露内部细节，详情已写入日志
	fmt.Fprintln(stdout, msgUnhandled)
	return exitFailure
}
