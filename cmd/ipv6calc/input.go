package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/ipv6calc/pkg/util/xfile"
)

// stdinPath 表示从标准输入读取。
const stdinPath = "-"

// collectInputs 合并位置参数与 --input 文件中的 CIDR，位置参数在前。
func (a *app) collectInputs(cmd *cli.Command) ([]string, error) {
	inputs := cmd.Args().Slice()

	path := cmd.String("input")
	if path == "" {
		return inputs, nil
	}

	var r io.Reader
	if path == stdinPath {
		r = a.stdin
	} else {
		safePath, err := xfile.SanitizePath(path)
		if err != nil {
			return nil, fmt.Errorf("input: %w", err)
		}
		f, err := os.Open(safePath)
		if err != nil {
			return nil, fmt.Errorf("input: %w", err)
		}
		defer func() { _ = f.Close() }() //nolint:errcheck // 只读文件
		r = f
	}

	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("input %s: %w", path, err)
	}
	return append(inputs, lines...), nil
}

// readLines 逐行读取 CIDR，跳过空行和 "#" 开头的注释。
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
