package xfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SanitizePath 检查并规范化文件路径。
//
// 拒绝：空路径、含空字节的路径、以 "/" 或 "\" 结尾的目录路径、
// 规范化后仍含 ".." 路径段的相对路径。返回 filepath.Clean 后的结果。
func SanitizePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}
	if strings.ContainsRune(filename, 0) {
		return "", fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}
	// Clean 会去掉尾部分隔符，必须先检查
	if strings.HasSuffix(filename, "/") || strings.HasSuffix(filename, "\\") {
		return "", fmt.Errorf("path %q is a directory: %w", filename, ErrInvalidPath)
	}

	cleaned := filepath.Clean(filename)
	if hasDotDotSegment(cleaned) {
		return "", fmt.Errorf("path %q: %w", filename, ErrPathTraversal)
	}

	base := filepath.Base(cleaned)
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("no file name in %q: %w", filename, ErrInvalidPath)
	}
	return cleaned, nil
}

// hasDotDotSegment 报告 path 中是否有恰好为 ".." 的路径段。
// "/" 与 "\" 都视为分隔符。
func hasDotDotSegment(path string) bool {
	i := 0
	for i < len(path) {
		if path[i] == '/' || path[i] == '\\' {
			i++
			continue
		}
		j := i
		for j < len(path) && path[j] != '/' && path[j] != '\\' {
			j++
		}
		if j-i == 2 && path[i] == '.' && path[i+1] == '.' {
			return true
		}
		i = j
	}
	return false
}
