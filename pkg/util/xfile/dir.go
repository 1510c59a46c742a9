package xfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDirPerm 新建目录的默认权限。
const DefaultDirPerm = 0o750

// EnsureDir 确保 filename 的父目录存在，已存在时不做任何修改。
// filename 是文件路径，不是目录路径。
func EnsureDir(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}
	if strings.ContainsRune(filename, 0) {
		return fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}
	dir := filepath.Dir(filename)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, DefaultDirPerm)
}
