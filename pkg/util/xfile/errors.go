package xfile

import "errors"

var (
	// ErrEmptyPath 表示路径为空。
	ErrEmptyPath = errors.New("xfile: path is required")

	// ErrInvalidPath 表示路径指向目录而不是文件。
	ErrInvalidPath = errors.New("xfile: invalid path")

	// ErrPathTraversal 表示相对路径中出现 ".." 路径段。
	ErrPathTraversal = errors.New("xfile: path traversal detected")

	// ErrNullByte 表示路径中包含空字节。
	ErrNullByte = errors.New("xfile: path contains null byte")
)
