package xbatch

import "errors"

var (
	// ErrInvalidWorkers 表示并发数配置无效。
	ErrInvalidWorkers = errors.New("xbatch: workers must be in [1, 1024]")

	// ErrInvalidCacheSize 表示缓存大小配置无效。
	ErrInvalidCacheSize = errors.New("xbatch: cache size must be in [0, 16777216]")
)
