package xcidr

import "errors"

var (
	// ErrMissingArgument 表示未提供 CIDR 文本。
	ErrMissingArgument = errors.New("xcidr: missing CIDR argument")

	// ErrMalformedCIDR 表示 CIDR 文本中 "/" 分隔符缺失或多于一个。
	ErrMalformedCIDR = errors.New("xcidr: malformed CIDR")

	// ErrInvalidAddress 表示地址部分不是合法的 IPv6 文本地址。
	ErrInvalidAddress = errors.New("xcidr: invalid IPv6 address")

	// ErrInvalidPrefixLength 表示前缀长度为空、非数字或超出 [0, 128]。
	ErrInvalidPrefixLength = errors.New("xcidr: invalid prefix length")

	// ErrInconsistentSummary 表示 [Summary] 的派生字段与地址不一致。
	ErrInconsistentSummary = errors.New("xcidr: inconsistent summary")
)
