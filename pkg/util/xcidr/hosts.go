package xcidr

import (
	"math/big"

	"github.com/dustin/go-humanize"
)

// HostCount 返回前缀长度为 bits 的子网包含的地址数量：2^(128-bits)。
// bits 超出 [0, 128] 返回 [ErrInvalidPrefixLength]。
func HostCount(bits int) (*big.Int, error) {
	if err := checkPrefixLength(bits); err != nil {
		return nil, err
	}
	return hostCount(bits), nil
}

func hostCount(bits int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(MaxPrefixLength-bits))
}

// FormatHostCount 将主机数量格式化为带千位分隔符的十进制字符串，
// 例如 2^64 → "18,446,744,073,709,551,616"。nil 返回空字符串。
func FormatHostCount(n *big.Int) string {
	if n == nil {
		return ""
	}
	// humanize.BigComma 对负数会原地取绝对值，传入副本。
	return humanize.BigComma(new(big.Int).Set(n))
}
