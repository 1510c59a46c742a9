package xcidr

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"net/netip"
)

// hexTo16 将 32 位十六进制串解码为 16 字节。
func hexTo16(s string) ([16]byte, error) {
	var b [16]byte
	if len(s) != hexDigits {
		return b, fmt.Errorf("%w: want %d hex digits, got %d", ErrInvalidAddress, hexDigits, len(s))
	}
	if _, err := hex.Decode(b[:], []byte(s)); err != nil {
		return b, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	return b, nil
}

// ExpandedToAddr 将 IPv6 文本（展开或压缩形式均可）转换为 [netip.Addr]。
func ExpandedToAddr(s string) (netip.Addr, error) {
	h, err := expandHextets(s)
	if err != nil {
		return netip.Addr{}, err
	}
	b, err := hexTo16(h.hex())
	if err != nil {
		return netip.Addr{}, err
	}
	return netip.AddrFrom16(b), nil
}

// ExpandedToBigInt 将 IPv6 文本转换为 128 位大端无符号整数。
// 用于按数值比较 [HostRange] 返回的起止地址。
func ExpandedToBigInt(s string) (*big.Int, error) {
	h, err := expandHextets(s)
	if err != nil {
		return nil, err
	}
	v, ok := new(big.Int).SetString(h.hex(), 16)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return v, nil
}

// AddrToBigInt 将 IPv6 地址转换为 [*big.Int]。
// 无效地址或 IPv4 地址返回 big.Int 零值。
func AddrToBigInt(addr netip.Addr) *big.Int {
	if !addr.Is6() {
		return new(big.Int)
	}
	b := addr.As16()
	return new(big.Int).SetBytes(b[:])
}

// FormatExpanded 将 [netip.Addr] 格式化为展开形式（小写，zone 被忽略）。
// 非 IPv6 地址返回空字符串。
func FormatExpanded(addr netip.Addr) string {
	if !addr.Is6() {
		return ""
	}
	b := addr.As16()
	return groupHex(hex.EncodeToString(b[:]))
}
