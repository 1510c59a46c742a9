package xcidr

import (
	"fmt"
	"math/big"
	"net/netip"
	"strconv"
	"strings"

	"go4.org/netipx"
)

// CIDR 表示一个已校验的 IPv6 地址与前缀长度。
//
// 必须通过 [Parse] 或 [MustParse] 创建。展开形式在创建时计算，
// 之后不再修改，值可以在 goroutine 间自由复制和共享。
// 零值表示"未设置"，[CIDR.IsZero] 返回 true。
type CIDR struct {
	addr    string
	bits    int
	hextets Hextets
	valid   bool
}

// Parse 解析 "地址/前缀长度" 形式的 CIDR 文本。
// 输入会自动去除首尾空白字符。
//
// 错误：
//   - 缺少 "/" 或多于一个 "/"：[ErrMalformedCIDR]
//   - 地址部分非法（字符、多个 "::"、分组数量等）：[ErrInvalidAddress]
//   - 前缀长度为空、非数字或超出 [0, 128]：[ErrInvalidPrefixLength]
//
// 地址先于前缀长度校验。
func Parse(s string) (CIDR, error) {
	s = strings.TrimSpace(s)

	addrPart, bitsPart, ok := strings.Cut(s, "/")
	if !ok || strings.Contains(bitsPart, "/") {
		return CIDR{}, fmt.Errorf("%w: want exactly one \"/\" in %q", ErrMalformedCIDR, s)
	}
	addrPart = strings.TrimSpace(addrPart)
	bitsPart = strings.TrimSpace(bitsPart)

	if err := validateAddr(addrPart); err != nil {
		return CIDR{}, err
	}
	bits, err := parsePrefixLength(bitsPart)
	if err != nil {
		return CIDR{}, err
	}

	h, err := expandHextets(addrPart)
	if err != nil {
		return CIDR{}, err
	}
	return CIDR{addr: addrPart, bits: bits, hextets: h, valid: true}, nil
}

// MustParse 与 [Parse] 相同，但失败时 panic。
// 适用于测试和常量初始化。
func MustParse(s string) CIDR {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// validateAddr 校验地址文本。
//
// 字符集限定为十六进制数字和 ":"，从而排除 zone ID 和内嵌 IPv4 写法；
// 其余语法交给 netip.ParseAddr。
func validateAddr(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty address", ErrInvalidAddress)
	}
	for i := 0; i < len(s); i++ {
		if _, ok := hexValue(s[i]); !ok && s[i] != ':' {
			return fmt.Errorf("%w: unexpected character %q in %q", ErrInvalidAddress, s[i], s)
		}
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if !addr.Is6() {
		return fmt.Errorf("%w: %q is not IPv6", ErrInvalidAddress, s)
	}
	return nil
}

// parsePrefixLength 解析前缀长度：非空、仅十进制数字、位于 [0, 128]。
func parsePrefixLength(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidPrefixLength)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidPrefixLength, s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidPrefixLength, err)
	}
	if err := checkPrefixLength(n); err != nil {
		return 0, err
	}
	return n, nil
}

// Addr 返回原始地址文本（已去除首尾空白，未规范化）。
func (c CIDR) Addr() string { return c.addr }

// Bits 返回前缀长度。
func (c CIDR) Bits() int { return c.bits }

// Hextets 返回展开后的 8 个分组。
func (c CIDR) Hextets() Hextets { return c.hextets }

// Expanded 返回展开形式，例如 "2001:0db8:0000:0000:0000:0000:0000:0001"。
func (c CIDR) Expanded() string {
	if !c.valid {
		return ""
	}
	return c.hextets.String()
}

// Condensed 返回压缩形式，规则见 [Condense]。
func (c CIDR) Condensed() string {
	if !c.valid {
		return ""
	}
	return condenseHextets(c.hextets)
}

// HostRange 返回子网的起止地址（展开形式）。
// 零值返回两个空字符串。
func (c CIDR) HostRange() (start, end string) {
	if !c.valid {
		return "", ""
	}
	return hostRangeHex(c.hextets.hex(), c.bits)
}

// HostCount 返回子网包含的地址数量 2^(128-bits)。
// 每次调用返回新的 [*big.Int]，调用方可自由修改。零值返回 nil。
func (c CIDR) HostCount() *big.Int {
	if !c.valid {
		return nil
	}
	return hostCount(c.bits)
}

// IP 返回地址的 [netip.Addr] 表示。零值返回无效地址。
func (c CIDR) IP() netip.Addr {
	if !c.valid {
		return netip.Addr{}
	}
	b, _ := hexTo16(c.hextets.hex())
	return netip.AddrFrom16(b)
}

// Prefix 返回对应的 [netip.Prefix]（未掩码，保留主机位）。
func (c CIDR) Prefix() netip.Prefix {
	if !c.valid {
		return netip.Prefix{}
	}
	return netip.PrefixFrom(c.IP(), c.bits)
}

// IPRange 返回子网覆盖的 [netipx.IPRange]，与 [CIDR.HostRange] 表示同一范围。
func (c CIDR) IPRange() netipx.IPRange {
	if !c.valid {
		return netipx.IPRange{}
	}
	return netipx.RangeOfPrefix(c.Prefix().Masked())
}

// Contains 报告 addr 是否位于子网范围内。zone 被忽略，IPv4 地址始终返回 false。
func (c CIDR) Contains(addr netip.Addr) bool {
	if !c.valid || !addr.Is6() {
		return false
	}
	return c.Prefix().Masked().Contains(addr.WithZone(""))
}

// IsZero 报告 c 是否为零值。
func (c CIDR) IsZero() bool { return !c.valid }

// String 返回 "原始地址/前缀长度"。零值返回空字符串。
func (c CIDR) String() string {
	if !c.valid {
		return ""
	}
	return c.addr + "/" + strconv.Itoa(c.bits)
}
