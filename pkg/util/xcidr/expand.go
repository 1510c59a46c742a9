package xcidr

import (
	"fmt"
	"strings"
)

const (
	// hextetCount IPv6 地址的分组数。
	hextetCount = 8
	// hextetDigits 每组的十六进制位数。
	hextetDigits = 4
	// hexDigits 完整地址的十六进制位数（128 / 4）。
	hexDigits = hextetCount * hextetDigits

	zeroHextet = "0000"
	elision    = "::"
)

// Hextets 是展开后的 8 组地址，每组恰好 4 位十六进制。
type Hextets [hextetCount]string

// String 返回以 ":" 连接的展开形式。
func (h Hextets) String() string {
	return strings.Join(h[:], ":")
}

// hex 返回 32 位十六进制串（无分隔符）。
func (h Hextets) hex() string {
	return strings.Join(h[:], "")
}

// Expand 将 IPv6 文本地址展开为 8 组 4 位十六进制，保持原有分组顺序。
// 例如 "2001:db8:85a3:8d3::370:7334" → "2001:0db8:85a3:08d3:0000:0000:0370:7334"。
//
// 对已展开的地址再次调用 Expand 结果不变。
// 非法输入返回 [ErrInvalidAddress]。
func Expand(addr string) (string, error) {
	h, err := expandHextets(addr)
	if err != nil {
		return "", err
	}
	return h.String(), nil
}

// expandHextets 解析地址文本并补齐省略部分。
func expandHextets(addr string) (Hextets, error) {
	var out Hextets

	if addr == elision {
		for i := range out {
			out[i] = zeroHextet
		}
		return out, nil
	}
	if addr == "" {
		return out, fmt.Errorf("%w: empty address", ErrInvalidAddress)
	}
	if strings.Count(addr, elision) > 1 {
		return out, fmt.Errorf("%w: more than one \"::\" in %q", ErrInvalidAddress, addr)
	}

	// 单个 ":" 开头或结尾（不属于 "::"）没有合法含义。
	if (strings.HasPrefix(addr, ":") && !strings.HasPrefix(addr, elision)) ||
		(strings.HasSuffix(addr, ":") && !strings.HasSuffix(addr, elision)) {
		return out, fmt.Errorf("%w: stray colon in %q", ErrInvalidAddress, addr)
	}

	// 首尾的 "::" 收缩为单个 ":"，使拆分后省略位置只产生一个空段。
	s := addr
	switch {
	case strings.HasPrefix(s, elision):
		s = s[1:]
	case strings.HasSuffix(s, elision):
		s = s[:len(s)-1]
	}

	segments := strings.Split(s, ":")
	explicit := 0
	elided := -1
	for i, seg := range segments {
		if seg == "" {
			if elided >= 0 {
				return out, fmt.Errorf("%w: malformed elision in %q", ErrInvalidAddress, addr)
			}
			elided = i
			continue
		}
		if err := checkHextet(seg); err != nil {
			return out, fmt.Errorf("%w: %q in %q: %w", ErrInvalidAddress, seg, addr, err)
		}
		explicit++
	}

	switch {
	case elided < 0 && explicit != hextetCount:
		return out, fmt.Errorf("%w: %d groups in %q, want %d", ErrInvalidAddress, explicit, addr, hextetCount)
	case elided >= 0 && explicit >= hextetCount:
		return out, fmt.Errorf("%w: \"::\" with %d explicit groups in %q", ErrInvalidAddress, explicit, addr)
	}

	n := 0
	for _, seg := range segments {
		if seg == "" {
			for range hextetCount - explicit {
				out[n] = zeroHextet
				n++
			}
			continue
		}
		out[n] = padHextet(seg)
		n++
	}
	return out, nil
}

// checkHextet 校验单个分组：1-4 位十六进制。
func checkHextet(seg string) error {
	if len(seg) > hextetDigits {
		return fmt.Errorf("group longer than %d digits", hextetDigits)
	}
	for i := 0; i < len(seg); i++ {
		if _, ok := hexValue(seg[i]); !ok {
			return fmt.Errorf("non-hex character %q", seg[i])
		}
	}
	return nil
}

// padHextet 左侧补 "0" 至 4 位。
func padHextet(seg string) string {
	return strings.Repeat("0", hextetDigits-len(seg)) + seg
}

// hexValue 返回十六进制字符对应的值。
func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
