package xcidr

import (
	"fmt"
	"strings"
)

// MaxPrefixLength IPv6 前缀长度上限。
const MaxPrefixLength = 128

// nibbleBits 每个十六进制位的比特数。
const nibbleBits = 4

// lowerHex 小写十六进制字符表。
const lowerHex = "0123456789abcdef"

// HostRange 计算 addr/bits 覆盖的起止地址，均为展开形式。
//
// 前 bits/4 个十六进制位在起止地址中相同；若 bits%4 != 0，下一位由
// [NibbleBounds] 计算最小/最大值；其余位置起始地址补 "0"、结束地址补 "f"。
//
// 非法地址返回 [ErrInvalidAddress]，bits 超出 [0, 128] 返回 [ErrInvalidPrefixLength]。
func HostRange(addr string, bits int) (start, end string, err error) {
	h, err := expandHextets(addr)
	if err != nil {
		return "", "", err
	}
	if err := checkPrefixLength(bits); err != nil {
		return "", "", err
	}
	start, end = hostRangeHex(h.hex(), bits)
	return start, end, nil
}

// hostRangeHex 在 32 位十六进制串上执行半字节拆分。
// 调用方保证 hex 长度为 32 且 bits 在 [0, 128]。
func hostRangeHex(hex string, bits int) (start, end string) {
	whole := bits / nibbleBits
	rem := bits % nibbleBits

	fixed := hex[:whole]
	lo, hi := fixed, fixed
	if rem != 0 {
		// hex 已经过展开校验，hexValue 不会失败。
		v, _ := hexValue(hex[whole])
		minV, maxV := NibbleBounds(v, uint(rem))
		lo += string(lowerHex[minV])
		hi += string(lowerHex[maxV])
	}

	lo += strings.Repeat("0", hexDigits-len(lo))
	hi += strings.Repeat("f", hexDigits-len(hi))
	return groupHex(lo), groupHex(hi)
}

// NibbleBounds 计算单个十六进制位在固定高 fixed 位后的取值范围。
//
// lo 为清零低 (4-fixed) 位的结果，hi 为置位低 (4-fixed) 位的结果。
// 例如 v=0xd、fixed=3：lo=0xc，hi=0xd。
// v 只取低 4 位；fixed 大于 4 时按 4 处理。
func NibbleBounds(v uint8, fixed uint) (lo, hi uint8) {
	v &= 0xf
	if fixed > nibbleBits {
		fixed = nibbleBits
	}
	mask := uint8(0xf<<(nibbleBits-fixed)) & 0xf
	return v & mask, v | (^mask & 0xf)
}

// groupHex 每 4 位插入 ":"，得到 8 组展开形式。
func groupHex(hex string) string {
	var b strings.Builder
	b.Grow(hexDigits + hextetCount - 1)
	for i := 0; i < len(hex); i += hextetDigits {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(hex[i : i+hextetDigits])
	}
	return b.String()
}

// checkPrefixLength 校验前缀长度范围。
func checkPrefixLength(bits int) error {
	if bits < 0 || bits > MaxPrefixLength {
		return fmt.Errorf("%w: %d is out of range [0, %d]", ErrInvalidPrefixLength, bits, MaxPrefixLength)
	}
	return nil
}
