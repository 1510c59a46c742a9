package xcidr

import "strings"

// Condense 返回地址的最短文本表示。
// 输入可以是展开形式，也可以是任意合法的 IPv6 文本（会先展开）。
//
// 规则：
//   - 每组去除前导零，全零组写作 "0"
//   - 最长的连续全零组替换为 "::"，长度相同时取最左侧一段
//   - 长度为 1 的全零组在没有更长的段时同样替换
//   - 8 组全零返回 "::"
//
// 非法输入返回 [ErrInvalidAddress]。
func Condense(addr string) (string, error) {
	h, err := expandHextets(addr)
	if err != nil {
		return "", err
	}
	return condenseHextets(h), nil
}

// condenseHextets 对已展开的分组执行压缩。
func condenseHextets(h Hextets) string {
	var parts [hextetCount]string
	for i, g := range h {
		parts[i] = trimHextet(g)
	}

	start, length := longestZeroRun(parts)
	if length == 0 {
		return strings.Join(parts[:], ":")
	}
	head := strings.Join(parts[:start], ":")
	tail := strings.Join(parts[start+length:], ":")
	return head + elision + tail
}

// trimHextet 去除前导零，全零组返回 "0"。
func trimHextet(g string) string {
	t := strings.TrimLeft(g, "0")
	if t == "" {
		return "0"
	}
	return t
}

// longestZeroRun 返回最长连续 "0" 分组的起点和长度，不存在时长度为 0。
// 比较使用严格大于：后出现的等长段不会替换先出现的段。
func longestZeroRun(parts [hextetCount]string) (start, length int) {
	run := 0
	for i, p := range parts {
		if p != "0" {
			run = 0
			continue
		}
		run++
		if run > length {
			start, length = i-run+1, run
		}
	}
	return start, length
}
