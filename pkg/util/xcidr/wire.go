package xcidr

import (
	"fmt"
	"strconv"
)

// Summary 是 CIDR 计算结果的序列化格式。
// 使用 JSON/YAML 标签，主机数量为不带分隔符的十进制字符串，避免 JSON 数字精度丢失。
type Summary struct {
	Input        string `json:"input,omitempty" yaml:"input,omitempty"`
	Expanded     string `json:"expanded" yaml:"expanded"`
	Condensed    string `json:"condensed" yaml:"condensed"`
	PrefixLength int    `json:"prefix_length" yaml:"prefix_length"`
	RangeStart   string `json:"range_start" yaml:"range_start"`
	RangeEnd     string `json:"range_end" yaml:"range_end"`
	Hosts        string `json:"hosts" yaml:"hosts"`
}

// Summary 汇总 c 的全部派生结果。零值返回零值 Summary。
func (c CIDR) Summary() Summary {
	if !c.valid {
		return Summary{}
	}
	start, end := c.HostRange()
	return Summary{
		Input:        c.String(),
		Expanded:     c.Expanded(),
		Condensed:    c.Condensed(),
		PrefixLength: c.bits,
		RangeStart:   start,
		RangeEnd:     end,
		Hosts:        c.HostCount().String(),
	}
}

// IsZero 报告 s 是否为零值。
func (s Summary) IsZero() bool {
	return s == Summary{}
}

// ToCIDR 由 Expanded 和 PrefixLength 重新构建 [CIDR]。
// 反序列化得到的 Summary 可能被篡改，其余字段与重新计算的结果不一致时返回错误。
func (s Summary) ToCIDR() (CIDR, error) {
	c, err := Parse(s.Expanded + "/" + strconv.Itoa(s.PrefixLength))
	if err != nil {
		return CIDR{}, err
	}
	want := c.Summary()
	if s.Condensed != want.Condensed || s.RangeStart != want.RangeStart ||
		s.RangeEnd != want.RangeEnd || s.Hosts != want.Hosts {
		return CIDR{}, fmt.Errorf("%w: fields do not match %s", ErrInconsistentSummary, want.Expanded)
	}
	return c, nil
}
