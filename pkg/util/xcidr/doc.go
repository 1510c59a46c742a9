// Package xcidr 提供 IPv6 CIDR 计算工具。
//
// 给定形如 "2001:db8:85a3:8d3::370:7334/64" 的文本，xcidr 校验输入并派生：
//
//   - 展开形式：8 组 4 位十六进制（"2001:0db8:85a3:08d3:0000:0000:0370:7334"）
//   - 压缩形式：最短文本表示（"2001:db8:85a3:8d3::370:7334"）
//   - 主机范围：子网覆盖的起止地址（均为展开形式）
//   - 主机数量：2^(128-前缀长度)，使用 [math/big] 精确计算
//
// # 快速示例
//
//	c, err := xcidr.Parse("2d81:db8:85a3:8d3::7334/19")
//	if err != nil {
//	    // errors.Is(err, xcidr.ErrInvalidAddress) 等
//	}
//	fmt.Println(c.Expanded())   // 2d81:0db8:85a3:08d3:0000:0000:0000:7334
//	fmt.Println(c.Condensed())  // 2d81:db8:85a3:8d3::7334
//	start, end := c.HostRange()
//	fmt.Println(start)          // 2d81:0000:0000:0000:0000:0000:0000:0000
//	fmt.Println(end)            // 2d81:1fff:ffff:ffff:ffff:ffff:ffff:ffff
//	fmt.Println(xcidr.FormatHostCount(c.HostCount()))
//
// # 设计决策
//
//   - [CIDR] 是不可变值类型，展开形式在 [Parse] 时一次性计算，无需缓存字段和锁
//   - 地址语法校验委托给 [net/netip]，展开/压缩/范围计算基于文本和半字节（nibble）运算
//   - 范围计算按半字节拆分：前 bits/4 个十六进制位固定，余下 bits%4 位由 [NibbleBounds] 计算
//   - 主机数量超过 64 位范围（/0 为 2^128），只使用 [*big.Int]，不使用浮点
//   - [CIDR.IPRange] 与 [go4.org/netipx] 互通，便于与 IPSet 等集合操作组合
//
// # 压缩规则
//
// [Condense] 选择最长的连续全零组替换为 "::"。长度相同时保留最左侧的一段
// （严格大于比较）。长度为 1 的全零组同样会被替换：
//
//	2001:0db8:85a3:08d3:0000:0370:7334:0000 → 2001:db8:85a3:8d3::370:7334:0
//
// # 输入限制
//
// 不支持 zone ID（"fe80::1%eth0"）和内嵌 IPv4 写法（"::ffff:1.2.3.4"），
// 两者都返回 [ErrInvalidAddress]。不做保留地址段校验。
//
// # 错误处理
//
// 所有可失败函数返回包装后的预定义错误，使用 errors.Is 判断：
//
//	_, err := xcidr.Parse("2001:db8::/131")
//	if errors.Is(err, xcidr.ErrInvalidPrefixLength) {
//	    // 处理前缀长度错误
//	}
package xcidr
