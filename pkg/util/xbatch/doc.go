// Package xbatch 对多个 IPv6 CIDR 文本并发执行解析与计算。
//
// [Calculator] 以 [xcidr.Parse] 为核心，提供：
//   - 基于 hashicorp/golang-lru/v2 的结果记忆化，重复输入直接命中缓存
//   - 基于 errgroup 的有界并发，[Calculator.CalculateAll] 的结果保持输入顺序
//   - 单个输入的校验错误记录在 [Outcome.Err] 中，不会中断整批计算
//   - OpenTelemetry 计数器、耗时直方图与 span，默认使用 otel 全局 provider
//
// 只有成功的结果会被缓存；[xcidr.CIDR] 是不可变值，缓存命中时直接复制返回。
//
//	calc, err := xbatch.New(xbatch.Config{Workers: 8, CacheSize: 1024})
//	if err != nil {
//	    return err
//	}
//	outcomes, err := calc.CalculateAll(ctx, inputs)
package xbatch
