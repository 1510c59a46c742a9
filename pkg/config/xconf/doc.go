// Package xconf 加载 ipv6calc 的配置文件。
//
// 基于 koanf v2，支持 YAML 与 JSON：
//   - [Load] 按扩展名识别格式并读取文件
//   - [LoadBytes] 从字节数据加载，需显式指定格式
//
// 文件只需写出要覆盖的字段，其余保持 [Default]。
// 未知字段会被拒绝，避免拼写错误被静默忽略。
//
//	s, err := xconf.Load("ipv6calc.yaml")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(s.Batch.Workers)
package xconf
