// Package xconf 基于 koanf 加载 YAML/JSON 配置。
//
// 文件格式由扩展名决定（.yaml/.yml/.json）；字节数据需显式指定格式。
// 反序列化使用 koanf 结构体标签，字符串形式的时长（"5s"）可直接解码为 time.Duration。
//
//	cfg, err := xconf.Load("xdocctl.yaml")
//	if err != nil {
//		return err
//	}
//	var mongo xmongo.Config
//	if err := cfg.Unmarshal("mongo", &mongo); err != nil {
//		return err
//	}
package xconf
