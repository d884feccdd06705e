package entity

// PoolCapabilities 存储池能力报告
// Computed 为 true 表示结果由本地能力表推算，而非 libvirt 原生返回
type PoolCapabilities struct {
	Computed  bool             `json:"computed"`
	PoolTypes []PoolCapability `json:"pool_types"`
}

// PoolCapability 单个存储池驱动的能力
type PoolCapability struct {
	Name      string       `json:"name"`
	Supported bool         `json:"supported"`
	Options   *PoolOptions `json:"options,omitempty"`
}

// PoolOptions 存储池与卷的可配置项
type PoolOptions struct {
	Pool   *PoolOptionGroup `json:"pool,omitempty"`
	Volume *PoolOptionGroup `json:"volume,omitempty"`
}

// PoolOptionGroup 一组可配置项
type PoolOptionGroup struct {
	DefaultFormat string              `json:"default_format,omitempty"`
	Enums         map[string][]string `json:"enums,omitempty"`
}
