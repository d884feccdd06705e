package libvirt

import (
	"encoding/xml"
	"fmt"
)

// PoolCapabilitiesXML 是 libvirt storage pool capabilities 的 XML 结构
type PoolCapabilitiesXML struct {
	XMLName xml.Name      `xml:"storagepoolCapabilities"`
	Pools   []PoolCapsXML `xml:"pool"`
}

// PoolCapsXML 单个存储池类型的能力
type PoolCapsXML struct {
	Type        string          `xml:"type,attr"`
	Supported   string          `xml:"supported,attr"`
	PoolOptions *PoolOptionsXML `xml:"poolOptions"`
	VolOptions  *PoolOptionsXML `xml:"volOptions"`
}

// PoolOptionsXML pool 或 vol 级别的选项组
type PoolOptionsXML struct {
	DefaultFormat *PoolDefaultFormatXML `xml:"defaultFormat"`
	Enums         []PoolEnumXML         `xml:"enum"`
}

// PoolDefaultFormatXML 默认格式
type PoolDefaultFormatXML struct {
	Type string `xml:"type,attr"`
}

// PoolEnumXML 枚举选项
type PoolEnumXML struct {
	Name   string   `xml:"name,attr"`
	Values []string `xml:"value"`
}

// ParsePoolCapabilities 解析 storage pool capabilities XML
func ParsePoolCapabilities(xmlData string) (*PoolCapabilitiesXML, error) {
	var caps PoolCapabilitiesXML
	if err := xml.Unmarshal([]byte(xmlData), &caps); err != nil {
		return nil, fmt.Errorf("unmarshal pool capabilities XML: %w", err)
	}
	return &caps, nil
}

// GetStoragePoolCapabilities 查询 hypervisor 的存储池能力文档
// 老版本的 libvirtd 不支持该查询，此时返回错误，由调用方决定是否回退
func (c *Client) GetStoragePoolCapabilities() (*PoolCapabilitiesXML, error) {
	xmlData, err := c.conn.ConnectGetStoragePoolCapabilities(0)
	if err != nil {
		return nil, fmt.Errorf("get storage pool capabilities: %w", err)
	}
	return ParsePoolCapabilities(xmlData)
}
