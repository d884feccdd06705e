package libvirt

import (
	"encoding/xml"
	"fmt"
)

// DomainXML 是 libvirt domain 描述文档中本服务关心的部分
type DomainXML struct {
	XMLName    xml.Name      `xml:"domain"`
	Type       string        `xml:"type,attr"`
	Name       string        `xml:"name"`
	UUID       string        `xml:"uuid"`
	OnPoweroff string        `xml:"on_poweroff"`
	OnReboot   string        `xml:"on_reboot"`
	OnCrash    string        `xml:"on_crash"`
	Devices    DomainDevices `xml:"devices"`
}

// DomainDevices 设备列表
type DomainDevices struct {
	Disks      []DomainDisk      `xml:"disk"`
	Interfaces []DomainInterface `xml:"interface"`
	Graphics   []DomainGraphics  `xml:"graphics"`
}

// DomainDisk 磁盘设备
type DomainDisk struct {
	Type   string            `xml:"type,attr"`
	Device string            `xml:"device,attr"`
	Driver *DomainDiskDriver `xml:"driver"`
	Source *DomainDiskSource `xml:"source"`
	Target *DomainDiskTarget `xml:"target"`
}

// DomainDiskDriver 磁盘驱动
type DomainDiskDriver struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

// DomainDiskSource 磁盘源
// 本地文件用 file，块设备用 dev，网络磁盘用 protocol + name
type DomainDiskSource struct {
	File     string `xml:"file,attr"`
	Dev      string `xml:"dev,attr"`
	Protocol string `xml:"protocol,attr"`
	Name     string `xml:"name,attr"`
}

// DomainDiskTarget 磁盘目标设备
type DomainDiskTarget struct {
	Dev string `xml:"dev,attr"`
	Bus string `xml:"bus,attr"`
}

// DomainInterface 网络接口设备
type DomainInterface struct {
	Type        string                 `xml:"type,attr"`
	MAC         *DomainInterfaceMAC    `xml:"mac"`
	Model       *DomainInterfaceModel  `xml:"model"`
	Target      *DomainInterfaceTarget `xml:"target"`
	Driver      *AttrGroup             `xml:"driver"`
	Source      *AttrGroup             `xml:"source"`
	Address     *AttrGroup             `xml:"address"`
	Virtualport *AttrGroup             `xml:"virtualport"`
}

// DomainInterfaceMAC MAC 地址
type DomainInterfaceMAC struct {
	Address string `xml:"address,attr"`
}

// DomainInterfaceModel 网卡型号
type DomainInterfaceModel struct {
	Type string `xml:"type,attr"`
}

// DomainInterfaceTarget 宿主机侧的目标设备
type DomainInterfaceTarget struct {
	Dev string `xml:"dev,attr"`
}

// DomainGraphics 图形设备，保留元素的全部属性
type DomainGraphics struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

// AttrGroup 捕获一个元素的全部属性，用于 driver/source/address/virtualport
// 这类属性集合没有固定 schema
type AttrGroup struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

// Map 将属性集合转换为 map
func (g *AttrGroup) Map() map[string]string {
	if g == nil || len(g.Attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(g.Attrs))
	for _, attr := range g.Attrs {
		out[attr.Name.Local] = attr.Value
	}
	return out
}

// Map 将图形设备属性转换为 map
func (g *DomainGraphics) Map() map[string]string {
	if g == nil || len(g.Attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(g.Attrs))
	for _, attr := range g.Attrs {
		out[attr.Name.Local] = attr.Value
	}
	return out
}

// ParseDomainXML 解析 domain XML 描述
func ParseDomainXML(xmlDesc string) (*DomainXML, error) {
	var dom DomainXML
	if err := xml.Unmarshal([]byte(xmlDesc), &dom); err != nil {
		return nil, fmt.Errorf("unmarshal domain XML: %w", err)
	}
	return &dom, nil
}
