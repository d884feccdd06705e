package libvirt

import (
	"fmt"

	"github.com/digitalocean/go-libvirt"
)

// 枚举时一次最多取回的 domain 数量
const maxDomains = 1024

// DomainInfo 是 DomainGetInfo 返回的原始信息
// 字段顺序与 libvirt info 元组一致：state, maxMem, memory, nrVirtCPU, cpuTime
type DomainInfo struct {
	State     uint8
	MaxMem    uint64
	Memory    uint64
	NrVirtCPU uint16
	CPUTime   uint64
}

// ListActiveDomainNames 返回所有运行中 domain 的名称
// 运行中的 domain 通过数字 ID 列举，再逐个按 ID 查找取得名称
func (c *Client) ListActiveDomainNames() ([]string, error) {
	ids, err := c.conn.ConnectListDomains(maxDomains)
	if err != nil {
		return nil, fmt.Errorf("list active domains: %w", err)
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		dom, err := c.conn.DomainLookupByID(id)
		if err != nil {
			return nil, fmt.Errorf("lookup domain by id %d: %w", id, err)
		}
		names = append(names, dom.Name)
	}

	return names, nil
}

// ListDefinedDomainNames 返回所有已定义但未运行 domain 的名称
func (c *Client) ListDefinedDomainNames() ([]string, error) {
	names, err := c.conn.ConnectListDefinedDomains(maxDomains)
	if err != nil {
		return nil, fmt.Errorf("list defined domains: %w", err)
	}
	return names, nil
}

// LookupDomainByName 按名称查找 domain
func (c *Client) LookupDomainByName(name string) (libvirt.Domain, error) {
	dom, err := c.conn.DomainLookupByName(name)
	if err != nil {
		return libvirt.Domain{}, fmt.Errorf("lookup domain %q: %w", name, err)
	}
	return dom, nil
}

// GetDomainInfo 返回 domain 的原始 info 元组
func (c *Client) GetDomainInfo(dom libvirt.Domain) (*DomainInfo, error) {
	state, maxMem, memory, nrVirtCPU, cpuTime, err := c.conn.DomainGetInfo(dom)
	if err != nil {
		return nil, fmt.Errorf("get domain info for %s: %w", dom.Name, err)
	}

	return &DomainInfo{
		State:     state,
		MaxMem:    maxMem,
		Memory:    memory,
		NrVirtCPU: nrVirtCPU,
		CPUTime:   cpuTime,
	}, nil
}

// GetDomainXML 返回 domain 的 XML 描述并解析
func (c *Client) GetDomainXML(dom libvirt.Domain) (*DomainXML, error) {
	xmlDesc, err := c.conn.DomainGetXMLDesc(dom, 0)
	if err != nil {
		return nil, fmt.Errorf("get domain XML for %s: %w", dom.Name, err)
	}
	return ParseDomainXML(xmlDesc)
}
