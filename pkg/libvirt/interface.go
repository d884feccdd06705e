package libvirt

import (
	"github.com/digitalocean/go-libvirt"
)

// LibvirtClient 定义 libvirt 客户端接口
// 用于抽象 libvirt 操作，便于测试和 mock
type LibvirtClient interface {
	// 连接信息
	Close() error
	URI() string
	GetHostname() (string, error)
	GetLibVersion() (uint64, error)
	GetNodeInfo() (*NodeInfo, error)

	// Domain 操作
	ListActiveDomainNames() ([]string, error)
	ListDefinedDomainNames() ([]string, error)
	LookupDomainByName(name string) (libvirt.Domain, error)
	GetDomainInfo(dom libvirt.Domain) (*DomainInfo, error)
	GetDomainXML(dom libvirt.Domain) (*DomainXML, error)

	// Storage Pool 操作
	GetStoragePoolCapabilities() (*PoolCapabilitiesXML, error)
}

// 确保 Client 实现了 LibvirtClient 接口
var _ LibvirtClient = (*Client)(nil)
