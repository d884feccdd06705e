package libvirt

import (
	"github.com/digitalocean/go-libvirt"
	"github.com/stretchr/testify/mock"
)

// MockClient 是 LibvirtClient 的 mock 实现
// 用于测试，不需要真实的 libvirt 连接
type MockClient struct {
	mock.Mock
}

// 确保 MockClient 实现了 LibvirtClient 接口
var _ LibvirtClient = (*MockClient)(nil)

// NewMockClient 创建 mock client
func NewMockClient() *MockClient {
	return &MockClient{}
}

// 连接信息
func (m *MockClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockClient) URI() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetHostname() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockClient) GetLibVersion() (uint64, error) {
	args := m.Called()
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockClient) GetNodeInfo() (*NodeInfo, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*NodeInfo), args.Error(1)
}

// Domain 操作
func (m *MockClient) ListActiveDomainNames() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockClient) ListDefinedDomainNames() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockClient) LookupDomainByName(name string) (libvirt.Domain, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return libvirt.Domain{}, args.Error(1)
	}
	return args.Get(0).(libvirt.Domain), args.Error(1)
}

func (m *MockClient) GetDomainInfo(dom libvirt.Domain) (*DomainInfo, error) {
	args := m.Called(dom)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DomainInfo), args.Error(1)
}

func (m *MockClient) GetDomainXML(dom libvirt.Domain) (*DomainXML, error) {
	args := m.Called(dom)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DomainXML), args.Error(1)
}

// Storage Pool 操作
func (m *MockClient) GetStoragePoolCapabilities() (*PoolCapabilitiesXML, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PoolCapabilitiesXML), args.Error(1)
}
