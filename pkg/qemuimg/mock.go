package qemuimg

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient 是 QemuImgClient 的 mock 实现
// 用于测试，不需要真实的 qemu-img 二进制
type MockClient struct {
	mock.Mock
}

// 确保 MockClient 实现了 QemuImgClient 接口
var _ QemuImgClient = (*MockClient)(nil)

// NewMockClient 创建 mock client
func NewMockClient() *MockClient {
	return &MockClient{}
}

// InfoChain 查询镜像及其完整 backing chain 的信息
func (m *MockClient) InfoChain(ctx context.Context, imagePath string) ([]ImageInfo, error) {
	args := m.Called(ctx, imagePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ImageInfo), args.Error(1)
}

// Info 查询单个镜像的信息
func (m *MockClient) Info(ctx context.Context, imagePath string) (*ImageInfo, error) {
	args := m.Called(ctx, imagePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ImageInfo), args.Error(1)
}
