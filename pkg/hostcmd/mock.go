package hostcmd

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRunner HostRunner 的 mock 实现，用于单元测试
type MockRunner struct {
	mock.Mock
}

var _ HostRunner = (*MockRunner)(nil)

func (m *MockRunner) KernelModules() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRunner) ProcessList(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
