package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimyag/virtprobe/pkg/libvirt"
)

func TestNodeService_Info(t *testing.T) {
	t.Parallel()

	ts := setupTestServices(t)
	ts.MockLibvirt.On("GetNodeInfo").Return(&libvirt.NodeInfo{
		CPUModel: "x86_64",
		Memory:   4096,
		CPUs:     8,
		MHz:      2712,
		Nodes:    1,
		Sockets:  2,
		Cores:    4,
		Threads:  2,
	}, nil)
	ts.MockLibvirt.On("Close").Return(nil)

	info, err := ts.NodeService.Info(context.Background(), "")
	require.NoError(t, err)

	// 每个字段都对应元组中的固定位置
	assert.Equal(t, "x86_64", info.CPUModel)
	assert.Equal(t, uint64(4096), info.PhyMemory)
	assert.Equal(t, int32(8), info.CPUs)
	assert.Equal(t, int32(2712), info.CPUMHz)
	assert.Equal(t, int32(1), info.NUMANodes)
	assert.Equal(t, int32(2), info.Sockets)
	assert.Equal(t, int32(4), info.CPUCores)
	assert.Equal(t, int32(2), info.CPUThreads)
	ts.MockLibvirt.AssertCalled(t, "Close")
}

func TestNodeService_Version(t *testing.T) {
	t.Parallel()

	ts := setupTestServices(t)
	ts.MockLibvirt.On("GetHostname").Return("vmhost01", nil)
	ts.MockLibvirt.On("GetLibVersion").Return(uint64(8003000), nil)
	ts.MockLibvirt.On("Close").Return(nil)

	version, err := ts.NodeService.Version(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "vmhost01", version.Hostname)
	assert.Equal(t, "8.3.0", version.LibVersion)
	assert.Equal(t, uint64(8003000), version.RawVersion)
}
