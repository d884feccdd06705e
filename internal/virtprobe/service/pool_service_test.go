package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimyag/virtprobe/internal/virtprobe/entity"
	"github.com/jimyag/virtprobe/pkg/libvirt"
)

func TestPoolService_Capabilities_Native(t *testing.T) {
	t.Parallel()

	ts := setupTestServices(t)
	ts.MockLibvirt.On("GetStoragePoolCapabilities").Return(&libvirt.PoolCapabilitiesXML{
		Pools: []libvirt.PoolCapsXML{
			{
				Type:      "dir",
				Supported: "yes",
				VolOptions: &libvirt.PoolOptionsXML{
					DefaultFormat: &libvirt.PoolDefaultFormatXML{Type: "raw"},
					Enums: []libvirt.PoolEnumXML{
						{Name: "targetFormatType", Values: []string{"none", "raw", "qcow2"}},
					},
				},
			},
			{
				Type:      "sheepdog",
				Supported: "no",
			},
			{
				// 空选项组被丢弃
				Type:        "mpath",
				Supported:   "yes",
				PoolOptions: &libvirt.PoolOptionsXML{},
			},
		},
	}, nil)
	ts.MockLibvirt.On("Close").Return(nil)

	caps, err := ts.PoolService.Capabilities(context.Background(), "")
	require.NoError(t, err)

	assert.False(t, caps.Computed)
	require.Len(t, caps.PoolTypes, 3)

	dir := caps.PoolTypes[0]
	assert.Equal(t, "dir", dir.Name)
	assert.True(t, dir.Supported)
	require.NotNil(t, dir.Options)
	assert.Nil(t, dir.Options.Pool)
	require.NotNil(t, dir.Options.Volume)
	assert.Equal(t, "raw", dir.Options.Volume.DefaultFormat)
	assert.Equal(t, []string{"none", "raw", "qcow2"}, dir.Options.Volume.Enums["targetFormatType"])

	assert.False(t, caps.PoolTypes[1].Supported)
	assert.Nil(t, caps.PoolTypes[1].Options)
	assert.Nil(t, caps.PoolTypes[2].Options)
}

func TestPoolService_Capabilities_Fallback(t *testing.T) {
	t.Parallel()

	ts := setupTestServices(t)
	ts.MockLibvirt.On("GetStoragePoolCapabilities").
		Return(nil, fmt.Errorf("this function is not supported by the connection driver"))
	// 版本低于 gluster (1002000) 但高于 sheepdog (10000) 的要求
	ts.MockLibvirt.On("GetLibVersion").Return(uint64(1001000), nil)
	ts.MockLibvirt.On("Close").Return(nil)

	caps, err := ts.PoolService.Capabilities(context.Background(), "")
	require.NoError(t, err)

	assert.True(t, caps.Computed)
	require.Len(t, caps.PoolTypes, 14)

	byName := make(map[string]entity.PoolCapability, len(caps.PoolTypes))
	for _, p := range caps.PoolTypes {
		byName[p.Name] = p
	}

	// 无版本要求的驱动在 kvm 上都可用
	assert.True(t, byName["dir"].Supported)
	assert.True(t, byName["fs"].Supported)
	assert.True(t, byName["rbd"].Supported)

	// 版本门槛：sheepdog 满足，gluster/iscsi-direct/vstorage 不满足
	assert.True(t, byName["sheepdog"].Supported)
	assert.False(t, byName["gluster"].Supported)
	assert.False(t, byName["iscsi-direct"].Supported)
	assert.False(t, byName["vstorage"].Supported)

	// zfs 只兼容 bhyve，默认按 kvm 推算时不可用
	assert.False(t, byName["zfs"].Supported)

	// 推算结果带静态格式选项组，形状与原生输出一致
	require.NotNil(t, byName["logical"].Options)
	assert.Equal(t, "lvm2", byName["logical"].Options.Pool.DefaultFormat)
	assert.Equal(t, []string{"unknown", "lvm2"}, byName["logical"].Options.Pool.Enums["sourceFormatType"])
	assert.Nil(t, byName["logical"].Options.Volume)

	require.NotNil(t, byName["dir"].Options)
	assert.Nil(t, byName["dir"].Options.Pool)
	assert.Equal(t, "raw", byName["dir"].Options.Volume.DefaultFormat)
	assert.Contains(t, byName["dir"].Options.Volume.Enums["targetFormatType"], "qcow2")

	require.NotNil(t, byName["fs"].Options)
	assert.Equal(t, "auto", byName["fs"].Options.Pool.DefaultFormat)
	assert.Contains(t, byName["fs"].Options.Pool.Enums["sourceFormatType"], "xfs")
	assert.Equal(t, "raw", byName["fs"].Options.Volume.DefaultFormat)

	require.NotNil(t, byName["rbd"].Options)
	assert.Equal(t, "raw", byName["rbd"].Options.Volume.DefaultFormat)
	assert.Nil(t, byName["rbd"].Options.Volume.Enums)

	// 没有格式选项的驱动不带选项组
	assert.Nil(t, byName["iscsi"].Options)
	assert.Nil(t, byName["mpath"].Options)
	assert.Nil(t, byName["iscsi-direct"].Options)
}

func TestPoolService_Capabilities_FallbackHypervisor(t *testing.T) {
	t.Parallel()

	ts := setupTestServices(t)
	ts.MockLibvirt.On("GetStoragePoolCapabilities").
		Return(nil, fmt.Errorf("unknown procedure"))
	ts.MockLibvirt.On("GetLibVersion").Return(uint64(5000000), nil)
	ts.MockLibvirt.On("Close").Return(nil)

	svc := NewPoolService(ts.Connector, func(ctx context.Context) string { return "bhyve" })
	caps, err := svc.Capabilities(context.Background(), "")
	require.NoError(t, err)

	byName := make(map[string]entity.PoolCapability, len(caps.PoolTypes))
	for _, p := range caps.PoolTypes {
		byName[p.Name] = p
	}

	assert.True(t, byName["zfs"].Supported)
	assert.False(t, byName["sheepdog"].Supported)
	assert.True(t, byName["dir"].Supported)
}
