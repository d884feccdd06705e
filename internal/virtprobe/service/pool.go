package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jimyag/virtprobe/internal/virtprobe/entity"
	"github.com/jimyag/virtprobe/pkg/apierror"
	"github.com/jimyag/virtprobe/pkg/libvirt"
)

// driverOptions 能力表中一个选项组的静态定义
type driverOptions struct {
	defaultFormat string
	formats       []string
}

// poolDriver 本地能力表中的一个存储池驱动
type poolDriver struct {
	name        string
	minVersion  uint64         // 要求的最低 libvirt 版本，0 表示无要求
	hypervisors []string       // 兼容的 hypervisor，为空表示全部
	pool        *driverOptions // 池级别的格式选项
	volume      *driverOptions // 卷级别的格式选项
}

// allHypervisors 能力表覆盖的全部 hypervisor 类型
var allHypervisors = []string{"xen", "kvm", "bhyve"}

// imageFormats 支持镜像文件的驱动共用的卷格式列表
var imageFormats = []string{
	"none", "raw", "dir", "bochs", "cloop", "dmg", "iso", "vpc", "vdi",
	"fat", "vhd", "ploop", "cow", "qcow", "qcow2", "qed", "vmdk",
}

// poolDrivers 本地存储池能力表
// 老版本 libvirt 不支持原生的能力查询，此时用这张表推算，
// 选项组的形状与原生查询输出保持一致
var poolDrivers = []poolDriver{
	{
		name: "fs",
		pool: &driverOptions{defaultFormat: "auto", formats: []string{
			"auto", "ext2", "ext3", "ext4", "ufs", "iso9660", "udf",
			"gfs", "gfs2", "vfat", "hfs+", "xfs", "ocfs2",
		}},
		volume: &driverOptions{defaultFormat: "raw", formats: imageFormats},
	},
	{
		name:   "dir",
		volume: &driverOptions{defaultFormat: "raw", formats: imageFormats},
	},
	{name: "iscsi"},
	{name: "scsi"},
	{
		name: "logical",
		pool: &driverOptions{defaultFormat: "lvm2", formats: []string{"unknown", "lvm2"}},
	},
	{
		name: "netfs",
		pool: &driverOptions{defaultFormat: "auto", formats: []string{
			"auto", "nfs", "glusterfs", "cifs",
		}},
		volume: &driverOptions{defaultFormat: "raw", formats: imageFormats},
	},
	{
		name: "disk",
		pool: &driverOptions{defaultFormat: "unknown", formats: []string{
			"unknown", "dos", "dvh", "gpt", "mac", "bsd", "pc98", "sun", "lvm2",
		}},
		volume: &driverOptions{defaultFormat: "none", formats: []string{
			"none", "linux", "fat16", "fat32", "linux-swap",
			"linux-lvm", "linux-raid", "extended",
		}},
	},
	{name: "mpath"},
	{
		name:   "rbd",
		volume: &driverOptions{defaultFormat: "raw"},
	},
	{
		name: "sheepdog", minVersion: 10000, hypervisors: []string{"kvm"},
		volume: &driverOptions{defaultFormat: "raw", formats: imageFormats},
	},
	{
		name: "gluster", minVersion: 1002000, hypervisors: []string{"kvm"},
		volume: &driverOptions{defaultFormat: "raw", formats: imageFormats},
	},
	{
		name: "zfs", minVersion: 1002008, hypervisors: []string{"bhyve"},
		volume: &driverOptions{defaultFormat: "raw"},
	},
	{name: "iscsi-direct", minVersion: 4007000, hypervisors: []string{"kvm", "xen"}},
	{
		name: "vstorage", minVersion: 3001000, hypervisors: []string{"kvm"},
		volume: &driverOptions{defaultFormat: "raw", formats: imageFormats},
	},
}

// PoolService 存储池能力探测服务
type PoolService struct {
	connector *Connector
	// detectHypervisor 返回宿主机的 hypervisor 类型，用于推算能力表
	detectHypervisor func(ctx context.Context) string
}

// NewPoolService 创建存储池能力探测服务
// detectHypervisor 为 nil 时推算按 kvm 处理
func NewPoolService(connector *Connector, detectHypervisor func(ctx context.Context) string) *PoolService {
	return &PoolService{
		connector:        connector,
		detectHypervisor: detectHypervisor,
	}
}

// Capabilities 查询节点支持的存储池类型及其配置项
// 优先使用 libvirt 的原生能力查询，
// 老版本 daemon 不支持时回退到本地能力表推算
func (s *PoolService) Capabilities(ctx context.Context, nodeName string) (*entity.PoolCapabilities, error) {
	client, err := s.connector.Open(ctx, nodeName)
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Close() }()

	caps, err := client.GetStoragePoolCapabilities()
	if err == nil {
		return nativeCapabilities(caps), nil
	}
	zerolog.Ctx(ctx).Info().Err(err).
		Msg("Native storage pool capabilities unavailable, computing from local table")

	version, err := client.GetLibVersion()
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalFailure, "get libvirt version", err)
	}

	hypervisor := "kvm"
	if s.detectHypervisor != nil {
		if detected := s.detectHypervisor(ctx); detected != "" {
			hypervisor = detected
		}
	}

	return computedCapabilities(version, hypervisor), nil
}

// nativeCapabilities 将 libvirt 原生能力查询的结果转换为实体
func nativeCapabilities(caps *libvirt.PoolCapabilitiesXML) *entity.PoolCapabilities {
	out := &entity.PoolCapabilities{
		Computed:  false,
		PoolTypes: make([]entity.PoolCapability, 0, len(caps.Pools)),
	}
	for _, pool := range caps.Pools {
		poolCap := entity.PoolCapability{
			Name:      pool.Type,
			Supported: pool.Supported == "yes",
		}

		options := entity.PoolOptions{
			Pool:   optionGroup(pool.PoolOptions),
			Volume: optionGroup(pool.VolOptions),
		}
		if options.Pool != nil || options.Volume != nil {
			poolCap.Options = &options
		}

		out.PoolTypes = append(out.PoolTypes, poolCap)
	}
	return out
}

// optionGroup 转换一组选项，空组返回 nil
func optionGroup(opts *libvirt.PoolOptionsXML) *entity.PoolOptionGroup {
	if opts == nil {
		return nil
	}

	group := entity.PoolOptionGroup{}
	if opts.DefaultFormat != nil {
		group.DefaultFormat = opts.DefaultFormat.Type
	}
	if len(opts.Enums) > 0 {
		group.Enums = make(map[string][]string, len(opts.Enums))
		for _, enum := range opts.Enums {
			group.Enums[enum.Name] = enum.Values
		}
	}

	if group.DefaultFormat == "" && len(group.Enums) == 0 {
		return nil
	}
	return &group
}

// computedCapabilities 根据本地能力表推算存储池能力
func computedCapabilities(version uint64, hypervisor string) *entity.PoolCapabilities {
	out := &entity.PoolCapabilities{
		Computed:  true,
		PoolTypes: make([]entity.PoolCapability, 0, len(poolDrivers)),
	}
	for _, driver := range poolDrivers {
		poolCap := entity.PoolCapability{
			Name:      driver.name,
			Supported: driverSupported(driver, version, hypervisor),
		}

		options := entity.PoolOptions{
			Pool:   computedOptionGroup(driver.pool, "sourceFormatType"),
			Volume: computedOptionGroup(driver.volume, "targetFormatType"),
		}
		if options.Pool != nil || options.Volume != nil {
			poolCap.Options = &options
		}

		out.PoolTypes = append(out.PoolTypes, poolCap)
	}
	return out
}

// computedOptionGroup 将能力表中的选项定义转换为实体，空组返回 nil
func computedOptionGroup(opts *driverOptions, enumName string) *entity.PoolOptionGroup {
	if opts == nil {
		return nil
	}
	group := entity.PoolOptionGroup{DefaultFormat: opts.defaultFormat}
	if len(opts.formats) > 0 {
		group.Enums = map[string][]string{enumName: opts.formats}
	}
	if group.DefaultFormat == "" && len(group.Enums) == 0 {
		return nil
	}
	return &group
}

// driverSupported 判断一个驱动在当前版本和 hypervisor 下是否可用
func driverSupported(driver poolDriver, version uint64, hypervisor string) bool {
	if driver.minVersion != 0 && version < driver.minVersion {
		return false
	}

	compatible := driver.hypervisors
	if len(compatible) == 0 {
		compatible = allHypervisors
	}
	for _, h := range compatible {
		if h == hypervisor {
			return true
		}
	}
	return false
}
