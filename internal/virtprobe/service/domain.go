package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/jimyag/virtprobe/internal/virtprobe/entity"
	"github.com/jimyag/virtprobe/pkg/apierror"
	"github.com/jimyag/virtprobe/pkg/libvirt"
	"github.com/jimyag/virtprobe/pkg/qemuimg"
)

// diskFileMissing 镜像无法被 qemu-img 检查时的占位值
const diskFileMissing = "Does not exist"

// DomainService 虚拟机探测服务
// 纯粹调用 libvirt API，不存储探测结果
type DomainService struct {
	connector *Connector
	qemuImg   qemuimg.QemuImgClient
}

// NewDomainService 创建虚拟机探测服务
func NewDomainService(connector *Connector, qemuImg qemuimg.QemuImgClient) *DomainService {
	return &DomainService{
		connector: connector,
		qemuImg:   qemuImg,
	}
}

// ListDomains 列举虚拟机名称
// active/inactive 控制是否包含运行中和已定义但未运行的虚拟机
// 节点上没有任何虚拟机时返回 NoDomainsPresent，与过滤条件无关
func (s *DomainService) ListDomains(ctx context.Context, nodeName string, active, inactive bool) ([]string, error) {
	client, err := s.connector.Open(ctx, nodeName)
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Close() }()

	activeNames, err := client.ListActiveDomainNames()
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalFailure, "list active domains", err)
	}
	definedNames, err := client.ListDefinedDomainNames()
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalFailure, "list defined domains", err)
	}
	if len(activeNames)+len(definedNames) == 0 {
		return nil, apierror.WrapError(apierror.ErrNoDomainsPresent,
			"no domains are present on this hypervisor", nil)
	}

	names := []string{}
	if active {
		names = append(names, activeNames...)
	}
	if inactive {
		names = append(names, definedNames...)
	}
	return names, nil
}

// DescribeDomain 查询单个虚拟机的完整描述
// 节点上没有任何虚拟机时返回 NoDomainsPresent 而不是 DomainNotFound
func (s *DomainService) DescribeDomain(ctx context.Context, nodeName, domainName string) (*entity.Domain, error) {
	client, err := s.connector.Open(ctx, nodeName)
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Close() }()

	names, err := s.allDomainNames(client)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, apierror.WrapError(apierror.ErrNoDomainsPresent,
			"no domains are present on this hypervisor", nil)
	}

	return s.describeDomain(ctx, client, domainName)
}

// DescribeDomains 查询节点上所有虚拟机的完整描述，按名称索引
// 节点上没有任何虚拟机时返回 NoDomainsPresent
func (s *DomainService) DescribeDomains(ctx context.Context, nodeName string) (map[string]*entity.Domain, error) {
	client, err := s.connector.Open(ctx, nodeName)
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Close() }()

	names, err := s.allDomainNames(client)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, apierror.WrapError(apierror.ErrNoDomainsPresent,
			"no domains are present on this hypervisor", nil)
	}

	domains := make(map[string]*entity.Domain, len(names))
	for _, name := range names {
		domain, err := s.describeDomain(ctx, client, name)
		if err != nil {
			return nil, err
		}
		domains[name] = domain
	}
	return domains, nil
}

// allDomainNames 返回活跃和已定义的全部虚拟机名称
func (s *DomainService) allDomainNames(client libvirt.LibvirtClient) ([]string, error) {
	activeNames, err := client.ListActiveDomainNames()
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalFailure, "list active domains", err)
	}
	definedNames, err := client.ListDefinedDomainNames()
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalFailure, "list defined domains", err)
	}
	names := append(activeNames, definedNames...)
	sort.Strings(names)
	return names, nil
}

// describeDomain 在已建立的连接上构建单个虚拟机的描述
func (s *DomainService) describeDomain(ctx context.Context, client libvirt.LibvirtClient, name string) (*entity.Domain, error) {
	dom, err := client.LookupDomainByName(name)
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrDomainNotFound,
			"domain "+name+" not found", err)
	}

	info, err := client.GetDomainInfo(dom)
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalFailure,
			"get info for domain "+name, err)
	}

	domXML, err := client.GetDomainXML(dom)
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrParseFailure,
			"get XML description for domain "+name, err)
	}

	return &entity.Domain{
		Name:       name,
		UUID:       domXML.UUID,
		State:      entity.DomainStateFromCode(info.State),
		CPU:        info.NrVirtCPU,
		CPUTime:    info.CPUTime,
		Mem:        info.Memory,
		MaxMem:     info.MaxMem,
		OnPoweroff: domXML.OnPoweroff,
		OnReboot:   domXML.OnReboot,
		OnCrash:    domXML.OnCrash,
		Graphics:   extractGraphics(domXML),
		NICs:       extractNICs(domXML),
		Disks:      s.extractDisks(ctx, domXML),
	}, nil
}

// extractGraphics 提取图形控制台配置
// 没有配置的字段保留 "None" 占位值
func extractGraphics(domXML *libvirt.DomainXML) map[string]string {
	out := map[string]string{
		"type":     "None",
		"port":     "None",
		"listen":   "None",
		"keymap":   "None",
		"autoport": "None",
	}
	if len(domXML.Devices.Graphics) == 0 {
		return out
	}
	// 只取第一个图形设备，合并其全部属性
	for key, value := range domXML.Devices.Graphics[0].Map() {
		out[key] = value
	}
	return out
}

// extractNICs 提取网卡配置，按 MAC 地址索引
// 没有 MAC 地址的网卡会被丢弃
func extractNICs(domXML *libvirt.DomainXML) map[string]entity.NIC {
	nics := make(map[string]entity.NIC)
	for _, iface := range domXML.Devices.Interfaces {
		if iface.MAC == nil || iface.MAC.Address == "" {
			continue
		}
		nic := entity.NIC{
			Type:        iface.Type,
			MAC:         iface.MAC.Address,
			Driver:      iface.Driver.Map(),
			Source:      iface.Source.Map(),
			Address:     iface.Address.Map(),
			Virtualport: iface.Virtualport.Map(),
		}
		if iface.Model != nil {
			nic.Model = iface.Model.Type
		}
		if iface.Target != nil {
			nic.Target = iface.Target.Dev
		}
		nics[nic.MAC] = nic
	}
	return nics
}

// extractDisks 提取磁盘配置
// qcow2 格式的磁盘通过 qemu-img 补全镜像信息和 backing 链，
// qemu-img 检查失败不会使整个请求失败
func (s *DomainService) extractDisks(ctx context.Context, domXML *libvirt.DomainXML) []entity.Disk {
	logger := zerolog.Ctx(ctx)

	disks := make([]entity.Disk, 0, len(domXML.Devices.Disks))
	for _, d := range domXML.Devices.Disks {
		// 没有 target 或者推导不出源路径的磁盘（如未插介质的 cdrom）直接跳过
		path := diskSourcePath(d.Source)
		if d.Target == nil || path == "" {
			continue
		}
		disk := entity.Disk{
			Name:   d.Target.Dev,
			Device: d.Device,
			File:   path,
		}
		if d.Driver != nil {
			disk.FileFormat = d.Driver.Type
		}

		// 只有本地 qcow2 镜像才能用 qemu-img 检查
		if disk.FileFormat == "qcow2" && d.Source != nil && d.Source.File != "" {
			chain, err := s.qemuImg.InfoChain(ctx, d.Source.File)
			if err != nil {
				logger.Warn().Err(err).Str("image", d.Source.File).
					Msg("Failed to inspect disk image, marking as missing")
				disk.File = diskFileMissing
			} else {
				mergeImageChain(&disk, chain)
			}
		}

		disks = append(disks, disk)
	}
	return disks
}

// diskSourcePath 计算磁盘源路径
// 优先级：file > dev > protocol:name
func diskSourcePath(source *libvirt.DomainDiskSource) string {
	if source == nil {
		return ""
	}
	if source.File != "" {
		return source.File
	}
	if source.Dev != "" {
		return source.Dev
	}
	if source.Protocol != "" {
		return source.Protocol + ":" + source.Name
	}
	return ""
}

// mergeImageChain 将 qemu-img 的检查结果合并进磁盘描述
// chain 的第一层是镜像本身，后续层按 backing 引用逐层链接
func mergeImageChain(disk *entity.Disk, chain []qemuimg.ImageInfo) {
	if len(chain) == 0 {
		return
	}

	layers := make([]*entity.Disk, len(chain))
	for i, info := range chain {
		layers[i] = imageInfoToDisk(info)
	}

	// 将每层的 backing 引用替换为对应层的完整描述
	for i, info := range chain {
		if info.BackingFilename == "" {
			continue
		}
		for j, candidate := range chain {
			if i != j && candidate.Filename == info.BackingFilename {
				layers[i].BackingFile = layers[j]
				break
			}
		}
	}

	top := layers[0]
	disk.File = top.File
	disk.FileFormat = top.FileFormat
	disk.DiskSize = top.DiskSize
	disk.VirtualSize = top.VirtualSize
	disk.ClusterSize = top.ClusterSize
	disk.BackingFile = top.BackingFile
	disk.Snapshots = top.Snapshots
}

// imageInfoToDisk 将单层镜像信息转换为磁盘描述
func imageInfoToDisk(info qemuimg.ImageInfo) *entity.Disk {
	disk := &entity.Disk{
		File:        info.Filename,
		FileFormat:  info.Format,
		DiskSize:    info.ActualSize,
		VirtualSize: info.VirtualSize,
		ClusterSize: info.ClusterSize,
	}
	for _, snap := range info.Snapshots {
		disk.Snapshots = append(disk.Snapshots, entity.DiskSnapshot{
			ID:          snap.ID,
			Name:        snap.Name,
			VMStateSize: snap.VMStateSize,
			Date:        snap.DateSec,
			VMClock:     snap.VMClockSec*1e9 + snap.VMClockNsec,
		})
	}
	return disk
}
