package entity

// DomainState 虚拟机状态
type DomainState string

const (
	DomainStateRunning  DomainState = "running"  // 运行中（含 nostate/blocked）
	DomainStatePaused   DomainState = "paused"   // 挂起
	DomainStateShutdown DomainState = "shutdown" // 已关机（含 shutdown 中）
	DomainStateCrashed  DomainState = "crashed"  // 已崩溃
	DomainStateUnknown  DomainState = "unknown"  // 未知
)

// DomainStateFromCode 将 libvirt 的状态码映射为状态名
func DomainStateFromCode(code uint8) DomainState {
	switch code {
	case 0, 1, 2:
		return DomainStateRunning
	case 3:
		return DomainStatePaused
	case 4, 5:
		return DomainStateShutdown
	case 6:
		return DomainStateCrashed
	default:
		return DomainStateUnknown
	}
}

// Domain 虚拟机完整描述
// 状态与资源信息来自 libvirt 的 domain info，
// 设备与生命周期策略来自 domain XML
type Domain struct {
	Name       string            `json:"name"`        // 虚拟机名称
	UUID       string            `json:"uuid"`        // 虚拟机 UUID
	State      DomainState       `json:"state"`       // 状态
	CPU        uint16            `json:"cpu"`         // 虚拟 CPU 数量
	CPUTime    uint64            `json:"cputime"`     // CPU 时间（纳秒）
	Mem        uint64            `json:"mem"`         // 当前内存 (KiB)
	MaxMem     uint64            `json:"max_mem"`     // 最大内存 (KiB)
	OnPoweroff string            `json:"on_poweroff"` // 关机时的生命周期策略
	OnReboot   string            `json:"on_reboot"`   // 重启时的生命周期策略
	OnCrash    string            `json:"on_crash"`    // 崩溃时的生命周期策略
	Graphics   map[string]string `json:"graphics"`    // 图形控制台配置
	NICs       map[string]NIC    `json:"nics"`        // 网卡，按 MAC 地址索引
	Disks      []Disk            `json:"disks"`       // 磁盘列表
}

// NIC 虚拟机网卡
type NIC struct {
	Type        string            `json:"type"`                  // 接口类型 (bridge/network/user...)
	MAC         string            `json:"mac"`                   // MAC 地址
	Model       string            `json:"model,omitempty"`       // 网卡型号 (virtio/e1000...)
	Target      string            `json:"target,omitempty"`      // 宿主机侧设备名
	Driver      map[string]string `json:"driver,omitempty"`      // driver 元素属性
	Source      map[string]string `json:"source,omitempty"`      // source 元素属性
	Address     map[string]string `json:"address,omitempty"`     // address 元素属性
	Virtualport map[string]string `json:"virtualport,omitempty"` // virtualport 元素属性
}

// Disk 虚拟机磁盘
// qcow2 格式的磁盘会通过 qemu-img 补全镜像信息和 backing 链
type Disk struct {
	Name        string         `json:"name"`                   // 目标设备名 (vda/hda...)
	Device      string         `json:"device,omitempty"`       // 设备类型 (disk/cdrom...)
	File        string         `json:"file"`                   // 镜像路径
	FileFormat  string         `json:"file_format,omitempty"`  // 镜像格式
	DiskSize    int64          `json:"disk_size,omitempty"`    // 实际占用大小 (bytes)
	VirtualSize int64          `json:"virtual_size,omitempty"` // 虚拟大小 (bytes)
	ClusterSize int64          `json:"cluster_size,omitempty"` // 簇大小 (bytes)
	BackingFile *Disk          `json:"backing_file,omitempty"` // backing 层的完整描述
	Snapshots   []DiskSnapshot `json:"snapshots,omitempty"`    // 内部快照列表
}

// DiskSnapshot 磁盘内部快照
type DiskSnapshot struct {
	ID          string `json:"id"`
	Name        string `json:"tag"`
	VMStateSize int64  `json:"vmsize"`
	Date        int64  `json:"date"`    // Unix 时间戳（秒）
	VMClock     int64  `json:"vmclock"` // 虚拟机时钟（纳秒）
}
