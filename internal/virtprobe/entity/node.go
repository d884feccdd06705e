package entity

import "time"

// NodeInfo 节点硬件概要
// 字段与 libvirt node info 元组一一对应
type NodeInfo struct {
	CPUModel   string `json:"cpumodel"`   // CPU 架构型号
	PhyMemory  uint64 `json:"phymemory"`  // 物理内存 (MiB)
	CPUs       int32  `json:"cpus"`       // 逻辑 CPU 总数
	CPUMHz     int32  `json:"cpumhz"`     // CPU 主频 (MHz)
	NUMANodes  int32  `json:"numanodes"`  // NUMA 节点数
	Sockets    int32  `json:"sockets"`    // 每 NUMA 节点的插槽数
	CPUCores   int32  `json:"cpucores"`   // 每插槽核心数
	CPUThreads int32  `json:"cputhreads"` // 每核心线程数
}

// NodeVersion 节点版本信息
type NodeVersion struct {
	Hostname   string `json:"hostname"`    // hypervisor 主机名
	LibVersion string `json:"lib_version"` // libvirt 版本（x.y.z）
	RawVersion uint64 `json:"raw_version"` // libvirt 版本原始编码
}

// Node 已注册的节点
type Node struct {
	ID        string    `json:"id"`                 // node-{递增 ID}
	Name      string    `json:"name"`               // 节点名称
	URI       string    `json:"uri"`                // libvirt 连接 URI
	Username  string    `json:"username,omitempty"` // SSH 用户名（仅 qemu+ssh URI）
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Hypervisor 宿主机虚拟化类型探测结果
type Hypervisor struct {
	Detected string `json:"detected"` // kvm / xen，未检测到时为空
}
