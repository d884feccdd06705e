package libvirt

import (
	"fmt"
)

// NodeInfo hypervisor 节点硬件信息
// 字段顺序与 libvirt getInfo 元组一致
type NodeInfo struct {
	CPUModel string // raw[0] CPU 型号
	Memory   uint64 // raw[1] 物理内存（MiB）
	CPUs     int32  // raw[2] 逻辑 CPU 总数
	MHz      int32  // raw[3] CPU 频率
	Nodes    int32  // raw[4] NUMA 节点数
	Sockets  int32  // raw[5] CPU socket 数
	Cores    int32  // raw[6] 每 socket 核心数
	Threads  int32  // raw[7] 每核心线程数
}

// GetNodeInfo 返回节点硬件信息
func (c *Client) GetNodeInfo() (*NodeInfo, error) {
	model, memory, cpus, mhz, nodes, sockets, cores, threads, err := c.conn.NodeGetInfo()
	if err != nil {
		return nil, fmt.Errorf("get node info: %w", err)
	}

	return &NodeInfo{
		CPUModel: nodeModelString(model),
		Memory:   memory,
		CPUs:     cpus,
		MHz:      mhz,
		Nodes:    nodes,
		Sockets:  sockets,
		Cores:    cores,
		Threads:  threads,
	}, nil
}

// nodeModelString 将定长的 model 字节数组转换为字符串
func nodeModelString(model [32]int8) string {
	buf := make([]byte, 0, len(model))
	for _, b := range model {
		if b == 0 {
			break
		}
		buf = append(buf, byte(b))
	}
	return string(buf)
}
