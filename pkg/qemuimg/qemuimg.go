package qemuimg

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"
)

// Client 封装 qemu-img 命令行工具的只读查询操作
type Client struct {
	qemuImgPath string
	timeout     time.Duration
}

// New 创建新的 qemuimg client
// qemuImgPath 是 qemu-img 的路径，如果为空则使用默认的 "qemu-img"
func New(qemuImgPath string) *Client {
	if qemuImgPath == "" {
		qemuImgPath = "qemu-img"
	}
	return &Client{
		qemuImgPath: qemuImgPath,
		timeout:     30 * time.Second, // info 查询通常很快，超时保护挂死的存储后端
	}
}

// WithTimeout 设置操作超时时间
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	return c
}

// ImageSnapshot 镜像内部快照信息（qemu-img info 输出中的 snapshots 条目）
type ImageSnapshot struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	VMStateSize int64  `json:"vm-state-size"`
	DateSec     int64  `json:"date-sec"`
	DateNsec    int64  `json:"date-nsec"`
	VMClockSec  int64  `json:"vm-clock-sec"`
	VMClockNsec int64  `json:"vm-clock-nsec"`
}

// ImageInfo 单个镜像层的信息（qemu-img info --output=json 的输出结构）
type ImageInfo struct {
	Filename        string          `json:"filename"`
	Format          string          `json:"format"`
	ActualSize      int64           `json:"actual-size"`
	VirtualSize     int64           `json:"virtual-size"`
	ClusterSize     int64           `json:"cluster-size,omitempty"`
	BackingFilename string          `json:"backing-filename,omitempty"`
	Snapshots       []ImageSnapshot `json:"snapshots,omitempty"`
}

// InfoChain 查询镜像及其完整 backing chain 的信息
// 使用 -U 避免与正在运行的 VM 争抢镜像锁
// 返回的切片按链的顺序排列：第一个元素是镜像本身，之后依次是各级 backing file
//
// 参数：
//   - imagePath: 镜像文件路径
//
// 示例：
//
//	layers, err := client.InfoChain(ctx, "/path/to/overlay.qcow2")
func (c *Client) InfoChain(ctx context.Context, imagePath string) ([]ImageInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.qemuImgPath, "info",
		"-U",
		"--output=json",
		"--backing-chain",
		imagePath,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to get image info for %s: %w", imagePath, err)
	}

	layers, err := ParseChain(output)
	if err != nil {
		return nil, fmt.Errorf("failed to parse qemu-img info output for %s: %w", imagePath, err)
	}

	return layers, nil
}

// ParseChain 解析 qemu-img info --output=json --backing-chain 的输出
// 输出是 JSON 数组，每个元素对应链上的一层
func ParseChain(output []byte) ([]ImageInfo, error) {
	var layers []ImageInfo
	if err := json.Unmarshal(output, &layers); err != nil {
		return nil, err
	}
	if len(layers) == 0 {
		return nil, fmt.Errorf("no image layers in output")
	}
	return layers, nil
}

// Info 查询单个镜像的信息（不含 backing chain）
//
// 参数：
//   - imagePath: 镜像文件路径
func (c *Client) Info(ctx context.Context, imagePath string) (*ImageInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.qemuImgPath, "info",
		"-U",
		"--output=json",
		imagePath,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to get image info for %s: %w", imagePath, err)
	}

	var info ImageInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("failed to parse qemu-img info output for %s: %w", imagePath, err)
	}

	return &info, nil
}
