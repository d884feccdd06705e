package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// LibvirtURI 是默认的 libvirt 连接 URI
	// 支持以下格式：
	// - qemu:///system (本地系统连接，默认)
	// - qemu+ssh://user@host/system (SSH 远程连接)
	// - qemu+tcp://host/system (TCP 远程连接)
	// 可以通过环境变量 LIBVIRT_URI 配置
	LibvirtURI string

	// DataDir 是数据目录，用于存储节点注册库
	// 可以通过环境变量 VIRTPROBE_DATA_DIR 配置
	// 默认：~/.local/share/virtprobe
	DataDir string

	// QemuImgPath 是 qemu-img 可执行文件路径
	// 可以通过环境变量 VIRTPROBE_QEMU_IMG 配置
	QemuImgPath string

	// GrainsPath 是宿主机 grains 文件路径
	// 可以通过环境变量 VIRTPROBE_GRAINS 配置，为空时使用内置默认值
	GrainsPath string

	Address string

	Grains Grains
}

// Grains 宿主机侧的静态事实，用于虚拟化类型探测
type Grains struct {
	// PS 进程列表命令
	PS string `yaml:"ps"`
	// VirtualSubtype 虚拟化子类型，Xen Dom0 上为 "Xen Dom0"
	VirtualSubtype string `yaml:"virtual_subtype"`
}

func New() (*Config, error) {
	cfg := &Config{
		LibvirtURI:  getLibvirtURI(),
		DataDir:     getDataDir(),
		QemuImgPath: getQemuImgPath(),
		GrainsPath:  os.Getenv("VIRTPROBE_GRAINS"),
		Address:     getAddress(),
	}

	grains, err := loadGrains(cfg.GrainsPath)
	if err != nil {
		return nil, err
	}
	cfg.Grains = grains

	return cfg, nil
}

// loadGrains 加载 grains 文件
// path 为空时返回默认值
func loadGrains(path string) (Grains, error) {
	grains := Grains{PS: "ps -efH"}
	if path == "" {
		return grains, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return grains, fmt.Errorf("read grains file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &grains); err != nil {
		return grains, fmt.Errorf("parse grains file %s: %w", path, err)
	}
	if grains.PS == "" {
		grains.PS = "ps -efH"
	}
	return grains, nil
}

// getLibvirtURI 获取 libvirt URI，优先使用环境变量
func getLibvirtURI() string {
	// 1. 优先使用环境变量 LIBVIRT_URI
	if uri := os.Getenv("LIBVIRT_URI"); uri != "" {
		return uri
	}

	// 2. 尝试使用 VIRTPROBE_LIBVIRT_URI
	if uri := os.Getenv("VIRTPROBE_LIBVIRT_URI"); uri != "" {
		return uri
	}

	// 3. 默认使用本地系统连接
	return "qemu:///system"
}

// getDataDir 获取数据目录，优先使用环境变量
func getDataDir() string {
	// 1. 优先使用环境变量 VIRTPROBE_DATA_DIR
	if dir := os.Getenv("VIRTPROBE_DATA_DIR"); dir != "" {
		return dir
	}

	// 2. 使用用户主目录下的 .local/share/virtprobe
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "virtprobe")
	}

	// 3. 如果无法获取主目录，使用当前目录下的 data
	return filepath.Join(".", "data")
}

// getQemuImgPath 获取 qemu-img 路径，优先使用环境变量 VIRTPROBE_QEMU_IMG
func getQemuImgPath() string {
	if path := os.Getenv("VIRTPROBE_QEMU_IMG"); path != "" {
		return path
	}

	return "qemu-img"
}

// getAddress 获取绑定地址，优先使用环境变量 VIRTPROBE_ADDRESS
func getAddress() string {
	if addr := os.Getenv("VIRTPROBE_ADDRESS"); addr != "" {
		return addr
	}

	return "0.0.0.0:7778"
}
