package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jimyag/virtprobe/internal/virtprobe/config"
	"github.com/jimyag/virtprobe/internal/virtprobe/entity"
	"github.com/jimyag/virtprobe/pkg/hostcmd"
)

// HypervisorService 宿主机虚拟化类型探测服务
type HypervisorService struct {
	runner hostcmd.HostRunner
	grains config.Grains
}

// NewHypervisorService 创建虚拟化类型探测服务
func NewHypervisorService(runner hostcmd.HostRunner, grains config.Grains) *HypervisorService {
	return &HypervisorService{
		runner: runner,
		grains: grains,
	}
}

// Detect 探测宿主机的虚拟化类型
// 依次检查 kvm 和 xen，都不匹配时 Detected 为空
func (s *HypervisorService) Detect(ctx context.Context) (*entity.Hypervisor, error) {
	if s.isKVM(ctx) {
		return &entity.Hypervisor{Detected: "kvm"}, nil
	}
	if s.isXen(ctx) {
		return &entity.Hypervisor{Detected: "xen"}, nil
	}
	return &entity.Hypervisor{}, nil
}

// isKVM 检查宿主机是否运行 KVM
// 条件：加载了 kvm_* 内核模块，且 libvirtd 进程在运行
func (s *HypervisorService) isKVM(ctx context.Context) bool {
	if !s.hasModulePrefix(ctx, "kvm_") {
		return false
	}
	return s.libvirtdRunning(ctx)
}

// isXen 检查宿主机是否是 Xen Dom0
// 条件：virtual_subtype 为 "Xen Dom0"，加载了 xen_* 内核模块，
// 且 libvirtd 进程在运行
func (s *HypervisorService) isXen(ctx context.Context) bool {
	if s.grains.VirtualSubtype != "Xen Dom0" {
		return false
	}
	if !s.hasModulePrefix(ctx, "xen_") {
		return false
	}
	return s.libvirtdRunning(ctx)
}

// hasModulePrefix 检查是否加载了以 prefix 开头的内核模块
// 模块列表不可读时视为未加载
func (s *HypervisorService) hasModulePrefix(ctx context.Context, prefix string) bool {
	modules, err := s.runner.KernelModules()
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("Failed to read kernel modules")
		return false
	}
	for _, module := range modules {
		if strings.HasPrefix(module, prefix) {
			return true
		}
	}
	return false
}

// libvirtdRunning 检查 libvirtd 进程是否在运行
func (s *HypervisorService) libvirtdRunning(ctx context.Context) bool {
	output, err := s.runner.ProcessList(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("Failed to list processes")
		return false
	}
	return strings.Contains(output, "libvirtd")
}
