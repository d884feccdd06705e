package hostcmd

import "context"

// HostRunner 宿主机探测接口
type HostRunner interface {
	// KernelModules 返回已加载的内核模块名列表
	KernelModules() ([]string, error)
	// ProcessList 返回进程列表命令的输出
	ProcessList(ctx context.Context) (string, error)
}

var _ HostRunner = (*Runner)(nil)
