package hostcmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

const (
	defaultModulesPath = "/proc/modules"
	defaultPsCommand   = "ps -efH"
	defaultTimeout     = 10 * time.Second
)

// Runner 提供宿主机侧的探测能力：内核模块列表和进程列表
type Runner struct {
	modulesPath string
	psCommand   string
	timeout     time.Duration
}

// Option Runner 可选配置
type Option func(*Runner)

// WithModulesPath 指定内核模块列表文件路径
func WithModulesPath(path string) Option {
	return func(r *Runner) {
		r.modulesPath = path
	}
}

// WithPsCommand 指定进程列表命令
func WithPsCommand(cmd string) Option {
	return func(r *Runner) {
		r.psCommand = cmd
	}
}

// WithTimeout 指定命令超时时间
func WithTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		r.timeout = timeout
	}
}

// New 创建 Runner
func New(opts ...Option) *Runner {
	r := &Runner{
		modulesPath: defaultModulesPath,
		psCommand:   defaultPsCommand,
		timeout:     defaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// KernelModules 返回已加载的内核模块名列表
// 每行第一个字段是模块名
func (r *Runner) KernelModules() ([]string, error) {
	data, err := os.ReadFile(r.modulesPath)
	if err != nil {
		return nil, fmt.Errorf("read kernel modules from %s: %w", r.modulesPath, err)
	}

	var modules []string
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		modules = append(modules, fields[0])
	}
	return modules, nil
}

// ProcessList 执行进程列表命令并返回完整输出
func (r *Runner) ProcessList(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	fields := strings.Fields(r.psCommand)
	if len(fields) == 0 {
		return "", fmt.Errorf("empty process list command")
	}

	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("run %q: %w", r.psCommand, err)
	}
	return string(output), nil
}
