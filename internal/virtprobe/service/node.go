package service

import (
	"context"

	"github.com/jimyag/virtprobe/internal/virtprobe/entity"
	"github.com/jimyag/virtprobe/pkg/apierror"
	"github.com/jimyag/virtprobe/pkg/libvirt"
)

// NodeService 节点硬件探测服务
// 纯粹调用 libvirt API，不存储探测结果
type NodeService struct {
	connector *Connector
}

// NewNodeService 创建节点探测服务
func NewNodeService(connector *Connector) *NodeService {
	return &NodeService{
		connector: connector,
	}
}

// Info 查询节点硬件概要
func (s *NodeService) Info(ctx context.Context, nodeName string) (*entity.NodeInfo, error) {
	client, err := s.connector.Open(ctx, nodeName)
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Close() }()

	raw, err := client.GetNodeInfo()
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalFailure, "get node info", err)
	}

	return &entity.NodeInfo{
		CPUModel:   raw.CPUModel,
		PhyMemory:  raw.Memory,
		CPUs:       raw.CPUs,
		CPUMHz:     raw.MHz,
		NUMANodes:  raw.Nodes,
		Sockets:    raw.Sockets,
		CPUCores:   raw.Cores,
		CPUThreads: raw.Threads,
	}, nil
}

// Version 查询节点的主机名和 libvirt 版本
func (s *NodeService) Version(ctx context.Context, nodeName string) (*entity.NodeVersion, error) {
	client, err := s.connector.Open(ctx, nodeName)
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Close() }()

	hostname, err := client.GetHostname()
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalFailure, "get hostname", err)
	}

	version, err := client.GetLibVersion()
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalFailure, "get libvirt version", err)
	}

	return &entity.NodeVersion{
		Hostname:   hostname,
		LibVersion: libvirt.FormatVersion(version),
		RawVersion: version,
	}, nil
}
