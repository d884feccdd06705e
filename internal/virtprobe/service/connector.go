// Package service 提供业务逻辑层的服务实现
package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/jimyag/virtprobe/internal/virtprobe/repository"
	"github.com/jimyag/virtprobe/pkg/apierror"
	"github.com/jimyag/virtprobe/pkg/libvirt"
)

// connectTimeout 连接握手超时时间
const connectTimeout = 5 * time.Second

// dialFunc 建立 libvirt 连接，可在测试中替换
type dialFunc func(opts libvirt.ConnectOptions) (libvirt.LibvirtClient, error)

// defaultDial 使用真实的 libvirt 连接
func defaultDial(opts libvirt.ConnectOptions) (libvirt.LibvirtClient, error) {
	return libvirt.Connect(opts)
}

// Connector 按节点名称建立 libvirt 连接
// 每次 Open 都建立一条新连接，调用方用完必须 Close
type Connector struct {
	nodes      repository.NodeRepository
	defaultURI string
	dial       dialFunc
}

// NewConnector 创建连接器
// nodes 为 nil 时只支持默认 URI
func NewConnector(nodes repository.NodeRepository, defaultURI string) *Connector {
	return &Connector{
		nodes:      nodes,
		defaultURI: defaultURI,
		dial:       defaultDial,
	}
}

// Open 建立到指定节点的 libvirt 连接
// nodeName 为空时使用默认 URI，否则从注册库查找节点端点
func (c *Connector) Open(ctx context.Context, nodeName string) (libvirt.LibvirtClient, error) {
	opts := libvirt.ConnectOptions{
		URI:     c.defaultURI,
		Timeout: connectTimeout,
	}

	if nodeName != "" {
		if c.nodes == nil {
			return nil, apierror.WrapError(apierror.ErrNodeNotFound,
				"node registry is not configured", nil)
		}
		node, err := c.nodes.GetByName(ctx, nodeName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.WrapError(apierror.ErrNodeNotFound,
					"node "+nodeName+" is not registered", err)
			}
			return nil, apierror.WrapError(apierror.ErrInternalFailure,
				"look up node "+nodeName, err)
		}
		opts.URI = node.URI
		opts.Username = node.Username
		opts.Password = node.Password
	}

	client, err := c.dial(opts)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("uri", opts.URI).Msg("Failed to connect to libvirt")
		return nil, apierror.WrapError(apierror.ErrConnectionFailure,
			"failed to open a connection to the hypervisor at "+opts.URI, err)
	}
	return client, nil
}
