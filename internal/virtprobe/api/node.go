package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jimyag/virtprobe/internal/virtprobe/entity"
	"github.com/jimyag/virtprobe/internal/virtprobe/service"
	"github.com/jimyag/virtprobe/pkg/ginx"
)

// NodeServiceInterface 定义节点探测服务的接口
type NodeServiceInterface interface {
	Info(ctx context.Context, nodeName string) (*entity.NodeInfo, error)
	Version(ctx context.Context, nodeName string) (*entity.NodeVersion, error)
}

// NodeAPI 节点探测 API
type NodeAPI struct {
	nodeService NodeServiceInterface
}

// NewNodeAPI 创建节点探测 API
func NewNodeAPI(nodeService *service.NodeService) *NodeAPI {
	return &NodeAPI{
		nodeService: nodeService,
	}
}

// RegisterRoutes 注册路由
func (a *NodeAPI) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/node-info", ginx.Adapt(a.NodeInfo))
	r.POST("/describe-node-version", ginx.Adapt(a.DescribeNodeVersion))
}

// NodeInfoRequest 查询节点硬件概要请求
type NodeInfoRequest struct {
	Node string `json:"node"` // 节点名称，为空时使用默认节点
}

// NodeInfo 查询节点硬件概要
func (a *NodeAPI) NodeInfo(ctx *gin.Context, req *NodeInfoRequest) (*entity.NodeInfo, error) {
	return a.nodeService.Info(ctx.Request.Context(), req.Node)
}

// DescribeNodeVersionRequest 查询节点版本请求
type DescribeNodeVersionRequest struct {
	Node string `json:"node"` // 节点名称，为空时使用默认节点
}

// DescribeNodeVersion 查询节点主机名和 libvirt 版本
func (a *NodeAPI) DescribeNodeVersion(ctx *gin.Context, req *DescribeNodeVersionRequest) (*entity.NodeVersion, error) {
	return a.nodeService.Version(ctx.Request.Context(), req.Node)
}
