package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jimyag/virtprobe/internal/virtprobe/entity"
	"github.com/jimyag/virtprobe/internal/virtprobe/service"
	"github.com/jimyag/virtprobe/pkg/ginx"
)

// RegistryServiceInterface 定义节点注册服务的接口
type RegistryServiceInterface interface {
	RegisterNode(ctx context.Context, name, uri, username, password string) (*entity.Node, error)
	ListNodes(ctx context.Context) ([]*entity.Node, error)
	DescribeNode(ctx context.Context, name string) (*entity.Node, error)
	UnregisterNode(ctx context.Context, name string) error
}

// RegistryAPI 节点注册 API
type RegistryAPI struct {
	registryService RegistryServiceInterface
}

// NewRegistryAPI 创建节点注册 API
func NewRegistryAPI(registryService *service.RegistryService) *RegistryAPI {
	return &RegistryAPI{
		registryService: registryService,
	}
}

// RegisterRoutes 注册路由
func (a *RegistryAPI) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/register-node", ginx.Adapt(a.RegisterNode))
	r.POST("/list-nodes", ginx.Adapt(a.ListNodes))
	r.POST("/describe-node", ginx.Adapt(a.DescribeNode))
	r.POST("/unregister-node", ginx.AdaptNoResp(a.UnregisterNode))
}

// RegisterNodeRequest 注册节点请求
type RegisterNodeRequest struct {
	Name     string `json:"name" binding:"required"` // 节点名称
	URI      string `json:"uri" binding:"required"`  // libvirt 连接 URI
	Username string `json:"username"`                // SSH 用户名（仅 qemu+ssh URI）
	Password string `json:"password"`                // SSH 密码（仅 qemu+ssh URI）
}

// RegisterNode 注册节点
func (a *RegistryAPI) RegisterNode(ctx *gin.Context, req *RegisterNodeRequest) (*entity.Node, error) {
	return a.registryService.RegisterNode(ctx.Request.Context(),
		req.Name, req.URI, req.Username, req.Password)
}

// ListNodesRequest 列举节点请求
type ListNodesRequest struct{}

// ListNodesResponse 列举节点响应
type ListNodesResponse struct {
	Nodes []*entity.Node `json:"nodes"`
}

// ListNodes 列举已注册的节点
func (a *RegistryAPI) ListNodes(ctx *gin.Context, _ *ListNodesRequest) (*ListNodesResponse, error) {
	nodes, err := a.registryService.ListNodes(ctx.Request.Context())
	if err != nil {
		return nil, err
	}
	return &ListNodesResponse{Nodes: nodes}, nil
}

// DescribeNodeRequest 查询节点请求
type DescribeNodeRequest struct {
	Name string `json:"name" binding:"required"` // 节点名称
}

// DescribeNode 查询单个已注册的节点
func (a *RegistryAPI) DescribeNode(ctx *gin.Context, req *DescribeNodeRequest) (*entity.Node, error) {
	return a.registryService.DescribeNode(ctx.Request.Context(), req.Name)
}

// UnregisterNodeRequest 注销节点请求
type UnregisterNodeRequest struct {
	Name string `json:"name" binding:"required"` // 节点名称
}

// UnregisterNode 注销节点
func (a *RegistryAPI) UnregisterNode(ctx *gin.Context, req *UnregisterNodeRequest) error {
	return a.registryService.UnregisterNode(ctx.Request.Context(), req.Name)
}
