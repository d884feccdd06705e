package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jimyag/virtprobe/internal/virtprobe/entity"
	"github.com/jimyag/virtprobe/internal/virtprobe/service"
	"github.com/jimyag/virtprobe/pkg/ginx"
)

// PoolServiceInterface 定义存储池能力探测服务的接口
type PoolServiceInterface interface {
	Capabilities(ctx context.Context, nodeName string) (*entity.PoolCapabilities, error)
}

// PoolAPI 存储池能力探测 API
type PoolAPI struct {
	poolService PoolServiceInterface
}

// NewPoolAPI 创建存储池能力探测 API
func NewPoolAPI(poolService *service.PoolService) *PoolAPI {
	return &PoolAPI{
		poolService: poolService,
	}
}

// RegisterRoutes 注册路由
func (a *PoolAPI) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/pool-capabilities", ginx.Adapt(a.PoolCapabilities))
}

// PoolCapabilitiesRequest 查询存储池能力请求
type PoolCapabilitiesRequest struct {
	Node string `json:"node"` // 节点名称，为空时使用默认节点
}

// PoolCapabilities 查询节点支持的存储池类型及其配置项
func (a *PoolAPI) PoolCapabilities(ctx *gin.Context, req *PoolCapabilitiesRequest) (*entity.PoolCapabilities, error) {
	return a.poolService.Capabilities(ctx.Request.Context(), req.Node)
}
