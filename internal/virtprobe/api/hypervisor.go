package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jimyag/virtprobe/internal/virtprobe/entity"
	"github.com/jimyag/virtprobe/internal/virtprobe/service"
	"github.com/jimyag/virtprobe/pkg/ginx"
)

// HypervisorServiceInterface 定义虚拟化类型探测服务的接口
type HypervisorServiceInterface interface {
	Detect(ctx context.Context) (*entity.Hypervisor, error)
}

// HypervisorAPI 虚拟化类型探测 API
type HypervisorAPI struct {
	hypervisorService HypervisorServiceInterface
}

// NewHypervisorAPI 创建虚拟化类型探测 API
func NewHypervisorAPI(hypervisorService *service.HypervisorService) *HypervisorAPI {
	return &HypervisorAPI{
		hypervisorService: hypervisorService,
	}
}

// RegisterRoutes 注册路由
func (a *HypervisorAPI) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/get-hypervisor", ginx.AdaptNoArgs(a.GetHypervisor))
}

// GetHypervisor 探测宿主机的虚拟化类型
func (a *HypervisorAPI) GetHypervisor(ctx *gin.Context) (*entity.Hypervisor, error) {
	return a.hypervisorService.Detect(ctx.Request.Context())
}
