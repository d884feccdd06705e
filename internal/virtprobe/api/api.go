// Package api 提供 HTTP API 层
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jimyag/virtprobe/internal/virtprobe/service"
	"github.com/jimyag/virtprobe/pkg/ginx"
	"github.com/jimyag/virtprobe/pkg/idgen"
)

type API struct {
	engine *gin.Engine
	server *http.Server

	domain     *DomainAPI
	node       *NodeAPI
	registry   *RegistryAPI
	pool       *PoolAPI
	hypervisor *HypervisorAPI
}

func New(
	address string,
	domainService *service.DomainService,
	nodeService *service.NodeService,
	poolService *service.PoolService,
	hypervisorService *service.HypervisorService,
	registryService *service.RegistryService,
) (*API, error) {
	engine := gin.Default()
	engine.Use(ginx.RequestID(func() string {
		id, err := idgen.GenerateRequestID()
		if err != nil {
			return ""
		}
		return id
	}))

	api := &API{
		engine:     engine,
		domain:     NewDomainAPI(domainService),
		node:       NewNodeAPI(nodeService),
		registry:   NewRegistryAPI(registryService),
		pool:       NewPoolAPI(poolService),
		hypervisor: NewHypervisorAPI(hypervisorService),
	}

	group := engine.Group("/api")
	api.domain.RegisterRoutes(group)
	api.node.RegisterRoutes(group)
	api.registry.RegisterRoutes(group)
	api.pool.RegisterRoutes(group)
	api.hypervisor.RegisterRoutes(group)

	api.server = &http.Server{
		Addr:    address,
		Handler: engine,
	}
	return api, nil
}

// Run 启动 HTTP 服务，阻塞直到服务退出
func (a *API) Run(ctx context.Context) error {
	zerolog.Ctx(ctx).Info().Str("address", a.server.Addr).Msg("API server listening")
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown 优雅关闭 HTTP 服务
func (a *API) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

// Name 实现 grace.Grace 接口
func (a *API) Name() string {
	return "virtprobe API"
}
