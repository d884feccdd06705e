package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jimyag/virtprobe/internal/virtprobe/entity"
	"github.com/jimyag/virtprobe/internal/virtprobe/service"
	"github.com/jimyag/virtprobe/pkg/ginx"
)

// DomainServiceInterface 定义虚拟机探测服务的接口
type DomainServiceInterface interface {
	ListDomains(ctx context.Context, nodeName string, active, inactive bool) ([]string, error)
	DescribeDomain(ctx context.Context, nodeName, domainName string) (*entity.Domain, error)
	DescribeDomains(ctx context.Context, nodeName string) (map[string]*entity.Domain, error)
}

// DomainAPI 虚拟机探测 API
type DomainAPI struct {
	domainService DomainServiceInterface
}

// NewDomainAPI 创建虚拟机探测 API
func NewDomainAPI(domainService *service.DomainService) *DomainAPI {
	return &DomainAPI{
		domainService: domainService,
	}
}

// RegisterRoutes 注册路由
func (a *DomainAPI) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/list-domains", ginx.Adapt(a.ListDomains))
	r.POST("/describe-domain", ginx.Adapt(a.DescribeDomain))
	r.POST("/describe-domains", ginx.Adapt(a.DescribeDomains))
}

// ListDomainsRequest 列举虚拟机请求
// Active/Inactive 均未指定时默认都包含
type ListDomainsRequest struct {
	Node     string `json:"node"`     // 节点名称，为空时使用默认节点
	Active   *bool  `json:"active"`   // 是否包含运行中的虚拟机
	Inactive *bool  `json:"inactive"` // 是否包含已定义但未运行的虚拟机
}

// ListDomainsResponse 列举虚拟机响应
type ListDomainsResponse struct {
	Domains []string `json:"domains"`
}

// ListDomains 列举虚拟机名称
func (a *DomainAPI) ListDomains(ctx *gin.Context, req *ListDomainsRequest) (*ListDomainsResponse, error) {
	active := req.Active == nil || *req.Active
	inactive := req.Inactive == nil || *req.Inactive

	names, err := a.domainService.ListDomains(ctx.Request.Context(), req.Node, active, inactive)
	if err != nil {
		return nil, err
	}
	return &ListDomainsResponse{Domains: names}, nil
}

// DescribeDomainRequest 查询单个虚拟机请求
type DescribeDomainRequest struct {
	Node string `json:"node"`                    // 节点名称，为空时使用默认节点
	Name string `json:"name" binding:"required"` // 虚拟机名称
}

// DescribeDomain 查询单个虚拟机的完整描述
func (a *DomainAPI) DescribeDomain(ctx *gin.Context, req *DescribeDomainRequest) (*entity.Domain, error) {
	return a.domainService.DescribeDomain(ctx.Request.Context(), req.Node, req.Name)
}

// DescribeDomainsRequest 查询所有虚拟机请求
type DescribeDomainsRequest struct {
	Node string `json:"node"` // 节点名称，为空时使用默认节点
}

// DescribeDomainsResponse 查询所有虚拟机响应，按名称索引
type DescribeDomainsResponse struct {
	Domains map[string]*entity.Domain `json:"domains"`
}

// DescribeDomains 查询节点上所有虚拟机的完整描述
func (a *DomainAPI) DescribeDomains(ctx *gin.Context, req *DescribeDomainsRequest) (*DescribeDomainsResponse, error) {
	domains, err := a.domainService.DescribeDomains(ctx.Request.Context(), req.Node)
	if err != nil {
		return nil, err
	}
	return &DescribeDomainsResponse{Domains: domains}, nil
}
