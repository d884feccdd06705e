package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/jimyag/virtprobe/internal/virtprobe/entity"
	"github.com/jimyag/virtprobe/internal/virtprobe/repository"
	"github.com/jimyag/virtprobe/internal/virtprobe/repository/model"
	"github.com/jimyag/virtprobe/pkg/apierror"
	"github.com/jimyag/virtprobe/pkg/idgen"
)

// RegistryService 节点注册服务
// 只管理连接端点，探测结果不落库
type RegistryService struct {
	nodes repository.NodeRepository
	idGen *idgen.Generator
}

// NewRegistryService 创建节点注册服务
func NewRegistryService(nodes repository.NodeRepository, idGen *idgen.Generator) *RegistryService {
	return &RegistryService{
		nodes: nodes,
		idGen: idGen,
	}
}

// RegisterNode 注册节点
func (s *RegistryService) RegisterNode(ctx context.Context, name, uri, username, password string) (*entity.Node, error) {
	if name == "" || uri == "" {
		return nil, apierror.WrapError(apierror.ErrInvalidParameter,
			"node name and uri are required", nil)
	}

	if _, err := s.nodes.GetByName(ctx, name); err == nil {
		return nil, apierror.WrapError(apierror.ErrInvalidParameter,
			"node "+name+" is already registered", nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.WrapError(apierror.ErrInternalFailure, "look up node "+name, err)
	}

	id, err := s.idGen.GenerateNodeID()
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalFailure, "generate node ID", err)
	}

	now := time.Now()
	node := &model.Node{
		ID:        id,
		Name:      name,
		URI:       uri,
		Username:  username,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.nodes.Create(ctx, node); err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalFailure, "register node "+name, err)
	}

	zerolog.Ctx(ctx).Info().Str("node", name).Str("uri", uri).Msg("Node registered")
	return nodeModelToEntity(node)
}

// ListNodes 列出所有已注册的节点
func (s *RegistryService) ListNodes(ctx context.Context) ([]*entity.Node, error) {
	models, err := s.nodes.List(ctx)
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalFailure, "list nodes", err)
	}

	nodes := make([]*entity.Node, 0, len(models))
	for _, m := range models {
		node, err := nodeModelToEntity(m)
		if err != nil {
			return nil, apierror.WrapError(apierror.ErrInternalFailure, "convert node "+m.Name, err)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// DescribeNode 查询单个已注册的节点
func (s *RegistryService) DescribeNode(ctx context.Context, name string) (*entity.Node, error) {
	m, err := s.nodes.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.WrapError(apierror.ErrNodeNotFound,
				"node "+name+" is not registered", err)
		}
		return nil, apierror.WrapError(apierror.ErrInternalFailure, "look up node "+name, err)
	}
	return nodeModelToEntity(m)
}

// UnregisterNode 注销节点
func (s *RegistryService) UnregisterNode(ctx context.Context, name string) error {
	if _, err := s.nodes.GetByName(ctx, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.WrapError(apierror.ErrNodeNotFound,
				"node "+name+" is not registered", err)
		}
		return apierror.WrapError(apierror.ErrInternalFailure, "look up node "+name, err)
	}

	if err := s.nodes.Delete(ctx, name); err != nil {
		return apierror.WrapError(apierror.ErrInternalFailure, "unregister node "+name, err)
	}

	zerolog.Ctx(ctx).Info().Str("node", name).Msg("Node unregistered")
	return nil
}
