package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jimyag/virtprobe/internal/virtprobe/repository/model"
)

// NodeRepository 节点仓库接口
type NodeRepository interface {
	Create(ctx context.Context, node *model.Node) error
	GetByName(ctx context.Context, name string) (*model.Node, error)
	List(ctx context.Context) ([]*model.Node, error)
	Update(ctx context.Context, node *model.Node) error
	Delete(ctx context.Context, name string) error
}

type nodeRepository struct {
	db *gorm.DB
}

// NewNodeRepository 创建节点仓库
func NewNodeRepository(db *gorm.DB) NodeRepository {
	return &nodeRepository{db: db}
}

// Create 创建节点
func (r *nodeRepository) Create(ctx context.Context, node *model.Node) error {
	return r.db.WithContext(ctx).Create(node).Error
}

// GetByName 根据名称获取节点
func (r *nodeRepository) GetByName(ctx context.Context, name string) (*model.Node, error) {
	var node model.Node
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&node).Error; err != nil {
		return nil, err
	}
	return &node, nil
}

// List 列出所有节点
func (r *nodeRepository) List(ctx context.Context) ([]*model.Node, error) {
	var nodes []*model.Node
	if err := r.db.WithContext(ctx).Order("created_at").Find(&nodes).Error; err != nil {
		return nil, err
	}
	return nodes, nil
}

// Update 更新节点
func (r *nodeRepository) Update(ctx context.Context, node *model.Node) error {
	return r.db.WithContext(ctx).Save(node).Error
}

// Delete 物理删除节点
// 注册表没有审计价值，物理删除以释放唯一索引占用的名称供重新注册
func (r *nodeRepository) Delete(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Delete(&model.Node{}, "name = ?", name).Error
}
