package service

import (
	"github.com/jinzhu/copier"

	"github.com/jimyag/virtprobe/internal/virtprobe/entity"
	"github.com/jimyag/virtprobe/internal/virtprobe/repository/model"
)

// nodeModelToEntity 将 model.Node 转换为 entity.Node
// 密码不会出现在实体中
func nodeModelToEntity(m *model.Node) (*entity.Node, error) {
	e := &entity.Node{}
	if err := copier.Copy(e, m); err != nil {
		return nil, err
	}
	return e, nil
}
