package model

import (
	"time"
)

// Node 已注册节点表
// 只保存连接端点信息，探测结果不落库。
// 注销即物理删除，不保留软删除记录，保证名称可以重新注册
type Node struct {
	ID        string    `gorm:"primaryKey;type:text;column:id" json:"id"`                              // node-{递增 ID}
	Name      string    `gorm:"type:text;not null;uniqueIndex:idx_nodes_name;column:name" json:"name"` // 节点名称，唯一
	URI       string    `gorm:"type:text;not null;column:uri" json:"uri"`                              // libvirt 连接 URI
	Username  string    `gorm:"type:text;column:username" json:"username"`                             // SSH 用户名（仅 qemu+ssh URI）
	Password  string    `gorm:"type:text;column:password" json:"-"`                                    // SSH 密码，不序列化到响应中
	CreatedAt time.Time `gorm:"type:datetime;not null;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime;not null;column:updated_at" json:"updated_at"`
}

// TableName 指定表名
func (Node) TableName() string {
	return "nodes"
}
