package qemuimg

import "context"

// QemuImgClient 定义了 qemu-img 客户端的接口
// 用于抽象 qemu-img 操作，便于测试和 mock
type QemuImgClient interface {
	// InfoChain 查询镜像及其完整 backing chain 的信息
	InfoChain(ctx context.Context, imagePath string) ([]ImageInfo, error)
	// Info 查询单个镜像的信息
	Info(ctx context.Context, imagePath string) (*ImageInfo, error)
}

// 确保 Client 实现了 QemuImgClient 接口
var _ QemuImgClient = (*Client)(nil)
