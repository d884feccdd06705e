// Package qemuimg 封装 qemu-img 命令行工具的只读查询操作
//
// 该包提供了对 qemu-img info 的封装，包括：
//   - 查询镜像及其完整 backing chain（InfoChain）
//   - 查询单个镜像信息（Info）
//
// 所有操作都支持 context 超时控制，info 使用 -U 共享锁以兼容运行中的 VM。
//
// 示例：
//
//	// 创建 client
//	client := qemuimg.New("")
//
//	// 查询镜像的完整 backing chain
//	layers, err := client.InfoChain(ctx, "/path/to/overlay.qcow2")
//
//	// 查询单个镜像信息
//	info, err := client.Info(ctx, "/path/to/image.qcow2")
package qemuimg
