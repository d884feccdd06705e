package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jimyag/virtprobe/internal/virtprobe/repository"
	"github.com/jimyag/virtprobe/pkg/idgen"
	"github.com/jimyag/virtprobe/pkg/libvirt"
	"github.com/jimyag/virtprobe/pkg/qemuimg"
)

// TestServices 包含测试所需的所有服务和依赖
type TestServices struct {
	Repo            *repository.Repository
	NodeRepo        repository.NodeRepository
	MockLibvirt     *libvirt.MockClient
	MockQemuImg     *qemuimg.MockClient
	Connector       *Connector
	DomainService   *DomainService
	NodeService     *NodeService
	PoolService     *PoolService
	RegistryService *RegistryService
}

// setupTestServices 为每个测试用例创建独立的测试环境
// 每个测试用例都会获得自己的数据库、mock clients 和 service 实例
// Connector 的 dial 被替换为直接返回 mock libvirt client
func setupTestServices(t *testing.T) *TestServices {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	repo, err := repository.New(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = repo.Close()
		_ = os.RemoveAll(tmpDir)
	})

	nodeRepo := repository.NewNodeRepository(repo.DB())

	mockLibvirt := libvirt.NewMockClient()
	mockQemuImg := qemuimg.NewMockClient()

	connector := NewConnector(nodeRepo, "qemu:///system")
	connector.dial = func(opts libvirt.ConnectOptions) (libvirt.LibvirtClient, error) {
		return mockLibvirt, nil
	}

	return &TestServices{
		Repo:            repo,
		NodeRepo:        nodeRepo,
		MockLibvirt:     mockLibvirt,
		MockQemuImg:     mockQemuImg,
		Connector:       connector,
		DomainService:   NewDomainService(connector, mockQemuImg),
		NodeService:     NewNodeService(connector),
		PoolService:     NewPoolService(connector, nil),
		RegistryService: NewRegistryService(nodeRepo, idgen.New()),
	}
}
