// Package virtprobe 提供服务器的主入口和初始化逻辑
package virtprobe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jimmicro/grace"
	"github.com/rs/zerolog"

	"github.com/jimyag/virtprobe/internal/virtprobe/api"
	"github.com/jimyag/virtprobe/internal/virtprobe/config"
	"github.com/jimyag/virtprobe/internal/virtprobe/repository"
	"github.com/jimyag/virtprobe/internal/virtprobe/service"
	"github.com/jimyag/virtprobe/pkg/hostcmd"
	"github.com/jimyag/virtprobe/pkg/idgen"
	"github.com/jimyag/virtprobe/pkg/qemuimg"
)

type Server struct {
	cfg  *config.Config
	api  *api.API
	repo *repository.Repository
}

func New(cfg *config.Config) (*Server, error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger

	// 1. 打开节点注册库
	repo, err := repository.New(filepath.Join(cfg.DataDir, "virtprobe.db"))
	if err != nil {
		return nil, fmt.Errorf("open node registry: %w", err)
	}
	nodeRepo := repository.NewNodeRepository(repo.DB())

	// 2. 创建连接器和各探测服务
	connector := service.NewConnector(nodeRepo, cfg.LibvirtURI)
	qemuImgClient := qemuimg.New(cfg.QemuImgPath)
	runner := hostcmd.New(hostcmd.WithPsCommand(cfg.Grains.PS))

	domainService := service.NewDomainService(connector, qemuImgClient)
	nodeService := service.NewNodeService(connector)
	hypervisorService := service.NewHypervisorService(runner, cfg.Grains)
	poolService := service.NewPoolService(connector, func(ctx context.Context) string {
		result, err := hypervisorService.Detect(ctx)
		if err != nil {
			return ""
		}
		return result.Detected
	})
	registryService := service.NewRegistryService(nodeRepo, idgen.DefaultGenerator())

	// 3. 创建 API
	apiInstance, err := api.New(cfg.Address,
		domainService, nodeService, poolService, hypervisorService, registryService)
	if err != nil {
		return nil, err
	}

	server := &Server{
		cfg:  cfg,
		api:  apiInstance,
		repo: repo,
	}
	return server, nil
}

func (s *Server) Run(ctx context.Context) error {
	// 使用 grace.Shepherd 管理服务生命周期
	services := []grace.Grace{
		s.api,
	}

	shepherd := grace.NewShepherd(
		services,
		grace.WithTimeout(30*time.Second),
		grace.WithLogger(&zerologLogger{}),
	)

	shepherd.Start(ctx)
	return s.repo.Close()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.api.Shutdown(ctx)
}

// Name 实现 grace.Grace 接口
func (s *Server) Name() string {
	return "virtprobe Server"
}

// zerologLogger 实现 grace.Logger 接口
type zerologLogger struct{}

func (l *zerologLogger) Info(msg string, args ...interface{}) {
	logger := zerolog.DefaultContextLogger.Info()
	if len(args) > 0 {
		logger.Msgf(msg, args...)
	} else {
		logger.Msg(msg)
	}
}

func (l *zerologLogger) Error(msg string, args ...interface{}) {
	logger := zerolog.DefaultContextLogger.Error()
	if len(args) > 0 {
		logger.Msgf(msg, args...)
	} else {
		logger.Msg(msg)
	}
}
