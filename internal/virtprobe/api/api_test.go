package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimyag/virtprobe/internal/virtprobe/entity"
	"github.com/jimyag/virtprobe/pkg/apierror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubDomainService DomainServiceInterface 的测试替身
type stubDomainService struct {
	domains map[string]*entity.Domain
}

func (s *stubDomainService) ListDomains(_ context.Context, _ string, active, inactive bool) ([]string, error) {
	names := []string{}
	if active {
		names = append(names, "web01")
	}
	if inactive {
		names = append(names, "db01")
	}
	return names, nil
}

func (s *stubDomainService) DescribeDomain(_ context.Context, _ string, name string) (*entity.Domain, error) {
	domain, ok := s.domains[name]
	if !ok {
		return nil, apierror.WrapError(apierror.ErrDomainNotFound, "domain "+name+" not found", nil)
	}
	return domain, nil
}

func (s *stubDomainService) DescribeDomains(_ context.Context, _ string) (map[string]*entity.Domain, error) {
	if len(s.domains) == 0 {
		return nil, apierror.ErrNoDomainsPresent
	}
	return s.domains, nil
}

func newTestRouter(domains map[string]*entity.Domain) *gin.Engine {
	router := gin.New()
	group := router.Group("/api")

	domainAPI := &DomainAPI{domainService: &stubDomainService{domains: domains}}
	domainAPI.RegisterRoutes(group)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestDomainAPI_ListDomains(t *testing.T) {
	t.Parallel()

	router := newTestRouter(nil)

	t.Run("default includes both", func(t *testing.T) {
		w := postJSON(t, router, "/api/list-domains", `{}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"domains":["web01","db01"]}`, w.Body.String())
	})

	t.Run("active only", func(t *testing.T) {
		w := postJSON(t, router, "/api/list-domains", `{"inactive":false}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"domains":["web01"]}`, w.Body.String())
	})
}

func TestDomainAPI_DescribeDomain(t *testing.T) {
	t.Parallel()

	router := newTestRouter(map[string]*entity.Domain{
		"web01": {
			Name:  "web01",
			UUID:  "2bb2b1d7-5f0a-4d3e-8a9c-1f3e5d7b9a1c",
			State: entity.DomainStateRunning,
			CPU:   2,
		},
	})

	t.Run("found", func(t *testing.T) {
		w := postJSON(t, router, "/api/describe-domain", `{"name":"web01"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"state":"running"`)
		assert.Contains(t, w.Body.String(), `"uuid":"2bb2b1d7-5f0a-4d3e-8a9c-1f3e5d7b9a1c"`)
	})

	t.Run("not found", func(t *testing.T) {
		w := postJSON(t, router, "/api/describe-domain", `{"name":"ghost"}`)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "DomainNotFound")
	})

	t.Run("missing name", func(t *testing.T) {
		w := postJSON(t, router, "/api/describe-domain", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDomainAPI_DescribeDomains_Empty(t *testing.T) {
	t.Parallel()

	router := newTestRouter(nil)
	w := postJSON(t, router, "/api/describe-domains", `{}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NoDomainsPresent")
}

// stubNodeService NodeServiceInterface 的测试替身
type stubNodeService struct{}

func (s *stubNodeService) Info(_ context.Context, _ string) (*entity.NodeInfo, error) {
	return &entity.NodeInfo{
		CPUModel:   "x86_64",
		PhyMemory:  4096,
		CPUs:       8,
		CPUMHz:     2712,
		NUMANodes:  1,
		Sockets:    2,
		CPUCores:   4,
		CPUThreads: 2,
	}, nil
}

func (s *stubNodeService) Version(_ context.Context, _ string) (*entity.NodeVersion, error) {
	return &entity.NodeVersion{Hostname: "vmhost01", LibVersion: "8.3.0", RawVersion: 8003000}, nil
}

func TestNodeAPI(t *testing.T) {
	t.Parallel()

	router := gin.New()
	nodeAPI := &NodeAPI{nodeService: &stubNodeService{}}
	nodeAPI.RegisterRoutes(router.Group("/api"))

	t.Run("node info", func(t *testing.T) {
		w := postJSON(t, router, "/api/node-info", `{}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"cpumodel": "x86_64",
			"phymemory": 4096,
			"cpus": 8,
			"cpumhz": 2712,
			"numanodes": 1,
			"sockets": 2,
			"cpucores": 4,
			"cputhreads": 2
		}`, w.Body.String())
	})

	t.Run("node version", func(t *testing.T) {
		w := postJSON(t, router, "/api/describe-node-version", `{}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"lib_version":"8.3.0"`)
	})
}

// stubHypervisorService HypervisorServiceInterface 的测试替身
type stubHypervisorService struct {
	detected string
}

func (s *stubHypervisorService) Detect(_ context.Context) (*entity.Hypervisor, error) {
	return &entity.Hypervisor{Detected: s.detected}, nil
}

func TestHypervisorAPI(t *testing.T) {
	t.Parallel()

	router := gin.New()
	hypervisorAPI := &HypervisorAPI{hypervisorService: &stubHypervisorService{detected: "kvm"}}
	hypervisorAPI.RegisterRoutes(router.Group("/api"))

	w := postJSON(t, router, "/api/get-hypervisor", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"detected":"kvm"}`, w.Body.String())
}

// stubRegistryService RegistryServiceInterface 的测试替身
type stubRegistryService struct {
	nodes map[string]*entity.Node
}

func (s *stubRegistryService) RegisterNode(_ context.Context, name, uri, username, _ string) (*entity.Node, error) {
	node := &entity.Node{ID: "node-1", Name: name, URI: uri, Username: username}
	s.nodes[name] = node
	return node, nil
}

func (s *stubRegistryService) ListNodes(_ context.Context) ([]*entity.Node, error) {
	nodes := make([]*entity.Node, 0, len(s.nodes))
	for _, node := range s.nodes {
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (s *stubRegistryService) DescribeNode(_ context.Context, name string) (*entity.Node, error) {
	node, ok := s.nodes[name]
	if !ok {
		return nil, apierror.ErrNodeNotFound
	}
	return node, nil
}

func (s *stubRegistryService) UnregisterNode(_ context.Context, name string) error {
	if _, ok := s.nodes[name]; !ok {
		return apierror.ErrNodeNotFound
	}
	delete(s.nodes, name)
	return nil
}

func TestRegistryAPI(t *testing.T) {
	t.Parallel()

	router := gin.New()
	registryAPI := &RegistryAPI{registryService: &stubRegistryService{nodes: map[string]*entity.Node{}}}
	registryAPI.RegisterRoutes(router.Group("/api"))

	t.Run("register", func(t *testing.T) {
		w := postJSON(t, router, "/api/register-node",
			`{"name":"vmhost01","uri":"qemu+ssh://root@vmhost01/system","username":"root","password":"secret"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"vmhost01"`)
		// 密码不会出现在响应中
		assert.NotContains(t, w.Body.String(), "secret")
	})

	t.Run("list", func(t *testing.T) {
		w := postJSON(t, router, "/api/list-nodes", `{}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "vmhost01")
	})

	t.Run("unregister", func(t *testing.T) {
		w := postJSON(t, router, "/api/unregister-node", `{"name":"vmhost01"}`)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = postJSON(t, router, "/api/unregister-node", `{"name":"vmhost01"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
