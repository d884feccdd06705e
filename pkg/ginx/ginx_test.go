package ginx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimyag/virtprobe/pkg/apierror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type echoArgs struct {
	Name string `json:"name" form:"name"`
}

type strictArgs struct {
	Name string `json:"name"`
}

func (a *strictArgs) IsValid() error {
	if a.Name == "" {
		return apierror.WrapError(apierror.ErrInvalidParameter, "name is required", nil)
	}
	return nil
}

func TestAdapt_JSONBody(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.POST("/echo", Adapt(func(_ *gin.Context, args *echoArgs) (map[string]string, error) {
		return map[string]string{"name": args.Name}, nil
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"web01"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"web01"}`, w.Body.String())
}

func TestAdapt_QueryFallback(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.GET("/echo", Adapt(func(_ *gin.Context, args *echoArgs) (map[string]string, error) {
		return map[string]string{"name": args.Name}, nil
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/echo?name=web01", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"web01"}`, w.Body.String())
}

func TestAdapt_IsValid(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.POST("/strict", Adapt(func(_ *gin.Context, args *strictArgs) (string, error) {
		return args.Name, nil
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/strict", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "InvalidParameter")
}

func TestAdapt_APIError(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.POST("/fail", Adapt(func(_ *gin.Context, _ *echoArgs) (string, error) {
		return "", apierror.WrapError(apierror.ErrDomainNotFound, "domain web01 not found", nil)
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/fail", strings.NewReader(`{"name":"web01"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "DomainNotFound")
	assert.Contains(t, w.Body.String(), "domain web01 not found")
}

func TestAdaptNoArgs(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.GET("/version", AdaptNoArgs(func(_ *gin.Context) (map[string]string, error) {
		return map[string]string{"version": "8.3.0"}, nil
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"version":"8.3.0"}`, w.Body.String())
}

func TestAdaptNoResp(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.POST("/drop", AdaptNoResp(func(_ *gin.Context, _ *echoArgs) error {
		return nil
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/drop", strings.NewReader(`{"name":"web01"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.Use(RequestID(func() string { return "req-1a2b3c4d" }))
	router.POST("/fail", Adapt(func(_ *gin.Context, _ *echoArgs) (string, error) {
		return "", apierror.ErrNoDomainsPresent
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/fail", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "req-1a2b3c4d", w.Header().Get(RequestIDHeader))
	assert.Contains(t, w.Body.String(), `"requestID":"req-1a2b3c4d"`)
}

func TestRenderResponse_String(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.GET("/plain", AdaptNoArgs(func(_ *gin.Context) (string, error) {
		return "kvm", nil
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/plain", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "kvm", w.Body.String())
}
