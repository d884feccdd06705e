// Package ginx 提供 gin handler 的泛型适配器，统一参数绑定和响应渲染
//
// 适配器：
//
//   - Adapt: func(*gin.Context, *TArgs) (TResp, error)
//   - AdaptNoArgs: func(*gin.Context) (TResp, error)
//   - AdaptNoResp: func(*gin.Context, *TArgs) error
//
// 参数绑定优先级：JSON Body > URI 参数 > Query 参数 > Form 参数
// 如果参数结构体实现了 IsValid() error 方法，绑定后会自动调用进行验证
//
// 错误处理：如果 handler 返回 *apierror.Error，
// 响应状态码取自错误对象，响应体为 apierror.ErrorResponse
//
// 使用示例：
//
//	type listDomainsArgs struct {
//	    Node string `json:"node"`
//	}
//
//	router.POST("/api/list-domains", ginx.Adapt(
//	    func(ctx *gin.Context, args *listDomainsArgs) ([]string, error) {
//	        return svc.ListDomains(ctx, args.Node)
//	    },
//	))
package ginx
