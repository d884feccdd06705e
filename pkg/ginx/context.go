package ginx

import (
	"github.com/gin-gonic/gin"
)

// requestIDKey 用于在 gin.Context 中存储请求 ID
const requestIDKey = "ginx-request-id"

// RequestIDHeader 响应头中携带请求 ID 的字段名
const RequestIDHeader = "X-Request-ID"

// SetRequestID 设置请求 ID
func SetRequestID(ctx *gin.Context, requestID string) {
	ctx.Set(requestIDKey, requestID)
	ctx.Header(RequestIDHeader, requestID)
}

// GetRequestID 获取请求 ID，如果不存在则返回空字符串
func GetRequestID(ctx *gin.Context) string {
	requestID, exists := ctx.Get(requestIDKey)
	if !exists {
		return ""
	}
	if str, ok := requestID.(string); ok {
		return str
	}
	return ""
}

// RequestID 为每个请求生成并注入请求 ID 的中间件
// generate 为空时不注入
func RequestID(generate func() string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if generate != nil {
			SetRequestID(ctx, generate())
		}
		ctx.Next()
	}
}
