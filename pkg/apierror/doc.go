// Package apierror 提供带错误码的错误类型，用于所有服务的统一错误处理
//
// 错误响应格式：
//
//	{
//	    "errors": [
//	        {
//	            "code": "DomainNotFound",
//	            "message": "The specified domain was not found on this hypervisor."
//	        }
//	    ],
//	    "requestID": "req-1a2b3c4d"
//	}
//
// 预定义错误变量（可在代码中直接使用）：
//
//   - ErrConnectionFailure: 无法连接到目标节点的 libvirtd
//   - ErrDomainNotFound: 虚拟机不存在
//   - ErrNoDomainsPresent: 节点上没有任何虚拟机
//   - ErrNodeNotFound: 节点未注册
//   - ErrParseFailure: 描述解析失败
//   - ErrInvalidParameter: 请求参数不合法
//   - ErrInternalFailure: 内部故障
//
// 使用示例：
//
//	// 包装预定义的错误
//	err := apierror.WrapError(apierror.ErrDomainNotFound,
//	    "domain web01 not found", rawErr)
//
//	// 错误类型判断
//	if errors.Is(err, apierror.ErrDomainNotFound) { ... }
//
//	// 在 gin 中渲染
//	c.JSON(err.HTTPStatus, apierror.NewErrorResponse(requestID, err))
package apierror
