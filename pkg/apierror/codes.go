package apierror

import "net/http"

// 虚拟化探测服务的预定义错误
var (
	// ErrConnectionFailure 无法连接到目标节点的 libvirtd
	ErrConnectionFailure = &Error{
		Code:       "ConnectionFailure",
		Message:    "Failed to open a connection to the hypervisor. Check that libvirtd is running and the URI is reachable.",
		HTTPStatus: http.StatusBadGateway,
	}

	// ErrDomainNotFound 指定名称的虚拟机不存在
	ErrDomainNotFound = &Error{
		Code:       "DomainNotFound",
		Message:    "The specified domain was not found on this hypervisor.",
		HTTPStatus: http.StatusNotFound,
	}

	// ErrNoDomainsPresent 节点上没有任何虚拟机
	ErrNoDomainsPresent = &Error{
		Code:       "NoDomainsPresent",
		Message:    "No domains are present on this hypervisor.",
		HTTPStatus: http.StatusNotFound,
	}

	// ErrNodeNotFound 指定名称的节点未注册
	ErrNodeNotFound = &Error{
		Code:       "NodeNotFound",
		Message:    "The specified node is not registered.",
		HTTPStatus: http.StatusNotFound,
	}

	// ErrParseFailure 虚拟机或存储池描述解析失败
	ErrParseFailure = &Error{
		Code:       "ParseFailure",
		Message:    "Failed to parse the hypervisor response.",
		HTTPStatus: http.StatusInternalServerError,
	}

	// ErrInvalidParameter 请求参数不合法
	ErrInvalidParameter = &Error{
		Code:       "InvalidParameter",
		Message:    "A parameter in the request is invalid.",
		HTTPStatus: http.StatusBadRequest,
	}

	// ErrInternalFailure 由于未知错误、异常或故障，请求处理失败
	ErrInternalFailure = &Error{
		Code:       "InternalFailure",
		Message:    "The request processing has failed because of an unknown error, exception, or failure.",
		HTTPStatus: http.StatusInternalServerError,
	}
)
