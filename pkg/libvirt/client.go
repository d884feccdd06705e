package libvirt

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/digitalocean/go-libvirt"
	"github.com/digitalocean/go-libvirt/socket/dialers"
	"golang.org/x/crypto/ssh"
)

// 默认的本地 libvirt socket 路径
const defaultSocketPath = "/var/run/libvirt/libvirt-sock"

// ConnectOptions 连接参数
// Username/Password 仅在 qemu+ssh:// URI 下使用
type ConnectOptions struct {
	URI      string
	Username string
	Password string
	// Timeout 是连接握手超时时间，为 0 时使用 5 秒
	Timeout time.Duration
}

// Client 封装单个 libvirt 连接
// 每个 Client 对应一次连接，用完必须调用 Close 释放
type Client struct {
	conn *libvirt.Libvirt
	uri  string
}

// Connect 按 URI 建立到 libvirtd 的连接
// 支持以下格式：
//   - qemu:///system（本地 unix socket）
//   - qemu+tcp://host[:port]/system（TCP 远程连接）
//   - qemu+ssh://user@host/system（SSH 隧道连接，使用 Username/Password）
func Connect(opts ConnectOptions) (*Client, error) {
	uri := opts.URI
	if uri == "" {
		uri = "qemu:///system"
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to parse libvirt URI %q: %w", uri, err)
	}

	var conn *libvirt.Libvirt
	switch parsed.Scheme {
	case "qemu", "qemu+unix":
		dialer := dialers.NewLocal(
			dialers.WithSocket(defaultSocketPath),
			dialers.WithLocalTimeout(timeout),
		)
		conn = libvirt.NewWithDialer(dialer)
	case "qemu+tcp":
		host := parsed.Hostname()
		var remoteOpts []dialers.RemoteOption
		if port := parsed.Port(); port != "" {
			remoteOpts = append(remoteOpts, dialers.UsePort(port))
		}
		remoteOpts = append(remoteOpts, dialers.WithRemoteTimeout(timeout))
		conn = libvirt.NewWithDialer(dialers.NewRemote(host, remoteOpts...))
	case "qemu+ssh":
		dialer, err := newSSHDialer(parsed, opts.Username, opts.Password, timeout)
		if err != nil {
			return nil, err
		}
		conn = libvirt.NewWithDialer(dialer)
	default:
		return nil, fmt.Errorf("unsupported libvirt URI scheme %q", parsed.Scheme)
	}

	if err := conn.Connect(); err != nil {
		return nil, fmt.Errorf("failed to open a connection to the hypervisor at %s: %w", uri, err)
	}

	return &Client{conn: conn, uri: uri}, nil
}

// Close 关闭 libvirt 连接
// 多次调用是安全的
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	if err := c.conn.Disconnect(); err != nil {
		return fmt.Errorf("failed to disconnect from libvirt at %s: %w", c.uri, err)
	}
	c.conn = nil
	return nil
}

// URI 返回该连接使用的 URI
func (c *Client) URI() string {
	return c.uri
}

// GetHostname 返回 hypervisor 节点的主机名
func (c *Client) GetHostname() (string, error) {
	hostname, err := c.conn.ConnectGetHostname()
	if err != nil {
		return "", fmt.Errorf("get hostname: %w", err)
	}
	return hostname, nil
}

// GetLibVersion 返回 libvirt 库版本号
// 版本号编码方式：major*1000000 + minor*1000 + micro
func (c *Client) GetLibVersion() (uint64, error) {
	version, err := c.conn.ConnectGetLibVersion()
	if err != nil {
		return 0, fmt.Errorf("get libvirt version: %w", err)
	}
	return version, nil
}

// FormatVersion 将 libvirt 版本号转换为可读格式
// 例如：8003000 -> 8.3.0
func FormatVersion(version uint64) string {
	major := version / 1000000
	minor := (version % 1000000) / 1000
	micro := version % 1000
	return fmt.Sprintf("%d.%d.%d", major, minor, micro)
}

// sshDialer 通过 SSH 隧道连接远程节点上的 libvirt unix socket
type sshDialer struct {
	addr    string
	config  *ssh.ClientConfig
	socket  string
	timeout time.Duration
}

// newSSHDialer 构建 SSH dialer
// 用户名优先取 URI 中的 user 部分，其次是 opts 中的 Username
func newSSHDialer(uri *url.URL, username, password string, timeout time.Duration) (*sshDialer, error) {
	if uri.User != nil && uri.User.Username() != "" {
		username = uri.User.Username()
		if pw, ok := uri.User.Password(); ok {
			password = pw
		}
	}
	if username == "" {
		return nil, fmt.Errorf("ssh connection to %s requires a username", uri.Host)
	}

	host := uri.Hostname()
	port := uri.Port()
	if port == "" {
		port = "22"
	}

	socket := defaultSocketPath
	if s := uri.Query().Get("socket"); s != "" {
		socket = s
	}

	config := &ssh.ClientConfig{
		User: username,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
		},
		// 节点由管理员显式注册，不做 known_hosts 校验
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}

	return &sshDialer{
		addr:    net.JoinHostPort(host, port),
		config:  config,
		socket:  socket,
		timeout: timeout,
	}, nil
}

// Dial 实现 go-libvirt 的 socket.Dialer 接口
func (d *sshDialer) Dial() (net.Conn, error) {
	client, err := ssh.Dial("tcp", d.addr, d.config)
	if err != nil {
		return nil, fmt.Errorf("ssh dial %s: %w", d.addr, err)
	}

	conn, err := client.Dial("unix", d.socket)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("dial remote libvirt socket %s: %w", d.socket, err)
	}

	return &sshConn{Conn: conn, client: client}, nil
}

// sshConn 包装隧道连接，在关闭时一并关闭 SSH client
type sshConn struct {
	net.Conn
	client *ssh.Client
}

func (c *sshConn) Close() error {
	err := c.Conn.Close()
	if cerr := c.client.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// IsLocalURI 判断 URI 是否指向本地 hypervisor
func IsLocalURI(uri string) bool {
	return uri == "" || strings.HasPrefix(uri, "qemu:///") || strings.HasPrefix(uri, "qemu+unix://")
}
