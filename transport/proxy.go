package transport

import (
	"net"

	"golang.org/x/net/proxy"
)

// DialProxy builds a DialFunc that tunnels through a SOCKS5 proxy at
// proxyAddr (e.g. a local Tor daemon or a corporate egress point)
// before reaching the IRC server. auth may be nil for an
// unauthenticated proxy.
func DialProxy(proxyAddr string, auth *proxy.Auth) (DialFunc, error) {
	dialer, err := proxy.SOCKS5("tcp", proxyAddr, auth, proxy.Direct)
	if err != nil {
		return nil, err
	}

	return func(addr string) (net.Conn, error) {
		return dialer.Dial("tcp", addr)
	}, nil
}
