package util

import (
	"fmt"
	"net/http"
	"net/url"
)

var proxySchemes = map[string]bool{"http": true, "https": true, "socks5": true}

// ParseProxy validates a proxy URL such as http://proxy:3128
func ParseProxy(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy %q: %w", raw, err)
	}
	if !proxySchemes[u.Scheme] || u.Host == "" {
		return nil, fmt.Errorf("invalid proxy %q: want http, https or socks5 with a host", raw)
	}
	return u, nil
}

// NewProxyFunc picks the proxy for each document download. The explicit
// https proxy serves https URLs and the http proxy serves the rest. With
// neither set, HTTP_PROXY, HTTPS_PROXY and NO_PROXY apply. An invalid
// explicit proxy fails every request that would use it.
func NewProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	parsed := func(raw string) func() (*url.URL, error) {
		u, err := ParseProxy(raw)
		return func() (*url.URL, error) { return u, err }
	}

	var viaHTTP, viaHTTPS func() (*url.URL, error)
	if httpProxy != "" {
		viaHTTP = parsed(httpProxy)
	}
	if httpsProxy != "" {
		viaHTTPS = parsed(httpsProxy)
	}

	return func(req *http.Request) (*url.URL, error) {
		switch {
		case req.URL.Scheme == "https" && viaHTTPS != nil:
			return viaHTTPS()
		case viaHTTP != nil:
			return viaHTTP()
		default:
			return http.ProxyFromEnvironment(req)
		}
	}
}
