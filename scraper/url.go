package scraper

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

var errMissingHost = errors.New("missing host")

const maxPort = 65535

// NormalizeURL validates raw as an absolute http(s) URL and returns its
// canonical form: lower-case scheme and host, default port dropped, "/" for
// an empty path.
//
// As in browsers, any run of slashes after "http:" introduces the host, so
// "http:example.com" and "http:///example.com" both mean http://example.com/.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	if u.Host == "" {
		rest := strings.TrimLeft(raw[len(u.Scheme)+1:], `/\`)
		if rest == "" {
			return "", errMissingHost
		}
		if u, err = url.Parse(scheme + "://" + rest); err != nil {
			return "", err
		}
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", errMissingHost
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}

	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port > maxPort {
			return "", fmt.Errorf("invalid port %q", p)
		}
		if !isDefaultPort(scheme, port) {
			host = net.JoinHostPort(strings.Trim(host, "[]"), strconv.Itoa(port))
		}
	}

	u.Scheme = scheme
	u.Host = host
	if u.Path == "" && u.RawPath == "" {
		u.Path = "/"
	}
	return u.String(), nil
}

func isDefaultPort(scheme string, port int) bool {
	return (scheme == "http" && port == 80) || (scheme == "https" && port == 443)
}
