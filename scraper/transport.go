package scraper

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	tls "github.com/refraction-networking/utls"
	"github.com/use-agent/pagescrape/config"
)

const maxRedirects = 10

// chromeH1Spec returns a Chrome-like TLS ClientHello with ALPN forced to
// http/1.1 only. ApplyPreset takes ownership of the extensions it is given,
// so every connection gets a fresh spec.
func chromeH1Spec() (*tls.ClientHelloSpec, error) {
	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		return nil, err
	}
	// http.Transport cannot speak h2 over a utls connection, so the
	// server must never negotiate it.
	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}
	return &spec, nil
}

// NewHTTPClient builds the client shared by every scrape. It carries no
// timeout of its own; each request is bounded by its context.
func NewHTTPClient(cfg config.ScraperConfig) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("transport: parse proxy: %w", err)
		}
		if proxyURL.Scheme != "http" && proxyURL.Scheme != "https" {
			return nil, fmt.Errorf("transport: unsupported proxy scheme %q", proxyURL.Scheme)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	if cfg.TLSFingerprint {
		if cfg.Proxy != "" {
			// DialTLSContext bypasses the proxy for https targets.
			return nil, fmt.Errorf("transport: TLS fingerprinting cannot be combined with a proxy")
		}
		transport.DialTLSContext = dialTLSChrome
		transport.ForceAttemptHTTP2 = false
	}

	return &http.Client{
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}, nil
}

// dialTLSChrome establishes a TLS connection using a Chrome fingerprint via utls.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	host, _, _ := net.SplitHostPort(addr)
	spec, err := chromeH1Spec()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("transport: build tls spec: %w", err)
	}
	tlsConn := tls.UClient(conn, &tls.Config{ServerName: host}, tls.HelloCustom)
	if err := tlsConn.ApplyPreset(spec); err != nil {
		conn.Close()
		return nil, fmt.Errorf("transport: apply tls spec: %w", err)
	}

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return tlsConn, nil
}
