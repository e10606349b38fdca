package scraper

import (
	"net/http"
	"testing"

	tls "github.com/refraction-networking/utls"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/pagescrape/config"
)

func TestChromeH1Spec_PinsHTTP1(t *testing.T) {
	spec, err := chromeH1Spec()
	require.NoError(t, err)

	var protos []string
	for _, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			protos = alpn.AlpnProtocols
		}
	}
	assert.Equal(t, []string{"http/1.1"}, protos)
}

func TestChromeH1Spec_FreshPerCall(t *testing.T) {
	a, err := chromeH1Spec()
	require.NoError(t, err)
	b, err := chromeH1Spec()
	require.NoError(t, err)

	require.NotEmpty(t, a.Extensions)
	assert.NotSame(t, a, b)
}

func TestNewHTTPClient(t *testing.T) {
	_, err := NewHTTPClient(config.ScraperConfig{Proxy: "socks5://127.0.0.1:1080"})
	assert.Error(t, err)

	_, err = NewHTTPClient(config.ScraperConfig{Proxy: "http://127.0.0.1:3128", TLSFingerprint: true})
	assert.Error(t, err)

	client, err := NewHTTPClient(config.ScraperConfig{TLSFingerprint: true})
	require.NoError(t, err)
	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.NotNil(t, transport.DialTLSContext)
	assert.False(t, transport.ForceAttemptHTTP2)
}
