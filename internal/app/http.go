package app

import (
	"net"
	"net/http"
	"time"

	"github.com/hyperifyio/goautotags/internal/remote"
)

// newServer returns an HTTP server for the host surface. Write timeout leaves
// room for one full remote extraction round trip.
func newServer(addr string, h http.Handler, extractTimeout time.Duration) *http.Server {
	if extractTimeout <= 0 {
		extractTimeout = remote.DefaultTimeout
	}
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      extractTimeout + 10*time.Second,
		IdleTimeout:       90 * time.Second,
	}
}

// newLLMHTTPClient returns the client used for completion calls. The overall
// timeout matches the extraction bound so a stalled server cannot hang a call.
func newLLMHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = remote.DefaultTimeout
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConnsPerHost:   64,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Transport: transport, Timeout: timeout}
}
