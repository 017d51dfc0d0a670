package groupme

import (
	"time"

	"resty.dev/v3"
)

type ClientConfig struct {
	BaseURL string
	Token   string

	TransportSettings *resty.TransportSettings

	ResponseMiddlewares []resty.ResponseMiddleware
	RequestMiddlewares  []resty.RequestMiddleware
}

var DefaultTransportSettings = &resty.TransportSettings{
	DialerTimeout:         1 * time.Second,
	DialerKeepAlive:       30 * time.Second,
	IdleConnTimeout:       30 * time.Second,
	TLSHandshakeTimeout:   1 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ResponseHeaderTimeout: 5 * time.Second,
}
