package main

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// prometheusHandler adapts the standard net/http Prometheus handler to
// fasthttp, mirroring the teacher's use of fasthttp throughout its own RPC
// servers rather than introducing a second HTTP stack for metrics.
func prometheusHandler() fasthttp.RequestHandler {
	return fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
}
