package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"github.com/valyala/fasthttp"
	"k8s.io/klog/v2"

	"github.com/yashan-technologies/yason-go/jsonbuilder"
	"github.com/yashan-technologies/yason-go/yason"
	"github.com/yashan-technologies/yason-go/yason/jsonconv"
	"github.com/yashan-technologies/yason-go/yason/path"
)

var serveStartedAt time.Time

func init() {
	prometheus.MustRegister(metrics_serveRequestsByStatus)
	prometheus.MustRegister(metrics_serveResponseTime)
}

var metrics_serveRequestsByStatus = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "yasonctl_serve_requests_by_status",
		Help: "Requests served by status code",
	},
	[]string{"status"},
)

var metrics_serveResponseTime = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "yasonctl_serve_response_time_seconds",
		Help: "Response time of served requests",
	},
	[]string{"route"},
)

// docStore is an in-memory, load-once index of YASON documents keyed by
// file stem, served read-only over HTTP.
type docStore struct {
	docs map[string]*yason.YasonBuf
}

func loadDocStore(dir string) (*docStore, error) {
	store := &docStore{docs: make(map[string]*yason.YasonBuf)}
	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".yason") {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		doc, err := yason.Decode(data)
		if err != nil {
			klog.Warningf("skipping %s: %v", p, err)
			return nil
		}
		id := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		store.docs[id] = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// newCmd_Serve exposes path-query over a directory of YASON documents as a
// minimal HTTP API.
func newCmd_Serve() *cli.Command {
	return &cli.Command{
		Name:        "serve",
		Description: "Serve path queries over a directory of YASON documents (GET /doc/{id}?path=...).",
		ArgsUsage:   "<docs-dir>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Usage: "address to listen on",
				Value: ":8089",
			},
			&cli.StringFlag{
				Name:  "metrics-listen",
				Usage: "address to expose Prometheus metrics on (empty disables)",
				Value: ":8090",
			},
		},
		Action: func(c *cli.Context) error {
			docsDir := c.Args().Get(0)
			if docsDir == "" {
				return cli.Exit("docs-dir is required", 1)
			}
			store, err := loadDocStore(docsDir)
			if err != nil {
				return cli.Exit(err, 1)
			}
			klog.Infof("loaded %d documents from %s", len(store.docs), docsDir)
			serveStartedAt = time.Now()

			if ml := c.String("metrics-listen"); ml != "" {
				go serveMetrics(ml)
			}

			handler := newServeHandler(store)
			listenOn := c.String("listen")
			klog.Infof("serving path queries on %s", listenOn)

			s := &fasthttp.Server{
				Handler:            handler,
				MaxRequestBodySize: 1024 * 1024,
			}
			go func() {
				<-c.Context.Done()
				klog.Info("serve shutting down...")
				defer klog.Info("serve shut down")
				if err := s.ShutdownWithContext(c.Context); err != nil {
					klog.Errorf("error while shutting down serve: %s", err)
				}
			}()
			return s.ListenAndServe(listenOn)
		},
	}
}

func serveMetrics(listenOn string) {
	klog.Infof("serving metrics on %s", listenOn)
	h := fasthttp.TimeoutHandler(prometheusHandler(), 5*time.Second, "metrics timeout")
	if err := fasthttp.ListenAndServe(listenOn, h); err != nil {
		klog.Errorf("metrics server stopped: %v", err)
	}
}

func newServeHandler(store *docStore) func(ctx *fasthttp.RequestCtx) {
	return func(ctx *fasthttp.RequestCtx) {
		requestID := uuid.New().String()
		startedAt := time.Now()
		route := string(ctx.Path())
		defer func() {
			elapsed := time.Since(startedAt)
			metrics_serveResponseTime.WithLabelValues(route).Observe(elapsed.Seconds())
			klog.V(2).Infof("[%s] %s %s -> %d (%s)", requestID, ctx.Method(), route, ctx.Response.StatusCode(), elapsed)
		}()

		if route == "/healthz" {
			replyHealth(ctx, store)
			return
		}

		if !strings.HasPrefix(route, "/doc/") {
			replyText(ctx, fasthttp.StatusNotFound, "not found")
			return
		}
		id := strings.TrimPrefix(route, "/doc/")
		doc, ok := store.docs[id]
		if !ok {
			replyText(ctx, fasthttp.StatusNotFound, fmt.Sprintf("document %q not found", id))
			return
		}

		pathExpr := string(ctx.QueryArgs().Peek("path"))
		if pathExpr == "" {
			text, err := jsonconv.ToJSON(doc.AsYason())
			if err != nil {
				replyText(ctx, fasthttp.StatusInternalServerError, err.Error())
				return
			}
			replyJSON(ctx, fasthttp.StatusOK, text, doc.AsYason().Hash())
			return
		}

		expr, err := path.Parse(pathExpr)
		if err != nil {
			replyText(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		var scratch []yason.Value
		result, err := path.Query(expr, doc.AsYason(), true, &scratch)
		if err != nil {
			replyText(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		matched, err := path.ValuesToYason(result.Values)
		if err != nil {
			replyText(ctx, fasthttp.StatusInternalServerError, err.Error())
			return
		}
		text, err := jsonconv.ToJSON(matched.AsYason())
		if err != nil {
			replyText(ctx, fasthttp.StatusInternalServerError, err.Error())
			return
		}
		replyJSON(ctx, fasthttp.StatusOK, text, doc.AsYason().Hash())
	}
}

// replyHealth reports ops status with jsonbuilder rather than the yason
// codec: this is a plain diagnostics payload about the server, not a
// document body, so it stays on encoding/json like the rest of the Go
// ecosystem's health checks.
func replyHealth(ctx *fasthttp.RequestCtx, store *docStore) {
	status := jsonbuilder.NewObject().
		String("status", "ok").
		Int("documents", int64(len(store.docs))).
		String("uptime", time.Since(serveStartedAt).String())
	body, err := json.Marshal(status)
	if err != nil {
		replyText(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	metrics_serveRequestsByStatus.WithLabelValues("200").Inc()
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(body)
}

func replyJSON(ctx *fasthttp.RequestCtx, code int, body string, hash uint64) {
	metrics_serveRequestsByStatus.WithLabelValues(fmt.Sprint(code)).Inc()
	ctx.SetContentType("application/json")
	ctx.Response.Header.Set("ETag", fmt.Sprintf("%x", hash))
	ctx.SetStatusCode(code)
	ctx.SetBodyString(body)
}

func replyText(ctx *fasthttp.RequestCtx, code int, body string) {
	metrics_serveRequestsByStatus.WithLabelValues(fmt.Sprint(code)).Inc()
	ctx.SetContentType("text/plain")
	ctx.SetStatusCode(code)
	ctx.SetBodyString(body)
}
