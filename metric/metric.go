package metric

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/anyproto/any-share/app"
	"github.com/anyproto/any-share/app/logger"
)

const CName = "common.metric"

var log = logger.NewNamed(CName)

func New() Metric {
	return new(metric)
}

type Config struct {
	Addr string `yaml:"addr"`
}

type configSource interface {
	GetMetric() Config
}

type Metric interface {
	Registry() *prometheus.Registry
	app.ComponentRunnable
}

type metric struct {
	registry *prometheus.Registry
	config   Config
	server   *http.Server
	addr     string
}

func (m *metric) Init(a *app.App) (err error) {
	m.registry = prometheus.NewRegistry()
	m.config = a.MustComponent("config").(configSource).GetMetric()
	return nil
}

func (m *metric) Name() string {
	return CName
}

func (m *metric) Run(ctx context.Context) (err error) {
	if err = m.registry.Register(collectors.NewBuildInfoCollector()); err != nil {
		return err
	}
	if err = m.registry.Register(collectors.NewGoCollector()); err != nil {
		return err
	}
	if m.config.Addr == "" {
		return nil
	}
	lis, err := net.Listen("tcp", m.config.Addr)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	m.server = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if serr := m.server.Serve(lis); serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			log.Warn("metric server stopped", zap.Error(serr))
		}
	}()
	m.addr = lis.Addr().String()
	log.Info("metrics listening", zap.String("addr", m.addr))
	return nil
}

func (m *metric) Registry() *prometheus.Registry {
	return m.registry
}

func (m *metric) Close(ctx context.Context) (err error) {
	if m.server != nil {
		return m.server.Shutdown(ctx)
	}
	return
}
