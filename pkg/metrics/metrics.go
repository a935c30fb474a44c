// Package metrics 提供 Prometheus helper，包含本服务常用 counter/histogram 模板
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wyfcoding/quantpricing/pkg/logger"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal prometheus.Counter
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram

	// 解析定价请求计数（Price + Greeks）
	PricingsTotal prometheus.Counter
	// 隐含波动率求解计数
	ImpliedVolTotal prometheus.Counter
	// 隐含波动率未收敛计数
	ImpliedVolNonConverged prometheus.Counter
	// 隐含波动率迭代次数分布
	ImpliedVolIterations prometheus.Histogram
	// 蒙特卡洛模拟计数
	MonteCarloTotal prometheus.Counter
	// 蒙特卡洛路径数分布
	MonteCarloPaths prometheus.Histogram
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quant",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quant",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		PricingsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quant",
			Subsystem: serviceName,
			Name:      "pricings_total",
			Help:      "Total analytic pricing operations (price and greeks)",
		}),
		ImpliedVolTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quant",
			Subsystem: serviceName,
			Name:      "implied_vol_total",
			Help:      "Total implied volatility solves",
		}),
		ImpliedVolNonConverged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quant",
			Subsystem: serviceName,
			Name:      "implied_vol_non_converged_total",
			Help:      "Implied volatility solves that exhausted max iterations",
		}),
		ImpliedVolIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quant",
			Subsystem: serviceName,
			Name:      "implied_vol_iterations",
			Help:      "Bisection iterations per implied volatility solve",
			Buckets:   []float64{1, 5, 10, 20, 30, 50, 75, 100},
		}),
		MonteCarloTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quant",
			Subsystem: serviceName,
			Name:      "monte_carlo_total",
			Help:      "Total Monte Carlo simulations",
		}),
		MonteCarloPaths: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quant",
			Subsystem: serviceName,
			Name:      "monte_carlo_paths",
			Help:      "Simulated paths per Monte Carlo request",
			Buckets:   []float64{1000, 10000, 50000, 100000, 500000, 1000000},
		}),
	}
}

// Register 注册所有指标
func (m *Metrics) Register() error {
	collectors := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.PricingsTotal,
		m.ImpliedVolTotal,
		m.ImpliedVolNonConverged,
		m.ImpliedVolIterations,
		m.MonteCarloTotal,
		m.MonteCarloPaths,
	}

	for _, c := range collectors {
		if err := prometheus.DefaultRegisterer.Register(c); err != nil {
			logger.Error(context.Background(), "Failed to register metric", "error", err)
			return err
		}
	}

	return nil
}

// StartHTTPServer 启动 Prometheus HTTP 服务器
func StartHTTPServer(port int, path string) {
	if path == "" {
		path = "/metrics"
	}

	http.Handle(path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info(context.Background(), "Starting Prometheus HTTP server", "addr", addr, "path", path)

	go func() {
		if err := http.ListenAndServe(addr, nil); err != nil {
			logger.Error(context.Background(), "Failed to start Prometheus HTTP server", "error", err)
		}
	}()
}
