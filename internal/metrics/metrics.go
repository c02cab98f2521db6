// Package metrics регистрирует счётчики сервиса и отдаёт их по /metrics.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry хранит собственный prometheus-реестр и счётчики операций с записями.
type Registry struct {
	prom          *prometheus.Registry
	registrations *prometheus.CounterVec
}

// New создаёт реестр со стандартными Go/process коллекторами и счётчиком записей.
func New() (*Registry, error) {
	reg := prometheus.NewRegistry()

	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("registering go collector: %w", err)
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("registering process collector: %w", err)
	}

	registrations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "activity_registrations_total",
		Help: "Signup and unregister requests by outcome.",
	}, []string{"operation", "outcome"})
	if err := reg.Register(registrations); err != nil {
		return nil, fmt.Errorf("registering counter vec: %w", err)
	}

	return &Registry{prom: reg, registrations: registrations}, nil
}

// ObserveRegistration увеличивает счётчик для операции (signup, unregister) и исхода (код ошибки или ok).
func (r *Registry) ObserveRegistration(operation, outcome string) {
	r.registrations.With(prometheus.Labels{"operation": operation, "outcome": outcome}).Inc()
}

// Handler возвращает http.Handler для /metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.prom, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// PrometheusRegistry возвращает нижележащий реестр.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.prom
}
