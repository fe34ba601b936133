package daemon

import (
	"sync"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Recorder exposes daemon metrics through a dedicated Prometheus registry.
type Recorder struct {
	once        sync.Once
	registry    *prom.Registry
	reloads     *prom.CounterVec
	lastReload  prom.Gauge
	warnings    prom.Gauge
	linkChecks  *prom.CounterVec
	brokenLinks prom.Gauge
	configInfo  *prom.GaugeVec
}

// NewRecorder constructs and registers daemon metrics (idempotent).
func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	r := &Recorder{registry: reg}
	r.once.Do(func() {
		r.reloads = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "siteconf",
			Name:      "config_reloads_total",
			Help:      "Configuration reload attempts by result",
		}, []string{"result"})
		r.lastReload = prom.NewGauge(prom.GaugeOpts{
			Namespace: "siteconf",
			Name:      "config_last_reload_timestamp_seconds",
			Help:      "Unix timestamp of the last successful configuration reload",
		})
		r.warnings = prom.NewGauge(prom.GaugeOpts{
			Namespace: "siteconf",
			Name:      "config_warnings",
			Help:      "Normalization warnings produced by the active configuration",
		})
		r.linkChecks = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "siteconf",
			Name:      "link_checks_total",
			Help:      "Outbound link checks by result",
		}, []string{"result"})
		r.brokenLinks = prom.NewGauge(prom.GaugeOpts{
			Namespace: "siteconf",
			Name:      "broken_links",
			Help:      "Broken links found by the most recent link check run",
		})
		r.configInfo = prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "siteconf",
			Name:      "config_info",
			Help:      "Static labels describing the active configuration",
		}, []string{"site_name", "theme"})

		reg.MustRegister(r.reloads, r.lastReload, r.warnings, r.linkChecks, r.brokenLinks, r.configInfo)
		reg.MustRegister(collectors.NewGoCollector())
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
	return r
}

// Registry returns the registry backing this recorder.
func (r *Recorder) Registry() *prom.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) IncReload(success bool) {
	if r == nil || r.reloads == nil {
		return
	}
	res := "failure"
	if success {
		res = "success"
	}
	r.reloads.WithLabelValues(res).Inc()
}

func (r *Recorder) SetLastReload(unixSeconds float64) {
	if r == nil || r.lastReload == nil {
		return
	}
	r.lastReload.Set(unixSeconds)
}

func (r *Recorder) SetWarningCount(n int) {
	if r == nil || r.warnings == nil {
		return
	}
	r.warnings.Set(float64(n))
}

func (r *Recorder) IncLinkCheck(ok bool) {
	if r == nil || r.linkChecks == nil {
		return
	}
	res := "broken"
	if ok {
		res = "ok"
	}
	r.linkChecks.WithLabelValues(res).Inc()
}

func (r *Recorder) SetBrokenLinks(n int) {
	if r == nil || r.brokenLinks == nil {
		return
	}
	r.brokenLinks.Set(float64(n))
}

// SetConfigInfo resets the info gauge so stale label sets from previous
// configurations do not linger after a reload.
func (r *Recorder) SetConfigInfo(siteName, theme string) {
	if r == nil || r.configInfo == nil {
		return
	}
	r.configInfo.Reset()
	r.configInfo.WithLabelValues(siteName, theme).Set(1)
}
