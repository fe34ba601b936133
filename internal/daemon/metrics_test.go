package daemon

import (
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestRecorderGather(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewRecorder(reg)

	r.IncReload(true)
	r.IncReload(false)
	r.SetLastReload(1700000000)
	r.SetWarningCount(2)
	r.IncLinkCheck(true)
	r.IncLinkCheck(false)
	r.SetBrokenLinks(1)
	r.SetConfigInfo("My Wandering Blog", "./pure-theme")

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)

	names := make(map[string]bool, len(mfs))
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	require.True(t, names["siteconf_config_reloads_total"], "reload counter missing from scrape")
	require.True(t, names["siteconf_config_info"], "config info gauge missing from scrape")
}

func TestRecorderConfigInfoResetsOnReload(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewRecorder(reg)

	r.SetConfigInfo("Old Name", "./old-theme")
	r.SetConfigInfo("New Name", "./new-theme")

	mfs, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range mfs {
		if mf.GetName() != "siteconf_config_info" {
			continue
		}
		require.Len(t, mf.GetMetric(), 1, "stale label set survived reload")
		for _, lp := range mf.GetMetric()[0].GetLabel() {
			if lp.GetName() == "site_name" {
				require.Equal(t, "New Name", lp.GetValue())
			}
		}
	}
}
