package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func gatherFamily(t *testing.T, r *Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := r.Gatherer().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestRegistry_GraphSize(t *testing.T) {
	r := NewRegistry()
	r.SetGraphSize(12, 11)

	mf := gatherFamily(t, r, "resnet_graph_technologies_total")
	require.NotNil(t, mf)
	require.Equal(t, float64(12), mf.GetMetric()[0].GetGauge().GetValue())

	mf = gatherFamily(t, r, "resnet_graph_fuels_total")
	require.NotNil(t, mf)
	require.Equal(t, float64(11), mf.GetMetric()[0].GetGauge().GetValue())
}

func TestRegistry_Operations(t *testing.T) {
	r := NewRegistry()
	r.ObserveOperation("add_technology", "ok")
	r.ObserveOperation("add_technology", "ok")
	r.ObserveOperation("add_fuel", "error")

	mf := gatherFamily(t, r, "resnet_graph_operations_total")
	require.NotNil(t, mf)

	byLabels := make(map[string]float64)
	for _, m := range mf.GetMetric() {
		key := ""
		for _, l := range m.GetLabel() {
			key += l.GetName() + "=" + l.GetValue() + ";"
		}
		byLabels[key] = m.GetCounter().GetValue()
	}
	require.Equal(t, float64(2), byLabels["operation=add_technology;status=ok;"])
	require.Equal(t, float64(1), byLabels["operation=add_fuel;status=error;"])
}

func TestRegistry_SkeletonLoad(t *testing.T) {
	r := NewRegistry()
	r.ObserveSkeletonLoad("ok", 0.002)
	r.ObserveSkeletonLoad("error", 0.5)

	mf := gatherFamily(t, r, "resnet_skeleton_loads_total")
	require.NotNil(t, mf)
	require.Len(t, mf.GetMetric(), 2)

	mf = gatherFamily(t, r, "resnet_skeleton_load_duration_seconds")
	require.NotNil(t, mf)
	require.Equal(t, uint64(2), mf.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestRegistry_NilSafe(t *testing.T) {
	var r *Registry
	// None of these should panic
	r.ObserveOperation("add_technology", "ok")
	r.SetGraphSize(1, 1)
	r.SetSetSize("region", 1)
	r.ObserveSkeletonLoad("ok", 0.1)
}
