package testutil

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// CounterValues flattens every counter in g into "name{label}" -> value.
// Label values are appended in label-name order.
func CounterValues(t testing.TB, g prometheus.Gatherer) map[string]float64 {
	t.Helper()
	families, err := g.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range metric.GetLabel() {
				key += "{" + lp.GetValue() + "}"
			}
			values[key] = metric.GetCounter().GetValue()
		}
	}
	return values
}
