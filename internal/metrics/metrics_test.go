package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activity-signup/internal/metrics"
)

func TestRegistry_ObserveRegistration(t *testing.T) {
	reg, err := metrics.New()
	require.NoError(t, err)

	reg.ObserveRegistration("signup", "ok")
	reg.ObserveRegistration("signup", "ok")
	reg.ObserveRegistration("unregister", "NOT_FOUND")

	count, err := testutil.GatherAndCount(reg.PrometheusRegistry(), "activity_registrations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
