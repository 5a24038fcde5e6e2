// internal/common/observability/metrics_test.go
package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestObservability_JobSpanAndMeters(t *testing.T) {
	reg := prometheus.NewRegistry()
	recorder := tracetest.NewSpanRecorder()

	obs, err := New("technet-test", reg, recorder)
	require.NoError(t, err)
	defer obs.Shutdown(context.Background())

	_, span := obs.StartJobSpan(context.Background(), "search-jobs", 42, 7)
	obs.RecordJob(context.Background(), "search-jobs", 15*time.Millisecond)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "search-jobs", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.Int64("job.key", 42))

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "jobs_processed_total")
}
