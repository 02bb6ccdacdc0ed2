package observability

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTextfile(t *testing.T) {
	m := NewMetricsForTesting()
	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(m.BundlesWritten))
	require.NoError(t, registry.Register(m.RowsLoaded))

	m.BundlesWritten.Add(2)
	m.RowsLoaded.WithLabelValues("model").Add(10)

	path := filepath.Join(t.TempDir(), "bundlegen.prom")
	require.NoError(t, WriteTextfile(path, registry))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bundlegen_bundle_documents_written_total 2")
	assert.Contains(t, string(data), `bundlegen_rows_loaded_total{dataset="model"} 10`)
}
