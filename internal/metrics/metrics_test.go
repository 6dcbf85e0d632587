package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/global"
)

func TestPrometheusExporterServesRequestCounts(t *testing.T) {
	exporter, err := NewPrometheusExporter()
	require.NoError(t, err)

	m := New(global.Meter("metrics_test"))

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/articles/{articleID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/articles/1", "/articles/2", "/ok"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	rec := httptest.NewRecorder()
	exporter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	out := string(body)
	require.True(t, strings.Contains(out, "http_server_completed_count"), out)
	require.True(t, strings.Contains(out, `route="/articles/{articleID}"`), out)
}
