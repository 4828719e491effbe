package server

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moseskolleh/promptcoach/internal/history"
	"github.com/moseskolleh/promptcoach/internal/refdata"
)

func testServer(t *testing.T, store *history.Store) *Server {
	t.Helper()
	catalog, err := refdata.Load(zerolog.Nop())
	require.NoError(t, err)
	return New(Options{
		Logger:       zerolog.Nop(),
		Catalog:      catalog,
		History:      store,
		DefaultModel: "gpt-4o-mini",
	})
}

func doJSON(t *testing.T, srv *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), "body: %s", rec.Body.String())
	}
	return rec, payload
}

func TestHandleEstimate(t *testing.T) {
	srv := testServer(t, nil)

	rec, payload := doJSON(t, srv, http.MethodPost, "/api/v1/estimate",
		`{"model_id": "gpt-4o", "input_tokens": 100, "output_tokens": 300}`)
	require.Equal(t, http.StatusOK, rec.Code)

	estimate, ok := payload["estimate"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "gpt-4o", estimate["model_id"])
	assert.Equal(t, "short", estimate["category"])

	energy := estimate["energy"].(map[string]any)
	assert.InDelta(t, 0.421, energy["mean_wh"].(float64), 1e-9)

	assert.Contains(t, payload, "eco_score")
	comparisons := payload["comparisons"].(map[string]any)
	assert.Contains(t, comparisons["energy"], "LED bulb")
}

func TestHandleEstimate_TaskTypeMultiplier(t *testing.T) {
	srv := testServer(t, nil)

	rec, payload := doJSON(t, srv, http.MethodPost, "/api/v1/estimate",
		`{"model_id": "gpt-4o", "input_tokens": 100, "output_tokens": 300, "task_type": "image_generation"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	estimate := payload["estimate"].(map[string]any)
	energy := estimate["energy"].(map[string]any)
	assert.InDelta(t, 0.421*3.0, energy["mean_wh"].(float64), 1e-9)
}

func TestHandleEstimate_UnknownModel(t *testing.T) {
	srv := testServer(t, nil)

	rec, payload := doJSON(t, srv, http.MethodPost, "/api/v1/estimate",
		`{"model_id": "no-such-model", "input_tokens": 10, "output_tokens": 10}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "model_not_found", payload["code"])
}

func TestHandleEstimate_UnknownTaskType(t *testing.T) {
	srv := testServer(t, nil)

	rec, payload := doJSON(t, srv, http.MethodPost, "/api/v1/estimate",
		`{"model_id": "gpt-4o", "task_type": "interpretive_dance"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", payload["code"])
}

func TestHandleEstimate_MalformedBody(t *testing.T) {
	srv := testServer(t, nil)

	rec, payload := doJSON(t, srv, http.MethodPost, "/api/v1/estimate", `{"model_id": `)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", payload["code"])
}

func TestHandleEstimate_AutoSelectsAverage(t *testing.T) {
	srv := testServer(t, nil)

	for _, selector := range []string{"", "auto", "average"} {
		rec, payload := doJSON(t, srv, http.MethodPost, "/api/v1/estimate",
			`{"model_id": "`+selector+`", "input_tokens": 100, "output_tokens": 300}`)
		require.Equal(t, http.StatusOK, rec.Code, "selector %q", selector)

		avg, ok := payload["average"].(map[string]any)
		require.True(t, ok, "selector %q", selector)
		assert.InDelta(t, 12, avg["model_count"].(float64), 1e-9)
	}
}

func TestHandleAverage(t *testing.T) {
	srv := testServer(t, nil)

	rec, payload := doJSON(t, srv, http.MethodPost, "/api/v1/estimate/average",
		`{"input_tokens": 100, "output_tokens": 300}`)
	require.Equal(t, http.StatusOK, rec.Code)

	avg := payload["average"].(map[string]any)
	energy := avg["energy_wh"].(map[string]any)
	assert.Greater(t, energy["mean"].(float64), 0.0)
	assert.LessOrEqual(t, energy["min"].(float64), energy["mean"].(float64))
}

func TestHandleCompare_AllModelsByDefault(t *testing.T) {
	srv := testServer(t, nil)

	rec, payload := doJSON(t, srv, http.MethodPost, "/api/v1/compare",
		`{"input_tokens": 100, "output_tokens": 300}`)
	require.Equal(t, http.StatusOK, rec.Code)

	entries := payload["entries"].([]any)
	assert.Len(t, entries, 12)
	assert.Equal(t, "llama-3.2-1b", payload["best"])

	// Ranked ascending by energy.
	first := entries[0].(map[string]any)
	assert.Equal(t, "llama-3.2-1b", first["model_id"])
}

func TestHandleCompare_SubsetWithUnknown(t *testing.T) {
	srv := testServer(t, nil)

	rec, payload := doJSON(t, srv, http.MethodPost, "/api/v1/compare",
		`{"model_ids": ["gpt-4o", "gpt-4o-mini", "ghost"], "input_tokens": 100, "output_tokens": 300}`)
	require.Equal(t, http.StatusOK, rec.Code)

	entries := payload["entries"].([]any)
	assert.Len(t, entries, 2)
	errs := payload["errors"].(map[string]any)
	assert.Contains(t, errs, "ghost")
}

func TestHandleCompare_AllUnknown(t *testing.T) {
	srv := testServer(t, nil)

	rec, payload := doJSON(t, srv, http.MethodPost, "/api/v1/compare",
		`{"model_ids": ["ghost", "phantom"]}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "model_not_found", payload["code"])
}

func TestHandleAnalyze(t *testing.T) {
	srv := testServer(t, nil)

	rec, payload := doJSON(t, srv, http.MethodPost, "/api/v1/analyze",
		`{"prompt": "Could you please summarize this article? Thanks in advance!"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	advice := payload["advice"].(map[string]any)
	analysis := advice["analysis"].(map[string]any)
	task := analysis["task"].(map[string]any)
	assert.Equal(t, "summarization", task["type"])

	// Empty model falls back to the configured default.
	estimate := advice["estimate"].(map[string]any)
	assert.Equal(t, "gpt-4o-mini", estimate["model_id"])

	recs := advice["recommendations"].([]any)
	assert.NotEmpty(t, recs)
}

func TestHandleAnalyze_MissingPrompt(t *testing.T) {
	srv := testServer(t, nil)

	rec, payload := doJSON(t, srv, http.MethodPost, "/api/v1/analyze", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", payload["code"])
}

func TestHandleProjection(t *testing.T) {
	srv := testServer(t, nil)

	rec, payload := doJSON(t, srv, http.MethodPost, "/api/v1/projection",
		`{"daily_queries": 1000, "carbon_per_query_gco2e": 0.15, "monthly_growth_rate": 0}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.InDelta(t, 360000, payload["annual_queries"].(float64), 1e-9)
	assert.InDelta(t, 54000, payload["annual_carbon_gco2e"].(float64), 1e-6)
}

func TestHandleModels(t *testing.T) {
	srv := testServer(t, nil)

	rec, payload := doJSON(t, srv, http.MethodGet, "/api/v1/models", "")
	require.Equal(t, http.StatusOK, rec.Code)

	models := payload["models"].([]any)
	assert.Len(t, models, 12)

	ids := make(map[string]bool, len(models))
	for _, m := range models {
		ids[m.(map[string]any)["id"].(string)] = true
	}
	assert.True(t, ids["gpt-4o"])
	assert.True(t, ids["claude-3.7-sonnet"])
	assert.True(t, ids["deepseek-r1"])
}

func TestHandleHistory_Disabled(t *testing.T) {
	srv := testServer(t, nil)

	for _, path := range []string{"/api/v1/history", "/api/v1/history/summary"} {
		rec, payload := doJSON(t, srv, http.MethodGet, path, "")
		require.Equal(t, http.StatusNotFound, rec.Code, "path %s", path)
		assert.Equal(t, "history_disabled", payload["code"])
	}
}

func TestHandleHistory_RecordsEstimates(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "h.db"), zerolog.Nop())
	require.NoError(t, err)
	srv := testServer(t, store)

	rec, _ := doJSON(t, srv, http.MethodPost, "/api/v1/estimate",
		`{"model_id": "gpt-4o", "input_tokens": 100, "output_tokens": 300, "task_type": "code"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, payload := doJSON(t, srv, http.MethodGet, "/api/v1/history", "")
	require.Equal(t, http.StatusOK, rec.Code)

	records := payload["records"].([]any)
	require.Len(t, records, 1)
	saved := records[0].(map[string]any)
	assert.Equal(t, "gpt-4o", saved["model_id"])
	assert.Equal(t, "code", saved["task_type"])

	rec, summary := doJSON(t, srv, http.MethodGet, "/api/v1/history/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 1, summary["count"].(float64), 1e-9)
	assert.Greater(t, summary["total_energy_wh"].(float64), 0.0)
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(t, nil)

	rec, payload := doJSON(t, srv, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", payload["status"])
	assert.InDelta(t, 12, payload["models"].(float64), 1e-9)
}

func TestTraceHeader(t *testing.T) {
	srv := testServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Trace-Id", "trace-123")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "trace-123", rec.Header().Get("X-Trace-Id"))

	// Absent header gets a generated ID.
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-Id"))
}

func TestSwapCatalog_LiveReload(t *testing.T) {
	srv := testServer(t, nil)

	catalog, err := refdata.NewCatalog(
		[]refdata.ModelProfile{{
			ID: "only", DisplayName: "Only", Provider: "Test", HostingKey: "dc",
			Short:  refdata.OperatingPoint{AnchorTokens: 400, MeanWh: 0.2, StdWh: 0.05, LatencySeconds: 0.4, TokensPerSecond: 100},
			Medium: refdata.OperatingPoint{AnchorTokens: 2000, MeanWh: 0.6, StdWh: 0.1, LatencySeconds: 0.6, TokensPerSecond: 95},
			Long:   refdata.OperatingPoint{AnchorTokens: 11500, MeanWh: 2.0, StdWh: 0.4, LatencySeconds: 1.0, TokensPerSecond: 90},
		}},
		[]refdata.InfrastructureProfile{{
			HostingKey: "dc", DisplayName: "DC", PUE: 1.1,
			WUEOnsiteLPerKwh: 0.3, WUEOffsiteLPerKwh: 3.0, CIFKgCO2ePerKwh: 0.4,
		}},
	)
	require.NoError(t, err)
	srv.SwapCatalog(catalog)

	rec, payload := doJSON(t, srv, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 1, payload["models"].(float64), 1e-9)

	rec, _ = doJSON(t, srv, http.MethodPost, "/api/v1/estimate",
		`{"model_id": "gpt-4o", "input_tokens": 10, "output_tokens": 10}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, srv, http.MethodPost, "/api/v1/estimate",
		`{"model_id": "only", "input_tokens": 10, "output_tokens": 10}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}
