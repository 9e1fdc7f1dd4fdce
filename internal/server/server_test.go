package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/nac-planner/internal/library"
	"github.com/jonathan/nac-planner/internal/llm"
	"github.com/jonathan/nac-planner/internal/server/ratelimit"
	"github.com/jonathan/nac-planner/internal/types"
)

const healthcareIntake = `{"organization": {"name": "St. Mary's", "industry": "healthcare", "total_users": "1200", "pain_points": ["IoT device visibility gaps"]}}`

// fakeLLM returns a canned response and records requests.
type fakeLLM struct {
	response string
	err      error
	requests []llm.Request
}

func (f *fakeLLM) Generate(_ context.Context, req llm.Request) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) Model(tier llm.ModelTier) string { return "fake-" + string(tier) }

func (f *fakeLLM) Close() error { return nil }

func testLibrary() *library.Library {
	return &library.Library{
		PainPoints: []types.PainPoint{
			{ID: "pp-visibility", Title: "Limited Device Visibility", Category: "visibility"},
		},
		UseCases: []types.UseCase{
			{ID: "uc-guest", Name: "Guest Access", Category: "guest"},
			{ID: "uc-iot", Name: "IoT Device Profiling", Category: "iot_security"},
			{ID: "uc-byod", Name: "Enterprise BYOD Onboarding", Category: "byod"},
		},
		Requirements: []types.Requirement{
			{ID: "rq-seg", Title: "Network Segmentation", Category: "segmentation"},
			{ID: "rq-hipaa", Title: "HIPAA Compliance", Category: "compliance"},
		},
	}
}

func newTestServer(t *testing.T, client llm.Client) *Server {
	t.Helper()
	cfg := Config{
		Library:   library.Static(testLibrary()),
		RateLimit: &ratelimit.Config{Enabled: false},
	}
	if client != nil {
		cfg.LLM = client
	}
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func recommendationIDs(recs []types.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}

func TestNew_RequiresLibrary(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, w))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodOptions, "/sessions", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
}

func TestListLibrary(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodGet, "/library/use-cases?q=device", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[struct {
		Kind       string           `json:"kind"`
		Items      []map[string]any `json:"items"`
		Count      int              `json:"count"`
		Categories []string         `json:"categories"`
	}](t, w)
	assert.Equal(t, "use_cases", body.Kind)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "uc-iot", body.Items[0]["id"])
	assert.Equal(t, []string{"guest", "iot_security", "byod"}, body.Categories)
}

func TestListLibrary_CategoryFilterEmpty(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodGet, "/library/requirements?category=nothing", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
}

func TestListLibrary_UnknownKind(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodGet, "/library/widgets", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListLibrary_SourceFailure(t *testing.T) {
	s, err := New(Config{
		Library: library.SourceFunc(func(context.Context) (*library.Library, error) {
			return nil, &library.LoadError{Source: "test", Message: "down"}
		}),
		RateLimit: &ratelimit.Config{Enabled: false},
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)

	w := doRequest(t, s, http.MethodGet, "/library/use-cases", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRecommendations(t *testing.T) {
	s := newTestServer(t, nil)

	body := `{"intake": ` + healthcareIntake + `, "dismissed": ["network_segmentation"]}`
	w := doRequest(t, s, http.MethodPost, "/recommendations", body)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[struct {
		Recommendations []types.Recommendation `json:"recommendations"`
		Count           int                    `json:"count"`
	}](t, w)
	assert.Equal(t, []string{"healthcare_hipaa", "enterprise_byod", "iot_management", "network_visibility"},
		recommendationIDs(resp.Recommendations))
	assert.Equal(t, 4, resp.Count)
}

func TestRecommendations_EmptyIntake(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodPost, "/recommendations", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"recommendations":[]`)
}

func TestRecommendations_BadBodies(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodPost, "/recommendations", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, s, http.MethodPost, "/recommendations", `{"intake": "healthcare"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListVendors(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodGet, "/vendors?category=firewall", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"fortinet"`)
	assert.NotContains(t, w.Body.String(), `"juniper"`)
}

func TestRateLimitMiddleware(t *testing.T) {
	s, err := New(Config{
		Library: library.Static(testLibrary()),
		RateLimit: &ratelimit.Config{
			Enabled:      true,
			DefaultLimit: 2,
		},
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)

	for i := 0; i < 2; i++ {
		w := doRequest(t, s, http.MethodGet, "/vendors", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := doRequest(t, s, http.MethodGet, "/vendors", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, w)["error"])

	// Health is never limited
	w = doRequest(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExtractClientID(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "192.0.2.7:51234"
	assert.Equal(t, "192.0.2.7", s.extractClientID(req))

	req.RemoteAddr = "not-an-addr"
	assert.Equal(t, "not-an-addr", s.extractClientID(req))
}
