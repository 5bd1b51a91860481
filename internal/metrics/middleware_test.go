package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, target, http.NoBody))
	return rr
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/v1/resumes/{id}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"x"}`))
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/v1/resumes/{id}", "200"))
	serve(r, "GET", "/api/v1/resumes/2abc")
	serve(r, "GET", "/api/v1/resumes/3def")

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/v1/resumes/{id}", "200"))
	if got-before != 2 {
		t.Errorf("requests_total delta = %v, want 2", got-before)
	}
	if n := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/v1/resumes/2abc", "200")); n != 0 {
		t.Errorf("raw path must not be a label value, got %v", n)
	}
}

func TestMiddleware_Status(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/jobs", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	r.Delete("/jobs/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.WriteHeader(http.StatusInternalServerError) // ignored: first status wins
	})

	cases := []struct {
		method, target, route, status string
	}{
		{"POST", "/jobs", "/jobs", "201"},
		{"DELETE", "/jobs/1", "/jobs/{id}", "403"},
	}
	for _, tc := range cases {
		t.Run(tc.method, func(t *testing.T) {
			serve(r, tc.method, tc.target)
			if v := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.route, tc.status)); v < 1 {
				t.Errorf("requests_total{%s %s %s} = %v, want >= 1", tc.method, tc.route, tc.status, v)
			}
		})
	}
}

func TestMiddleware_Unmatched(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/health", func(http.ResponseWriter, *http.Request) {})

	serve(r, "GET", "/nope")

	if v := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", unmatchedRoute, "404")); v < 1 {
		t.Errorf("expected unmatched 404 to be counted, got %v", v)
	}
}

func TestMiddleware_WithoutRouteContext(t *testing.T) {
	h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", unmatchedRoute, "200"))
	serve(h, "GET", "/bare")

	if v := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", unmatchedRoute, "200")); v-before != 1 {
		t.Errorf("delta = %v, want 1", v-before)
	}
	if v := testutil.ToFloat64(httpInFlight); v != 0 {
		t.Errorf("in-flight = %v after request, want 0", v)
	}
}

func TestResponseRecorder_CountsBytes(t *testing.T) {
	rw := &responseRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	_, _ = rw.Write([]byte("hello"))
	_, _ = rw.Write([]byte(" world"))

	if rw.bytes != 11 {
		t.Errorf("bytes = %d, want 11", rw.bytes)
	}
	if rw.status != http.StatusOK {
		t.Errorf("status = %d, want 200", rw.status)
	}
}

func TestHandler_ExposesHTTPMetrics(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("pong")) })
	r.Method(http.MethodGet, "/metrics", Handler())

	serve(r, "GET", "/ping")
	rr := serve(r, "GET", "/metrics")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, name := range []string{
		"resumatch_http_requests_total",
		"resumatch_http_request_duration_seconds",
		"resumatch_http_requests_in_flight",
		"resumatch_http_response_size_bytes",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("expected %s in exposition", name)
		}
	}
}
