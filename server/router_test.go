package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

// mockRoutes answers every route with its own name.
type mockRoutes struct{}

func named(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(name + ":" + mux.Vars(r)["id"] + ":" + mux.Vars(r)["dimension"]))
	}
}

func (mockRoutes) Ping(w http.ResponseWriter, r *http.Request)           { named("ping")(w, r) }
func (mockRoutes) GetState(w http.ResponseWriter, r *http.Request)       { named("state")(w, r) }
func (mockRoutes) GetStatuses(w http.ResponseWriter, r *http.Request)    { named("statuses")(w, r) }
func (mockRoutes) GetResults(w http.ResponseWriter, r *http.Request)     { named("results")(w, r) }
func (mockRoutes) GetFacet(w http.ResponseWriter, r *http.Request)       { named("facet")(w, r) }
func (mockRoutes) GetStatusChart(w http.ResponseWriter, r *http.Request) { named("chart")(w, r) }
func (mockRoutes) Create(w http.ResponseWriter, r *http.Request)         { named("create")(w, r) }
func (mockRoutes) Get(w http.ResponseWriter, r *http.Request)            { named("get")(w, r) }
func (mockRoutes) SetFilter(w http.ResponseWriter, r *http.Request)      { named("set")(w, r) }
func (mockRoutes) Toggle(w http.ResponseWriter, r *http.Request)         { named("toggle")(w, r) }
func (mockRoutes) SetLanguage(w http.ResponseWriter, r *http.Request)    { named("language")(w, r) }
func (mockRoutes) Reset(w http.ResponseWriter, r *http.Request)          { named("reset")(w, r) }
func (mockRoutes) Delete(w http.ResponseWriter, r *http.Request)         { named("delete")(w, r) }

func TestRouter_RegisterRoutes(t *testing.T) {
	router := mux.NewRouter()
	appRouter := NewRouter(mockRoutes{}, mockRoutes{}, named("ws"), named("metrics"), router)
	appRouter.RegisterRoutes()

	tests := []struct {
		name       string
		method     string
		path       string
		statusCode int
		response   string
	}{
		{"Ping", "GET", "/ping", http.StatusOK, "ping::"},
		{"State", "GET", "/v1/state", http.StatusOK, "state::"},
		{"Statuses", "GET", "/v1/statuses", http.StatusOK, "statuses::"},
		{"Results", "GET", "/v1/results?region=x", http.StatusOK, "results::"},
		{"Facet", "GET", "/v1/facets/city", http.StatusOK, "facet::city"},
		{"Chart", "GET", "/v1/charts/status", http.StatusOK, "chart::"},
		{"Create session", "POST", "/v1/sessions", http.StatusOK, "create::"},
		{"Get session", "GET", "/v1/sessions/abc", http.StatusOK, "get:abc:"},
		{"Delete session", "DELETE", "/v1/sessions/abc", http.StatusOK, "delete:abc:"},
		{"Reset filters", "DELETE", "/v1/sessions/abc/filters", http.StatusOK, "reset:abc:"},
		{"Set filter", "PUT", "/v1/sessions/abc/filters/region", http.StatusOK, "set:abc:region"},
		{"Toggle", "POST", "/v1/sessions/abc/filters/tableStatus/toggle", http.StatusOK, "toggle:abc:tableStatus"},
		{"Language", "PUT", "/v1/sessions/abc/language", http.StatusOK, "language:abc:"},
		{"Websocket", "GET", "/v1/ws", http.StatusOK, "ws::"},
		{"Metrics", "GET", "/metrics", http.StatusOK, "metrics::"},
		{"Wrong method", "POST", "/v1/state", http.StatusMethodNotAllowed, ""},
		{"Wrong method on session", "PUT", "/v1/sessions/abc", http.StatusMethodNotAllowed, ""},
		{"Wrong method on toggle", "GET", "/v1/sessions/abc/filters/tableStatus/toggle", http.StatusMethodNotAllowed, ""},
		{"Invalid Route", "GET", "/invalid", http.StatusNotFound, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, test.statusCode, rr.Code)
			if test.response != "" {
				assert.Equal(t, test.response, rr.Body.String())
			}
		})
	}
}

func TestRouter_OptionalRoutes(t *testing.T) {
	router := mux.NewRouter()
	NewRouter(mockRoutes{}, mockRoutes{}, nil, nil, router).RegisterRoutes()

	for _, path := range []string{"/v1/ws", "/metrics"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
	}
}

func TestRouter_UseWrapsRoutes(t *testing.T) {
	router := mux.NewRouter()
	appRouter := NewRouter(mockRoutes{}, mockRoutes{}, nil, nil, router)
	appRouter.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Test", "wrapped")
			next.ServeHTTP(w, r)
		})
	})
	appRouter.RegisterRoutes()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/ping", nil))
	assert.Equal(t, "wrapped", rr.Header().Get("X-Test"))
}

func TestCrowdStatusHttpServer_CORS(t *testing.T) {
	router := mux.NewRouter()
	appRouter := NewRouter(mockRoutes{}, mockRoutes{}, nil, nil, router)
	appRouter.RegisterRoutes()
	srv := NewCrowdStatusHttpServer(appRouter, router, "0", []string{"https://dashboard.example"})

	req := httptest.NewRequest("GET", "/v1/state", nil)
	req.Header.Set("Origin", "https://dashboard.example")
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://dashboard.example", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest("GET", "/v1/state", nil)
	req.Header.Set("Origin", "https://other.example")
	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
