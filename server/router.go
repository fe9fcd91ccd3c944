package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// DashboardRoutes is implemented by handlers.DashboardHandler.
type DashboardRoutes interface {
	Ping(w http.ResponseWriter, r *http.Request)
	GetState(w http.ResponseWriter, r *http.Request)
	GetStatuses(w http.ResponseWriter, r *http.Request)
	GetResults(w http.ResponseWriter, r *http.Request)
	GetFacet(w http.ResponseWriter, r *http.Request)
	GetStatusChart(w http.ResponseWriter, r *http.Request)
}

// SessionRoutes is implemented by handlers.SessionHandler.
type SessionRoutes interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	SetFilter(w http.ResponseWriter, r *http.Request)
	Toggle(w http.ResponseWriter, r *http.Request)
	SetLanguage(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	dashboardHandler DashboardRoutes
	sessionHandler   SessionRoutes
	wsHandler        http.HandlerFunc
	metricsHandler   http.Handler
	router           *mux.Router
}

// NewRouter creates a router with the app's routes. wsHandler and
// metricsHandler may be nil.
func NewRouter(
	dashboardHandler DashboardRoutes,
	sessionHandler SessionRoutes,
	wsHandler http.HandlerFunc,
	metricsHandler http.Handler,
	router *mux.Router) *Router {
	return &Router{
		dashboardHandler: dashboardHandler,
		sessionHandler:   sessionHandler,
		wsHandler:        wsHandler,
		metricsHandler:   metricsHandler,
		router:           router,
	}
}

// RegisterRoutes registers every route on the root router with its full
// path, so a method mismatch answers 405 rather than 404.
func (r *Router) RegisterRoutes() {
	r.router.HandleFunc("/ping", r.dashboardHandler.Ping).Methods("GET")

	r.router.HandleFunc("/v1/state", r.dashboardHandler.GetState).Methods("GET")
	r.router.HandleFunc("/v1/statuses", r.dashboardHandler.GetStatuses).Methods("GET")
	// expects FilterParams in the query string, e.g. ?region=関東&table_status=available&lang=en
	r.router.HandleFunc("/v1/results", r.dashboardHandler.GetResults).Methods("GET")
	r.router.HandleFunc("/v1/facets/{dimension}", r.dashboardHandler.GetFacet).Methods("GET")
	r.router.HandleFunc("/v1/charts/status", r.dashboardHandler.GetStatusChart).Methods("GET")

	r.router.HandleFunc("/v1/sessions", r.sessionHandler.Create).Methods("POST")
	r.router.HandleFunc("/v1/sessions/{id}", r.sessionHandler.Get).Methods("GET")
	r.router.HandleFunc("/v1/sessions/{id}", r.sessionHandler.Delete).Methods("DELETE")
	r.router.HandleFunc("/v1/sessions/{id}/filters", r.sessionHandler.Reset).Methods("DELETE")
	r.router.HandleFunc("/v1/sessions/{id}/filters/{dimension}", r.sessionHandler.SetFilter).Methods("PUT")
	r.router.HandleFunc("/v1/sessions/{id}/filters/{dimension}/toggle", r.sessionHandler.Toggle).Methods("POST")
	r.router.HandleFunc("/v1/sessions/{id}/language", r.sessionHandler.SetLanguage).Methods("PUT")

	if r.wsHandler != nil {
		r.router.HandleFunc("/v1/ws", r.wsHandler).Methods("GET")
	}
	if r.metricsHandler != nil {
		r.router.Handle("/metrics", r.metricsHandler).Methods("GET")
	}
}

// Use installs middleware on every route.
func (r *Router) Use(mw ...func(http.Handler) http.Handler) {
	for _, m := range mw {
		r.router.Use(mux.MiddlewareFunc(m))
	}
}
