package handlers

import (
    "bytes"
    "net/http"

    "crowd-status/facet"
    "crowd-status/models"
    services "crowd-status/service"
    "crowd-status/util"

    "github.com/gorilla/mux"
)

// ResultsResponse is the stateless dashboard view for one FilterState.
type ResultsResponse struct {
    State     facet.FilterState            `json:"state"`
    Results   []facet.VenueResult          `json:"results"`
    Options   map[facet.Dimension][]string `json:"options"`
    UpdatedAt string                       `json:"updated_at,omitempty"`
    Error     string                       `json:"error,omitempty"`
}

type DashboardHandler struct {
    dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
    return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Ping(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *DashboardHandler) GetState(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, h.dashboard.State())
}

func (h *DashboardHandler) GetStatuses(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, facet.StatusLabels)
}

// GetResults expects FilterParams in the query string.
func (h *DashboardHandler) GetResults(w http.ResponseWriter, r *http.Request) {
    params, state, ok := parseFilterQuery(w, r)
    if !ok {
        return
    }

    options, results, err := h.dashboard.Facets(state, params.Legacy)
    if err != nil {
        writeError(w, err)
        return
    }

    st := h.dashboard.State()
    writeJSON(w, http.StatusOK, ResultsResponse{
        State:     state,
        Results:   results,
        Options:   options,
        UpdatedAt: st.UpdatedAt,
        Error:     st.Error,
    })
}

// GetFacet returns the option list of the {dimension} path variable.
func (h *DashboardHandler) GetFacet(w http.ResponseWriter, r *http.Request) {
    dim, err := facet.ParseDimension(mux.Vars(r)["dimension"])
    if err != nil {
        writeError(w, err)
        return
    }
    params, state, ok := parseFilterQuery(w, r)
    if !ok {
        return
    }

    options, err := h.dashboard.OptionsFor(state, dim, params.Legacy)
    if err != nil {
        writeError(w, err)
        return
    }
    if options == nil {
        options = []string{}
    }
    writeJSON(w, http.StatusOK, map[string]interface{}{
        "dimension": dim,
        "options":   options,
    })
}

// GetStatusChart renders the visible matches as an HTML chart.
func (h *DashboardHandler) GetStatusChart(w http.ResponseWriter, r *http.Request) {
    _, state, ok := parseFilterQuery(w, r)
    if !ok {
        return
    }

    results, err := h.dashboard.VisibleResults(state)
    if err != nil {
        writeError(w, err)
        return
    }

    var buf bytes.Buffer
    if err := util.RenderStatusChart(&buf, results, state.Language); err != nil {
        writeError(w, err)
        return
    }
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(http.StatusOK)
    w.Write(buf.Bytes())
}

func parseFilterQuery(w http.ResponseWriter, r *http.Request) (models.FilterParams, facet.FilterState, bool) {
    params, err := models.DecodeFilterParams(r.URL.Query())
    if err != nil {
        badRequest(w, err.Error())
        return models.FilterParams{}, facet.FilterState{}, false
    }
    state, err := params.ToFilterState()
    if err != nil {
        if isDomainError(err) {
            writeError(w, err)
        } else {
            badRequest(w, err.Error())
        }
        return models.FilterParams{}, facet.FilterState{}, false
    }
    return params, state, true
}
