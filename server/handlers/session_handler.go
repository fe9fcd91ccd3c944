package handlers

import (
    "encoding/json"
    "errors"
    "net/http"

    "crowd-status/facet"
    "crowd-status/models"
    "crowd-status/models/venue"
    services "crowd-status/service"

    "github.com/gorilla/mux"
)

// SessionView is what every session endpoint returns. Results and Options
// are omitted while the first dataset is loading.
type SessionView struct {
    ID      string                       `json:"id"`
    State   facet.FilterState            `json:"state"`
    Query   string                       `json:"query"`
    Loading bool                         `json:"loading"`
    Results []facet.VenueResult          `json:"results,omitempty"`
    Options map[facet.Dimension][]string `json:"options,omitempty"`
}

type filterBody struct {
    Values []string `json:"values"`
}

type toggleBody struct {
    Value string `json:"value"`
}

type languageBody struct {
    Language string `json:"language"`
}

type SessionHandler struct {
    sessions  *services.SessionService
    dashboard *services.DashboardService
}

func NewSessionHandler(sessions *services.SessionService, dashboard *services.DashboardService) *SessionHandler {
    return &SessionHandler{sessions: sessions, dashboard: dashboard}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
    id, state := h.sessions.Create()
    h.writeView(w, http.StatusCreated, id, state)
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
    id := mux.Vars(r)["id"]
    state, err := h.sessions.Get(id)
    h.respond(w, id, state, err)
}

// SetFilter expects {"values": [...]}. Status dimensions take one value or "ALL".
func (h *SessionHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
    vars := mux.Vars(r)
    dim, err := facet.ParseDimension(vars["dimension"])
    if err != nil {
        writeError(w, err)
        return
    }
    var body filterBody
    if !decodeBody(w, r, &body) {
        return
    }
    state, err := h.sessions.SetFilter(vars["id"], dim, body.Values)
    h.respond(w, vars["id"], state, err)
}

// Toggle expects {"value": "<status>"}.
func (h *SessionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
    vars := mux.Vars(r)
    dim, err := facet.ParseDimension(vars["dimension"])
    if err != nil {
        writeError(w, err)
        return
    }
    var body toggleBody
    if !decodeBody(w, r, &body) {
        return
    }
    state, err := h.sessions.Toggle(vars["id"], dim, body.Value)
    h.respond(w, vars["id"], state, err)
}

func (h *SessionHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
    id := mux.Vars(r)["id"]
    var body languageBody
    if !decodeBody(w, r, &body) {
        return
    }
    lang, ok := venue.ParseLanguage(body.Language)
    if !ok || body.Language == "" {
        badRequest(w, "language must be \"ja\" or \"en\"")
        return
    }
    state, err := h.sessions.SetLanguage(id, lang)
    h.respond(w, id, state, err)
}

func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
    id := mux.Vars(r)["id"]
    state, err := h.sessions.Reset(id)
    h.respond(w, id, state, err)
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
    if err := h.sessions.Delete(mux.Vars(r)["id"]); err != nil {
        writeError(w, err)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) respond(w http.ResponseWriter, id string, state facet.FilterState, err error) {
    if err != nil {
        writeError(w, err)
        return
    }
    h.writeView(w, http.StatusOK, id, state)
}

func (h *SessionHandler) writeView(w http.ResponseWriter, status int, id string, state facet.FilterState) {
    view := SessionView{
        ID:    id,
        State: state,
        Query: models.FilterParamsFromState(state).ToValues().Encode(),
    }
    options, results, err := h.dashboard.Facets(state, false)
    switch {
    case errors.Is(err, services.ErrDatasetLoading):
        view.Loading = true
    case err != nil:
        writeError(w, err)
        return
    default:
        view.Results = results
        view.Options = options
    }
    writeJSON(w, status, view)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
    dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
    dec.DisallowUnknownFields()
    if err := dec.Decode(dst); err != nil {
        badRequest(w, "invalid JSON body: "+err.Error())
        return false
    }
    return true
}

func isDomainError(err error) bool {
    return errors.Is(err, facet.ErrUnknownDimension) || errors.Is(err, facet.ErrInvalidStatus)
}
