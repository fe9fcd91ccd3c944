package handlers

import (
    "encoding/json"
    "errors"
    "log/slog"
    "net/http"

    "crowd-status/api/statusfeed"
    "crowd-status/facet"
    "crowd-status/server/middleware"
    services "crowd-status/service"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    if err := json.NewEncoder(w).Encode(body); err != nil {
        slog.Error("error encoding response", slog.Any("error", err))
    }
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
    switch {
    case errors.Is(err, facet.ErrUnknownDimension):
        middleware.WriteErrorResponse(w, http.StatusBadRequest, "unknown_dimension", err.Error())
    case errors.Is(err, facet.ErrInvalidStatus):
        middleware.WriteErrorResponse(w, http.StatusBadRequest, "invalid_status", err.Error())
    case errors.Is(err, services.ErrSessionNotFound):
        middleware.WriteErrorResponse(w, http.StatusNotFound, "session_not_found", err.Error())
    case errors.Is(err, services.ErrDatasetLoading):
        middleware.WriteErrorResponse(w, http.StatusServiceUnavailable, "dataset_loading", err.Error())
    case errors.Is(err, statusfeed.ErrFetchFailure):
        middleware.WriteErrorResponse(w, http.StatusServiceUnavailable, "fetch_failure", err.Error())
    default:
        slog.Error("unhandled error", slog.Any("error", err))
        middleware.WriteInternalServerError(w)
    }
}

func badRequest(w http.ResponseWriter, msg string) {
    middleware.WriteErrorResponse(w, http.StatusBadRequest, "bad_request", msg)
}
