package handler

import (
	"net/http"

	"github.com/bcnelson/netinventory/internal/version"
)

// Health reports that the process is serving requests.
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Version returns a handler reporting the build version and mode.
func Version(mode string) http.HandlerFunc {
	info := version.Get(mode)
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}

// NotFound is the fallback for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	RespondError(w, http.StatusNotFound, MsgRouteNotFound)
}

// MethodNotAllowed is the fallback for known paths with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	RespondError(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}
