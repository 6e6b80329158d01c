package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/http/response"
)

// serverError logs the cause and returns the one generic body internal
// failures are allowed to show.
func serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.ErrorContext(r.Context(), op+" failed", "error", err, "path", r.URL.Path)
	response.Error(w, http.StatusInternalServerError, "internal server error")
}

func idParam(r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
