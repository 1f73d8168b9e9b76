package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/five82/marquee/internal/catalog"
)

// moviesResponse is the body of GET /api/movies. Total counts every loaded
// record; Movies holds only those passing the filter.
type moviesResponse struct {
	Status string          `json:"status"`
	Error  string          `json:"error,omitempty"`
	Total  int             `json:"total"`
	Movies []catalog.Movie `json:"movies"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) movies(w http.ResponseWriter, r *http.Request) {
	filter, ok := filterFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "unknown genre " + strconv.Quote(r.URL.Query().Get("genre")),
		})
		return
	}

	view := h.store.Snapshot().View(filter)
	resp := moviesResponse{
		Status: view.Status.String(),
		Total:  len(view.Movies),
		Movies: view.Visible(),
	}
	if view.Err != nil {
		resp.Error = view.Err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// filterFromRequest reads q and genre. ok is false for an unknown genre, in
// which case the filter falls back to All.
func filterFromRequest(r *http.Request) (catalog.Filter, bool) {
	query := r.URL.Query()
	genre, ok := catalog.ParseGenre(query.Get("genre"))
	return catalog.Filter{Search: query.Get("q"), Genre: genre}, ok
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
