package handlers

import (
	"net/http"
)

// Summary returns the per-category totals of one month, selected with
// ?month=YYYY-MM and defaulting to the current month.
func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ledger.Summary(r.URL.Query().Get("month"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
